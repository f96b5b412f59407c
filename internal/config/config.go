package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/pkg/fixedpoint"
	"crowdlending/pkg/id"

	"github.com/hashicorp/go-multierror"
)

type Config struct {
	AppPort  string
	LogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string
	// AutoMigrate creates missing tables on startup.
	AutoMigrate bool

	RedisAddr string
	RedisDB   int

	IdempTTLSecs    int
	ShutdownTimeout time.Duration

	// RegistryAdminID may register users and change their status.
	RegistryAdminID string

	LocalNodeFeeHundredths int64
	TeamFeeHundredths      int64
	ReputationPolicy       string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads the environment. Malformed numbers are reported by Validate.
func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "crowdlending"),
		MySQLUser: getenv("MYSQL_USER", "crowdlending"),
		MySQLPass: getenv("MYSQL_PASS", "crowdlending"),

		RedisAddr:       getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs:    300,
		ShutdownTimeout: 10 * time.Second,

		RegistryAdminID:        os.Getenv("REGISTRY_ADMIN_ID"),
		LocalNodeFeeHundredths: 300,
		TeamFeeHundredths:      400,
		ReputationPolicy:       getenv("REPUTATION_BOUNDARY_POLICY", string(domainRep.PolicyFloor)),
	}
	c.AutoMigrate, _ = strconv.ParseBool(getenv("DB_AUTO_MIGRATE", "false"))
	intEnv("REDIS_DB", &c.RedisDB)
	intEnv("IDEMPOTENCY_TTL_SECONDS", &c.IdempTTLSecs)
	int64Env("LOCAL_NODE_FEE_HUNDREDTHS", &c.LocalNodeFeeHundredths)
	int64Env("TEAM_FEE_HUNDREDTHS", &c.TeamFeeHundredths)
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ShutdownTimeout = d
		}
	}
	return c
}

func intEnv(k string, dst *int) {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func int64Env(k string, dst *int64) {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		result = multierror.Append(result, errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)"))
	} else if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err))
	}
	if c.AppPort == "" {
		result = multierror.Append(result, errors.New("missing APP_PORT"))
	}
	if c.RedisAddr == "" {
		result = multierror.Append(result, errors.New("missing REDIS_ADDR"))
	}
	if c.IdempTTLSecs <= 0 {
		result = multierror.Append(result, fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs))
	}
	if !id.Valid(c.RegistryAdminID) {
		result = multierror.Append(result, errors.New("REGISTRY_ADMIN_ID must be a 32-char lowercase hex id"))
	}
	if c.LocalNodeFeeHundredths < 0 || c.TeamFeeHundredths < 0 ||
		c.LocalNodeFeeHundredths+c.TeamFeeHundredths > fixedpoint.HundredthsBase {
		result = multierror.Append(result, fmt.Errorf("fee hundredths out of range: local node %d, team %d",
			c.LocalNodeFeeHundredths, c.TeamFeeHundredths))
	}
	if _, err := domainRep.ParseBoundaryPolicy(c.ReputationPolicy); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
