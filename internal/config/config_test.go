package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
)

const admin = "0123456789abcdef0123456789abcdef"

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("REGISTRY_ADMIN_ID", admin)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("TEAM_FEE_HUNDREDTHS", "250")
	t.Setenv("REPUTATION_BOUNDARY_POLICY", "cap")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.AppPort != "8080" || c.MySQLPort != "3306" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.RedisDB != 3 || c.IdempotencyTTL() != time.Minute {
		t.Fatalf("redis overrides not applied: db=%d ttl=%v", c.RedisDB, c.IdempotencyTTL())
	}
	if c.LocalNodeFeeHundredths != 300 || c.TeamFeeHundredths != 250 {
		t.Fatalf("fees = %d/%d", c.LocalNodeFeeHundredths, c.TeamFeeHundredths)
	}
	if c.ReputationPolicy != "cap" || !c.AutoMigrate || c.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("LOCAL_NODE_FEE_HUNDREDTHS", "3%")
	c := Load()
	if c.RedisDB != 0 || c.LocalNodeFeeHundredths != 300 {
		t.Fatalf("malformed values must keep defaults: %+v", c)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := &Config{
		MySQLHost:              "db",
		MySQLPort:              "not-a-port",
		MySQLDB:                "x",
		MySQLUser:              "u",
		RedisAddr:              "",
		IdempTTLSecs:           0,
		RegistryAdminID:        "ADMIN",
		LocalNodeFeeHundredths: 6000,
		TeamFeeHundredths:      6000,
		ReputationPolicy:       "lenient",
	}
	err := c.Validate()
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("want *multierror.Error, got %T (%v)", err, err)
	}
	// port, app port, redis, ttl, admin, fees, policy
	if len(merr.Errors) != 7 {
		t.Fatalf("got %d errors, want 7: %v", len(merr.Errors), err)
	}
	for _, want := range []string{"MYSQL_PORT", "APP_PORT", "REDIS_ADDR", "IDEMPOTENCY_TTL_SECONDS", "REGISTRY_ADMIN_ID", "fee hundredths", "boundary policy"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %v", want, err)
		}
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3307", MySQLDB: "d"}
	want := "u:p@tcp(h:3307)/d?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
