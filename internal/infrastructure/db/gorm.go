package db

import (
	"time"

	logging "github.com/ipfs/go-log/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logging.Logger("db")

type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

var DefaultPool = Pool{MaxOpen: 30, MaxIdle: 10, MaxLifetime: 30 * time.Minute, MaxIdleTime: 10 * time.Minute}

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector opens, sizes the pool and pings. SQL statements are
// logged through the "db" subsystem at warn level and above.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(DefaultPool.MaxOpen)
	sqlDB.SetMaxIdleConns(DefaultPool.MaxIdle)
	sqlDB.SetConnMaxLifetime(DefaultPool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(DefaultPool.MaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Infow("gorm connected", "dialect", dial.Name())
	return db, nil
}

// AutoMigrate creates or updates the tables for models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	log.Infow("schema migrated", "tables", len(models))
	return nil
}

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) { log.Warnf(format, args...) }
