package configs

import (
	"database/sql"
	"fmt"

	"foodly/entity"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the database named by cfg.DBDriver.
func OpenDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func dialectorFor(driver, source string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.Open(source), nil
	case "postgres":
		// lib/pq owns the connection, gorm only builds the queries
		sqlDB, err := sql.Open("postgres", source)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	case "mysql":
		dsn, err := mysqldriver.ParseDSN(source)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// timestamps must come back as time.Time
		dsn.ParseTime = true
		return mysql.New(mysql.Config{DSNConfig: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{},
		&entity.Category{},
		&entity.MenuItem{},
		&entity.Order{},
		&entity.OrderItem{},
	)
}
