package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/mattn/go-sqlite3"
	"video-sharing/pkg/models"
)

// sqliteDriver is go-sqlite3 with lower() folding all of Unicode instead of
// ASCII only.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Open connects with one of the gorm dialects ("sqlite3", "mysql",
// "postgres") and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite allows a single writer; an in-memory database also only exists
	// for the connection that created it.
	if driver == "sqlite3" {
		db.DB().SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func open(driver, dsn string) (*gorm.DB, error) {
	if driver != "sqlite3" {
		return gorm.Open(driver, dsn)
	}

	sqlDB, err := sql.Open(sqliteDriver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(driver, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Video{}, &models.UserVideo{}).Error; err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
