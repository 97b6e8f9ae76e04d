package database

import (
	"database/sql"
	"log"

	"lingochat/config"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func Connect() error {
	var err error
	DB, err = sql.Open("mysql", config.Cfg.MysqlDSN)
	if err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)

	log.Println("Database connected successfully")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

func CreateTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                 VARCHAR(36) PRIMARY KEY,
			username           VARCHAR(50) NOT NULL,
			email              VARCHAR(255) NOT NULL,
			nickname           VARCHAR(100),
			avatar             VARCHAR(255),
			password           VARCHAR(255) NOT NULL,
			preferred_language ENUM('en', 'fr', 'es') NOT NULL DEFAULT 'en',
			created_at         DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at         DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_username (username),
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id           VARCHAR(36) PRIMARY KEY,
			from_user_id VARCHAR(36) NOT NULL,
			to_user_id   VARCHAR(36) NOT NULL,
			pair_lo      VARCHAR(36) NOT NULL,
			pair_hi      VARCHAR(36) NOT NULL,
			accepted     BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_pair (pair_lo, pair_hi),
			INDEX idx_to_user (to_user_id, accepted)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id                  VARCHAR(36) PRIMARY KEY,
			sender_id           VARCHAR(36) NOT NULL,
			receiver_id         VARCHAR(36) NOT NULL,
			content             TEXT NOT NULL,
			translated_content  TEXT NOT NULL,
			original_language   VARCHAR(5) NOT NULL,
			status              ENUM('sent', 'delivered', 'read') NOT NULL DEFAULT 'sent',
			created_at          DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6),
			INDEX idx_sender_receiver (sender_id, receiver_id, created_at),
			INDEX idx_receiver (receiver_id, created_at)
		)`,
	}

	for _, table := range tables {
		if _, err := DB.Exec(table); err != nil {
			return err
		}
	}

	log.Println("Database tables created successfully")
	return nil
}
