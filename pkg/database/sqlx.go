package database

import (
	"fmt"
	"log"
	"time"

	"parcel_tracking/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// InitReadDB 初始化只读查询连接（公开查询接口走这条轻量通道，不经过 ORM）
func InitReadDB() *sqlx.DB {
	cfg := config.GlobalConfig.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect read-only database: %v", err)
	}

	// 只读通道的连接池保持小规模
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	log.Println("Read-only database connection established")
	return db
}
