package db

import (
	"fmt"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// 根据配置打开数据库连接并迁移所有表。
// 返回连接句柄由调用方显式传递给repository，不保留包级单例。
func InitDB() (*gorm.DB, error) {
	cfg := config.GlobalConfig.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		// 测试环境使用内存sqlite
		dialector = sqlite.Open(cfg.DSN)
	case "mysql", "":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移模式
	err = conn.AutoMigrate(
		&model.User{},
		&model.Favor{},
		&model.Group{},
		&model.GroupMember{},
		&model.Notification{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return conn, nil
}
