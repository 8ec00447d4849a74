// dependencies/mysql.go
package dependencies

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/plugin/dbresolver"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	appConfig "github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// InitMySQL 初始化主 MySQL 连接，并配置读写分离 (如果配置了从库)
func InitMySQL(cfg *appConfig.CommentConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	mysqlCfg := cfg.MySQLConfig     // 获取 MySQL 配置
	gormLogCfg := cfg.GormLogConfig // 获取 GORM 日志配置

	// --- 主库连接 ---
	if mysqlCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (mysql.write.dsn) 未配置")
	}
	gormLogger := core.NewGormLogger(logger, gormLogCfg)
	gormConfig := &gorm.Config{
		Logger: gormLogger,
		// 把方言层的唯一键冲突翻译成 gorm.ErrDuplicatedKey，
		// 评论路径分配的并发仲裁依赖这个哨兵错误。
		TranslateError: true,
	}

	db, err := openWithRetry(mysql.Open(mysqlCfg.Write.DSN), gormConfig, logger, "主数据库")
	if err != nil {
		return nil, err
	}

	// --- 配置读写分离 (dbresolver) ---
	readReplicas := make([]gorm.Dialector, 0, len(mysqlCfg.Read))
	for i, replicaCfg := range mysqlCfg.Read {
		if replicaCfg.DSN == "" {
			logger.Warn("发现空的从库 DSN 配置，已跳过", zap.Int("index", i))
			continue
		}
		readReplicas = append(readReplicas, mysql.Open(replicaCfg.DSN))
		logger.Info("发现并准备配置从数据库", zap.Int("index", i))
	}

	// 只有在配置了有效的从库时才启用读写分离插件
	if len(readReplicas) > 0 {
		resolverConfig := dbresolver.Config{
			Sources:  []gorm.Dialector{mysql.Open(mysqlCfg.Write.DSN)}, // 主库作为写源
			Replicas: readReplicas,                                     // 从库作为读源
			Policy:   dbresolver.StrictRoundRobinPolicy(),              // 使用轮询策略分配读请求
		}
		if err := db.Use(dbresolver.Register(resolverConfig)); err != nil {
			logger.Error("配置 GORM 读写分离插件失败", zap.Error(err))
			return nil, fmt.Errorf("配置 GORM 读写分离失败: %w", err)
		}
		logger.Info("成功配置 GORM 读写分离插件", zap.Int("从库数量", len(readReplicas)))
	} else {
		logger.Info("未配置有效的从数据库，不启用读写分离")
	}

	if err := configurePool(db, mysqlCfg.Write, mysqlCfg, logger); err != nil {
		return nil, err
	}

	// --- 自动迁移 ---
	// AutoMigrate 默认会发送到主库 (Source)
	logger.Info("开始执行数据库自动迁移...")
	if migrateErr := autoMigrate(db); migrateErr != nil {
		logger.Error("数据库自动迁移失败", zap.Error(migrateErr))
		return nil, fmt.Errorf("数据库自动迁移失败: %w", migrateErr)
	}
	logger.Info("数据库自动迁移完成")

	logger.Info("成功初始化 MySQL 连接 (包括读写分离和自动迁移)")
	return db, nil
}

// InitFallbackMySQL 初始化降级备用存储连接。
// 未配置降级 DSN 时返回 (nil, nil)，调用方据此决定是否启用降级协调。
// 备库也执行自动迁移，保证主备两侧表结构一致，同一闭包才能在两侧重放。
func InitFallbackMySQL(cfg *appConfig.CommentConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	fallbackCfg := cfg.MySQLConfig.Fallback
	if fallbackCfg.DSN == "" {
		logger.Info("未配置降级备用存储，跳过初始化")
		return nil, nil
	}

	gormConfig := &gorm.Config{
		Logger:         core.NewGormLogger(logger, cfg.GormLogConfig),
		TranslateError: true,
	}

	db, err := openWithRetry(mysql.Open(fallbackCfg.DSN), gormConfig, logger, "降级备用数据库")
	if err != nil {
		return nil, err
	}

	if err := configurePool(db, fallbackCfg, cfg.MySQLConfig, logger); err != nil {
		return nil, err
	}

	if migrateErr := autoMigrate(db); migrateErr != nil {
		logger.Error("降级备用数据库自动迁移失败", zap.Error(migrateErr))
		return nil, fmt.Errorf("降级备用数据库自动迁移失败: %w", migrateErr)
	}

	logger.Info("成功初始化降级备用存储连接")
	return db, nil
}

// openWithRetry 带重试地建立连接并 Ping 验证。
func openWithRetry(dialector gorm.Dialector, gormConfig *gorm.Config, logger *core.ZapLogger, name string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	maxRetries := 5
	retryInterval := 2 * time.Second

	logger.Info("开始连接数据库...", zap.String("target", name))
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(dialector, gormConfig)
		if err == nil {
			var sqlDB *sql.DB
			var dbErr error
			sqlDB, dbErr = db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					err = nil // 连接和 Ping 都成功
					break
				}
				err = pingErr // Ping 失败
			} else {
				err = dbErr // 获取 sql.DB 失败
			}
		}
		logger.Warn("无法连接到数据库，尝试重试",
			zap.String("target", name), zap.Int("retry", i+1), zap.Int("maxRetries", maxRetries), zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		logger.Error("无法连接到数据库", zap.String("target", name), zap.Error(err))
		return nil, fmt.Errorf("无法连接到%s: %w", name, err)
	}
	logger.Info("成功连接到数据库", zap.String("target", name))
	return db, nil
}

// configurePool 应用连接池设置 (以共享设置为基础，允许被源的独立设置覆盖)
func configurePool(db *gorm.DB, source appConfig.SourceConfig, mysqlCfg appConfig.MySQLConfig, logger *core.ZapLogger) error {
	sqlDB, dbErr := db.DB()
	if dbErr != nil {
		logger.Error("无法获取数据库对象以配置连接池", zap.Error(dbErr))
		return fmt.Errorf("无法获取数据库对象: %w", dbErr)
	}

	maxIdle := mysqlCfg.SharedMaxIdleConns
	maxOpen := mysqlCfg.SharedMaxOpenConns
	maxLife := mysqlCfg.SharedConnMaxLifetime

	if source.MaxIdleConns != nil {
		maxIdle = *source.MaxIdleConns
	}
	if source.MaxOpenConns != nil {
		maxOpen = *source.MaxOpenConns
	}
	if source.ConnMaxLifetime != nil {
		maxLife = *source.ConnMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)

	logger.Info("配置数据库连接池",
		zap.Int("最大空闲连接数", maxIdle),
		zap.Int("最大打开连接数", maxOpen),
		zap.Int("连接最大生命周期(秒)", maxLife),
	)
	// 再次 Ping 确保配置后连接池可用
	if pingErr := sqlDB.Ping(); pingErr != nil {
		logger.Error("配置连接池后 Ping 数据库失败", zap.Error(pingErr))
		return fmt.Errorf("配置连接池后 Ping 失败: %w", pingErr)
	}
	return nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Post{},
		&entities.Comment{},
		&entities.Vote{},
	)
}
