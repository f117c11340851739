package svc

import (
	"context"
	"fmt"
	"time"

	"activity-signup/app/signup/api/internal/config"
	"activity-signup/app/signup/cache"
	"activity-signup/app/signup/enrollment"
	"activity-signup/app/signup/model"
	"activity-signup/app/signup/mq"
	"activity-signup/common/messaging"

	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config config.Config

	// 数据存储
	DB      *gorm.DB
	Gateway *model.Gateway
	Redis   *redis.Redis // 未配置缓存时为 nil

	// Model 层
	ActivityModel *model.ActivityModel
	MemberModel   *model.MemberModel
	SignupModel   *model.SignupModel

	// 缓存 / 消息
	CatalogueCache *cache.CatalogueCache
	Producer       *mq.Producer // 未配置消息时为 nil

	// 熔断
	EnrollmentBreaker breaker.Breaker

	// 业务服务
	Enrollment *enrollment.Service
}

func NewServiceContext(c config.Config) *ServiceContext {
	// 1. 初始化数据库连接
	db := initDB(c.Database)

	// 2. 建表 + 写入种子目录
	if err := model.Bootstrap(context.Background(), db); err != nil {
		logx.Errorf("[Bootstrap] 初始化数据库失败: %v", err)
		panic(err)
	}

	// 3. 可选组件
	var rds *redis.Redis
	if c.CacheEnabled() {
		rds = initRedis(c.CacheRedis)
	}
	producer := initProducer(c.Messaging)

	return newServiceContext(c, db, rds, producer)
}

// NewServiceContextWithDB 使用已初始化的数据库创建 ServiceContext（测试、嵌入场景）
func NewServiceContextWithDB(c config.Config, db *gorm.DB) *ServiceContext {
	return newServiceContext(c, db, nil, nil)
}

func newServiceContext(c config.Config, db *gorm.DB, rds *redis.Redis, producer *mq.Producer) *ServiceContext {
	gateway := model.NewGateway(db)
	activityModel := model.NewActivityModel(db)
	memberModel := model.NewMemberModel(db)
	signupModel := model.NewSignupModel(db)
	catalogueCache := cache.NewCatalogueCache(rds, db)
	enrollmentBreaker := breaker.NewBreaker(breaker.WithName(c.Breaker.Name))

	deps := enrollment.Deps{
		Gateway:    gateway,
		Activities: activityModel,
		Members:    memberModel,
		Signups:    signupModel,
		Breaker:    enrollmentBreaker,
	}
	if rds != nil {
		deps.Catalogue = catalogueCache
	}
	if producer != nil {
		deps.Events = producer
	}

	return &ServiceContext{
		Config: c,

		DB:      db,
		Gateway: gateway,
		Redis:   rds,

		ActivityModel: activityModel,
		MemberModel:   memberModel,
		SignupModel:   signupModel,

		CatalogueCache: catalogueCache,
		Producer:       producer,

		EnrollmentBreaker: enrollmentBreaker,

		Enrollment: enrollment.NewService(deps),
	}
}

// Close 释放外部资源
func (s *ServiceContext) Close() {
	if err := s.Producer.Close(); err != nil {
		logx.Errorf("关闭消息发布器失败: %v", err)
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// 初始化函数

// initDB 初始化数据库连接
func initDB(c config.DatabaseConfig) *gorm.DB {
	dialector, err := buildDialector(c)
	if err != nil {
		panic(err)
	}

	logLevel := logger.Warn
	if c.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		logx.Errorf("连接数据库失败: %v", err)
		panic(err)
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	maxOpenConns := c.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 100
	}
	if c.Driver == config.DriverSQLite {
		// SQLite 只允许单写者
		maxOpenConns = 1
	}
	maxIdleConns := c.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}
	connMaxLifetime := c.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 3600
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	logx.Infof("数据库连接成功: driver=%s", c.Driver)
	return db
}

// buildDialector 根据驱动选择 GORM Dialector
func buildDialector(c config.DatabaseConfig) (gorm.Dialector, error) {
	switch c.Driver {
	case config.DriverMySQL:
		return mysql.Open(buildMySQLDSN(c)), nil
	case config.DriverSQLite, "":
		return sqlite.Open(buildSQLiteDSN(c)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

func buildMySQLDSN(c config.DatabaseConfig) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func buildSQLiteDSN(c config.DatabaseConfig) string {
	path := c.Path
	if path == "" {
		path = "database.db"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000", path)
}

// initRedis 初始化 Redis 连接
func initRedis(c redis.RedisConf) *redis.Redis {
	rds := redis.MustNewRedis(c)
	logx.Info("Redis 连接成功")
	return rds
}

// initProducer 初始化消息发布器，连接失败时降级为不发布
func initProducer(c messaging.Config) *mq.Producer {
	if !c.Enabled() {
		return nil
	}
	client, err := messaging.NewClient(c)
	if err != nil {
		logx.Errorf("[MQ-Producer] 消息客户端初始化失败，报名事件将不会发布: %v", err)
		return nil
	}
	logx.Infof("[MQ-Producer] 消息客户端初始化成功: addr=%s", c.Redis.Addr)
	return mq.NewProducer(client)
}
