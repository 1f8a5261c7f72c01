package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phone-book/config"
	"phone-book/internal/event"
	"phone-book/internal/handler"
	"phone-book/internal/model"
	"phone-book/internal/repository"
	"phone-book/internal/service"
	dbPkg "phone-book/pkg/db"
	"phone-book/pkg/jwt"
	"phone-book/pkg/logger"
	redisPkg "phone-book/pkg/redis"
	"phone-book/pkg/response"
	"phone-book/pkg/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 单个事件订阅者的处理上限
const eventHandlerTimeout = 3 * time.Second

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 通讯录消息服务启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(&model.User{}, &model.Contact{}, &model.Message{}); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3.2 事件总线：消息进入SENT状态时推送给在线用户，启用Redis时经频道转发
	bus := event.NewBus(logger.L(), eventHandlerTimeout)
	wsManager := websocket.NewManager()
	setupEvents(ctx, cfg.Redis, bus, wsManager)

	// 3.3 初始化业务服务
	db := dbPkg.GetDB()
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	handlers := handler.Handlers{
		User:    handler.NewUserHandler(service.NewUserService(userRepo, jwtSvc)),
		Contact: handler.NewContactHandler(service.NewContactService(contactRepo)),
		Message: handler.NewMessageHandler(service.NewMessageService(messageRepo, contactRepo, bus, logger.L())),
	}

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件
	router.Use(cors.New(corsConfig(cfg.CORS)))

	// 6. 设置路由
	setupBasicRoutes(router, cfg)
	handler.RegisterRoutes(router, jwtSvc, handlers)
	router.GET("/ws", websocket.NewHandler(jwtSvc, cfg.WebSocket, wsManager))

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")
	stop()

	// 设置关闭超时
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}
	if err := redisPkg.Close(); err != nil {
		log.Error("关闭Redis连接失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupEvents 注册事件订阅者。
// 启用Redis时事件先发布到频道，再由订阅协程推送给本实例的在线用户；
// 否则直接推送。
func setupEvents(ctx context.Context, cfg config.RedisConfig, bus *event.Bus, wsManager *websocket.Manager) {
	if !cfg.Enabled {
		bus.Subscribe("websocket", wsManager)
		return
	}

	client, err := redisPkg.InitRedis(ctx, cfg)
	if err != nil {
		logger.Warn("Redis不可用，事件仅在本实例推送", zap.Error(err))
		bus.Subscribe("websocket", wsManager)
		return
	}
	logger.Info("Redis连接成功", zap.String("channel", cfg.EventChannel))

	publisher := redisPkg.NewEventPublisher(client, cfg.EventChannel)
	bus.Subscribe("redis", publisher)

	go func() {
		err := publisher.Subscribe(ctx, func(evt event.MessageSent) {
			if err := wsManager.Handle(ctx, evt); err != nil {
				logger.Warn("推送事件失败", zap.String("event_id", evt.EventID), zap.Error(err))
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("事件订阅中断", zap.Error(err))
		}
	}()
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}
	return c
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine, cfg *config.Config) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		data := gin.H{
			"status":  status,
			"message": "通讯录消息服务运行状态",
			"time":    time.Now().Format(time.RFC3339),
		}
		if cfg.Redis.Enabled {
			data["redis"] = "ok"
			if err := redisPkg.HealthCheck(c.Request.Context()); err != nil {
				data["redis"] = "down"
			}
		}
		response.Success(c, data)
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用通讯录消息服务",
			"version": "1.0.0",
		})
	})
}
