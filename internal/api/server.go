package api

import (
	"context"

	"github.com/Synapsr/Louez-sub011/internal/app/config"
	"github.com/Synapsr/Louez-sub011/internal/app/dsn"
	"github.com/Synapsr/Louez-sub011/internal/app/handler"
	"github.com/Synapsr/Louez-sub011/internal/app/middleware"
	"github.com/Synapsr/Louez-sub011/internal/app/redis"
	"github.com/Synapsr/Louez-sub011/internal/app/repository"
	"github.com/Synapsr/Louez-sub011/internal/app/storage"
	"github.com/Synapsr/Louez-sub011/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer инициализирует все зависимости и запускает HTTP сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка загрузки конфигурации: ", err)
	}

	dsnStr := dsn.FromEnv()
	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("ошибка подключения к Redis: ", err)
	}
	defer redisClient.Close()

	// MinIO не критичен для работы API: без него загрузка
	// изображений вернет заглушку
	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Warn("MinIO недоступен, загрузка изображений отключена: ", err)
		minioClient = nil
	}

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()
	apiHandler.RegisterAPIRoutes(router, authMiddleware)

	app := pkg.NewApp(cfg, router, apiHandler)
	app.RunApp()
}
