package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/shrdenis/adboard-api/internal/apperrors"
	"github.com/shrdenis/adboard-api/internal/config"
	"github.com/shrdenis/adboard-api/internal/db"
	"github.com/shrdenis/adboard-api/internal/middleware"
	"github.com/shrdenis/adboard-api/internal/services/advertisement"
	"github.com/shrdenis/adboard-api/internal/services/auth"
	"github.com/shrdenis/adboard-api/internal/services/favorite"
	"github.com/shrdenis/adboard-api/internal/storage/postgres"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка при инициализации базы данных: %v", err)
	}
	defer db.CloseDB()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("❌ Ошибка при миграции схемы: %v", err)
	}

	// Создаём хранилища
	adStore := postgres.NewAdvertisementStore(db.Pool)
	favoriteStore := postgres.NewFavoriteStore(db.Pool)
	userStore := postgres.NewUserStore(db.Pool)

	// Создаём сервисы
	authService := auth.NewAuthService(cfg, userStore)
	advertisementService := advertisement.NewAdvertisementService(adStore, favoriteStore, userStore)
	favoriteService := favorite.NewFavoriteService(adStore, favoriteStore, advertisementService.Serializer())

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Adboard API",
		ErrorHandler: apperrors.ErrorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: false,
	}))

	// Принципал определяется до троттлинга: бюджеты анонимных
	// и аутентифицированных запросов раздельные
	app.Use(middleware.OptionalAuthMiddleware(authService.GetJWTService(), userStore))
	app.Use(middleware.ThrottleAnon(cfg.AnonRateLimit))
	app.Use(middleware.ThrottleUser(cfg.UserRateLimit))

	// Регистрируем маршруты. Маршруты избранного идут раньше,
	// чтобы /favorites не перехватывался параметром /:id.
	authService.SetupRoutes(app)
	favoriteService.SetupRoutes(app)
	advertisementService.SetupRoutes(app)

	// Запускаем сервер
	log.Printf("✅ Adboard API запущен на порту %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
