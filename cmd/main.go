package main

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/coursehaven/backend/internal/config"
	"github.com/coursehaven/backend/internal/db"
	"github.com/coursehaven/backend/internal/handlers"
	"github.com/coursehaven/backend/internal/middleware"
	"github.com/coursehaven/backend/internal/payment"
	"github.com/coursehaven/backend/internal/repository"
	"github.com/coursehaven/backend/internal/services"
	"github.com/coursehaven/backend/internal/storage"
	"github.com/coursehaven/backend/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("mongodb indexes: %v", err)
	}
	log.Println("connected to MongoDB")

	images, err := storage.NewImageStore(cfg.Minio)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}
	log.Println("connected to MinIO")

	gateway := payment.NewStripeGateway(cfg.Stripe)
	cleanup := utils.NewWorkerPool(2)
	defer cleanup.Close()

	adminRepo := repository.NewAccountRepository(database, db.AdminCollection)
	userRepo := repository.NewAccountRepository(database, db.UserCollection)
	courseRepo := repository.NewCourseRepository(database)
	purchaseRepo := repository.NewPurchaseRepository(database)
	orderRepo := repository.NewOrderRepository(database)

	adminAuth := services.NewAuthService(adminRepo, cfg.JWT.AdminSecret, "admin", cfg.CreatedBy)
	userAuth := services.NewAuthService(userRepo, cfg.JWT.UserSecret, "user", cfg.CreatedBy)
	courseService := services.NewCourseService(courseRepo, images, cleanup, cfg.CreatedBy)
	purchaseService := services.NewPurchaseService(courseRepo, purchaseRepo, orderRepo, gateway, cfg.CreatedBy)

	validate := validator.New()
	adminHandler := handlers.NewAuthHandler(adminAuth, validate, "admin")
	userHandler := handlers.NewAuthHandler(userAuth, validate, "user")
	courseHandler := handlers.NewCourseHandler(courseService, validate)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, validate)

	adminGate := middleware.AdminAuth(cfg.JWT.AdminSecret)
	userGate := middleware.UserAuth(cfg.JWT.UserSecret)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Course marketplace backend is running")
	})

	admin := app.Group("/admin")
	admin.Post("/signup", adminHandler.Signup)
	admin.Post("/login", adminHandler.Login)
	admin.Get("/logout", adminHandler.Logout)

	course := app.Group("/course")
	course.Post("/create", adminGate, courseHandler.Create)
	course.Put("/update/:courseId", adminGate, courseHandler.Update)
	course.Delete("/delete/:courseId", adminGate, courseHandler.Delete)
	course.Get("/courses", courseHandler.List)
	course.Post("/buy/:courseId", userGate, purchaseHandler.Buy)
	course.Get("/:courseId", courseHandler.Detail)

	user := app.Group("/user")
	user.Post("/signup", userHandler.Signup)
	user.Post("/login", userHandler.Login)
	user.Get("/logout", userHandler.Logout)
	user.Get("/purchases", userGate, purchaseHandler.Purchases)

	app.Post("/order", userGate, purchaseHandler.PlaceOrder)

	log.Fatal(app.Listen(":" + cfg.Port))
}
