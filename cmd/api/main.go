package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"apibasics/internal/config"
	"apibasics/internal/database"
	"apibasics/internal/middleware"
	"apibasics/internal/modules/auth"
	"apibasics/internal/modules/profile"
	"apibasics/internal/modules/todo"
	"apibasics/internal/pkg/password"
	"apibasics/internal/pkg/token"
	"apibasics/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec(cfg.TokenSecret, cfg.AccessTTL)

	authService := auth.NewService(userRepo, refreshRepo, hasher, codec, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	todoService := todo.NewService(todoRepo)
	todoHandler := todo.NewHandler(todoService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	root := r.Group("/")
	{
		// public
		authHandler.RegisterRoutes(root)

		// protected
		protected := root.Group("/")
		protected.Use(middleware.Auth(codec))
		{
			profileHandler.RegisterRoutes(protected)
			todoHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
