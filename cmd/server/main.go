package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jaeyun/matzip-map/internal/blob"
	"github.com/jaeyun/matzip-map/internal/config"
	"github.com/jaeyun/matzip-map/internal/database"
	"github.com/jaeyun/matzip-map/internal/handler"
	"github.com/jaeyun/matzip-map/internal/queue"
	"github.com/jaeyun/matzip-map/internal/repository"
	"github.com/jaeyun/matzip-map/internal/router"
	"github.com/jaeyun/matzip-map/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the model blob store, the restaurant response cache
	// and the search rate limiter. All three degrade when it is absent.
	rdb := config.NewRedisClient()
	var models blob.Store
	if rdb != nil {
		models = blob.NewRedisStore(rdb, "model")
	} else {
		log.Println("redis unavailable, model storage falls back to process memory")
		models = blob.NewMemoryStore()
	}

	restaurants := repository.NewRestaurantRepo(db)
	users := repository.NewUserRepo(db)

	h := router.Handlers{
		Restaurants: handler.NewRestaurantHandler(restaurants, users, true),
		Users:       handler.NewUserHandler(cfg, users),
		Search:      handler.NewSearchHandler(service.NewKakaoClient(cfg.KakaoAPIURL, cfg.KakaoAPIKey), cfg.KakaoAPIKey),
		Models:      handler.NewModelHandler(models),
	}

	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
