package main

import (
	"log"
	"net/http"
	"time"

	"todo-api-v2/auth"
	"todo-api-v2/config"
	"todo-api-v2/handlers"
	"todo-api-v2/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load configuration: %v", err)
	}

	db, err := store.InitDB(cfg.DBSource)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize database: %v", err)
	}
	defer db.Close()

	var cache *store.TaskCache
	if cfg.RedisAddr != "" {
		rdb, err := store.InitRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		cache = &store.TaskCache{Client: rdb}
	} else {
		log.Println("REDIS_ADDR not set, task cache disabled.")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenExpireDays)*24*time.Hour)
	authService := auth.NewService(&store.UserStore{DB: db}, tokens, cfg.BcryptCost)

	h := &handlers.Handlers{
		Auth:  authService,
		Tasks: &store.TaskStore{DB: db},
		Cache: cache,
	}
	router := handlers.NewRouter(h, tokens)

	log.Printf("Server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("FATAL: Server failed to start: %v", err)
	}
}
