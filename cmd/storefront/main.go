package main

import (
	"log"

	catalogapp "communite/internal/application/catalog"
	"communite/internal/application/storefront"
	"communite/internal/config"
	"communite/internal/infrastructure/http/backend"
	ginserver "communite/internal/infrastructure/http/gin"
	"communite/internal/interfaces/http/handler"
	"communite/internal/interfaces/http/router"
	"communite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	client := backend.NewClient(cfg.Backend, zlog)

	svc := storefront.NewService(
		catalogapp.NewService(client),
		client,
		client,
		cfg.Delivery.Charge,
		zlog,
	)

	storefrontHandler := handler.NewStorefrontHandler(svc)
	engine := ginserver.NewEngine(zlog)
	router.RegisterRoutes(engine, storefrontHandler)

	zlog.Info("storefront listening",
		logger.String("addr", cfg.Server.Address()),
		logger.String("backend", cfg.Backend.BaseURL),
	)

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		log.Fatalf("server run failed: %v", err)
	}
}
