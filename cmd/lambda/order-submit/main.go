package main

import (
	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/handlers"
	"puzzle-landing-api/pkg/lambda"
	"puzzle-landing-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	h := handlers.NewOrderHandler(container.OrderService, container.Logger)
	lambda.Start(h.Handle, container.Logger)
}
