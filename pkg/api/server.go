package api

import (
	"errors"

	"github.com/bikeflow/bikeflow/pkg/api/routes"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/gofiber/fiber/v2"
)

func NewApp(service *traffic.Service) *fiber.App {
	webApp := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("/version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), service)
	routes.BusiestRouter(group.Group("/busiest"), service)
	routes.WindowRouter(group.Group("/window"), service)

	return webApp
}

func SetupServer(listen string, service *traffic.Service) error {
	return NewApp(service).Listen(listen)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		code = fiberError.Code
	}

	c.Status(code)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
