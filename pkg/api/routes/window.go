package routes

import (
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/gofiber/fiber/v2"
)

func WindowRouter(router fiber.Router, service *traffic.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getWindow(c, service)
	})
}

func getWindow(c *fiber.Ctx, service *traffic.Service) error {
	filter, err := traffic.ParseTimeFilter(c.Query("time"))
	if err != nil {
		return errorResponse(fiber.StatusBadRequest, err.Error())
	}

	windowMinutes := service.Engine().WindowMinutes()
	radiusRange := traffic.RadiusRangeFor(filter)

	minMinute, maxMinute, active := filter.Window(windowMinutes)
	if !active {
		return c.JSON(fiber.Map{
			"active":      false,
			"label":       filter.Label(),
			"radiusRange": radiusRange,
		})
	}

	return c.JSON(fiber.Map{
		"active":        true,
		"label":         filter.Label(),
		"windowMinutes": windowMinutes,
		"minMinute":     minMinute,
		"maxMinute":     maxMinute,
		"wraps":         minMinute > maxMinute,
		"radiusRange":   radiusRange,
	})
}
