package handler

import (
	"github.com/gofiber/fiber/v2"
)

type GetHealthResponse struct {
	StatusCode int  `json:"statusCode"`
	IsHealthy  bool `json:"isHealthy"`
}

func GetHealth() func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(GetHealthResponse{
			StatusCode: fiber.StatusOK,
			IsHealthy:  true,
		})
	}
}
