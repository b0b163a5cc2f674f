package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders every handler error as a JSON body. fiber errors keep
// their status code; anything else is a 500.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if eris.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Path()).Msg("request failed")
	}

	return ctx.Status(code).JSON(ErrorResponse{Error: err.Error()})
}
