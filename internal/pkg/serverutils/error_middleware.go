package serverutils

import (
	"errors"

	"docchat-be/pkg/llm"
	"docchat-be/pkg/loader"
	"docchat-be/pkg/vectorstore"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP status codes so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var loadErr *loader.LoadError
		switch {
		case errors.Is(err, vectorstore.ErrUnavailable), errors.Is(err, llm.ErrUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(fiber.StatusServiceUnavailable, err.Error()))
		case errors.As(err, &loadErr):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
		}
	}
}
