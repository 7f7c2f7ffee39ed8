package exts

import (
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ToFiberError maps service failures onto HTTP statuses.
func ToFiberError(err error) error {
	if err == nil {
		return nil
	}
	switch services.CodeOf(err) {
	case services.ErrCodeNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case services.ErrCodeBadUserInput, services.ErrCodeBadRequest:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case services.ErrCodeUnauthenticated:
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case services.ErrCodeUnauthorized:
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		log.Error().Err(err).Msg("An error occurred when handling a request...")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
