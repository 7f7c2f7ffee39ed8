package graph

import (
	"errors"

	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/rs/zerolog/log"
)

const codeInternal = "INTERNAL_SERVER_ERROR"

// Error is the error shape resolvers hand back, its code ends up in extensions.code.
type Error struct {
	Code    string
	Message string
}

func (v *Error) Error() string {
	return v.Message
}

func (v *Error) Extensions() map[string]any {
	return map[string]any{"code": v.Code}
}

func formatError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if svcErr.Err != nil {
			log.Debug().Err(svcErr.Err).Str("code", string(svcErr.Code)).Msg("Request rejected.")
		}
		return &Error{Code: string(svcErr.Code), Message: svcErr.Message}
	}
	log.Error().Err(err).Msg("An error occurred when resolving a request...")
	return &Error{Code: codeInternal, Message: "internal server error"}
}
