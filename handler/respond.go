package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
)

// sendError writes the structured error body every endpoint uses.
func sendError(c *gin.Context, log zerolog.Logger, statusCode int, code, message string, err error) {
	if err != nil {
		message = err.Error()
		log.Error().Err(err).Str("code", code).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}
