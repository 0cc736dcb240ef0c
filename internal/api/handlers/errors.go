package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/forecast"
	"steel-procurement/internal/logger"
	"steel-procurement/internal/model"
)

// writeError maps domain errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var svcErr *forecast.ServiceError
	switch {
	case errors.Is(err, model.ErrInvalidParameter):
		detail := models.ErrorDetail{Code: "INVALID_PARAMETER", Message: err.Error()}
		if field, ok := model.FieldOf(err); ok {
			detail.Details = map[string]interface{}{"field": field}
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail})
	case errors.Is(err, model.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "EMPTY_INPUT", Message: err.Error()},
		})
	case errors.As(err, &svcErr):
		details := map[string]interface{}{"upstream_code": svcErr.Code}
		if svcErr.StatusCode != 0 {
			details["status_code"] = svcErr.StatusCode
		}
		if svcErr.RetryAfter != "" {
			details["retry_after"] = svcErr.RetryAfter
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "FORECAST_UNAVAILABLE", Message: svcErr.Message, Details: details},
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CANCELLED", Message: err.Error()},
		})
	default:
		logger.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
