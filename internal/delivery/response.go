package delivery

import (
	"errors"
	"net/http"

	"storefront_service/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// mapErrorToStatus translates the gateway failure taxonomy into HTTP statuses:
// absent entities are 404, unreachable gateways 503, non-success gateway
// responses 502, unconfirmed availability 409.
func mapErrorToStatus(err error) int {
	var netErr *domain.NetworkError
	var gwErr *domain.GatewayError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusConflict
	case errors.As(err, &netErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &gwErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
