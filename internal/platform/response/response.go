package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
)

// ErrorBody is the error payload of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// statusByCode maps domain error codes to HTTP statuses. Codes not listed map to 400.
var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:     http.StatusNotFound,
	domain.CodeValidation:   http.StatusBadRequest,
	domain.CodeConflict:     http.StatusConflict,
	domain.CodeForbidden:    http.StatusForbidden,
	domain.CodeUnauthorized: http.StatusUnauthorized,
	domain.CodeInvalidState: http.StatusConflict,
}

// RegisterStatus maps an additional domain error code to an HTTP status.
// Packages defining their own codes call this from init.
func RegisterStatus(code domain.ErrorCode, status int) {
	statusByCode[code] = status
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	de, ok := domain.AsDomainError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if status, ok := statusByCode[de.Code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 list response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// BadRequest writes a 400 validation error.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: string(domain.CodeValidation), Message: message},
	})
}

// Unauthorized writes a 401 error.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Error: &ErrorBody{Code: string(domain.CodeUnauthorized), Message: message},
	})
}

// Forbidden writes a 403 error.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{
		Error: &ErrorBody{Code: string(domain.CodeForbidden), Message: message},
	})
}

// Error writes err. Domain errors keep their code and message; anything else is
// reported as an opaque 500 and attached to the gin context for the access log.
func Error(c *gin.Context, err error) {
	if de, ok := domain.AsDomainError(err); ok {
		c.AbortWithStatusJSON(StatusFor(de), Envelope{
			Error: &ErrorBody{Code: string(de.Code), Message: de.Message},
		})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Error: &ErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"},
	})
}
