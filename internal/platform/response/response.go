package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// envelope is the uniform success body.
type envelope struct {
	Data interface{} `json:"data"`
}

// errorBody is the uniform error body.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// paginatedEnvelope wraps list responses with paging metadata.
type paginatedEnvelope struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Success writes a 200 response with the data envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

// Created writes a 201 response with the data envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 list response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Error maps a domain error to its HTTP status. Anything that is not a
// domain error becomes an opaque 500; the original error never reaches the
// client.
func Error(c *gin.Context, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		writeError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeError(c, statusForKind(de.Kind), de.Code, de.Message)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalidState:
		return http.StatusUnprocessableEntity
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	c.JSON(status, body)
}
