package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}

func init() {
	// Binding errors report JSON or query names, e.g. "items[0].unitPrice".
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireName)
	}
}

func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// bindErrorFields turns a binding failure into field errors. Failures that are not
// field-level (malformed JSON, wrong types) come back as nil.
func bindErrorFields(err error) apperrors.ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out.Add(field, domain.FieldMessage(fe.Tag(), fe.Param()))
	}
	return out
}

// bindJSON decodes the body into req and writes a 400 when it is malformed or fails a binding rule.
func bindJSON(c *gin.Context, req any) bool {
	return bindWith(c, req, c.ShouldBindJSON, "Invalid request format: ")
}

// bindQuery binds query parameters into params and writes a 400 on failure.
func bindQuery(c *gin.Context, params any) bool {
	return bindWith(c, params, c.ShouldBindQuery, "Invalid query parameters: ")
}

func bindWith(c *gin.Context, v any, bind func(any) error, prefix string) bool {
	err := bind(v)
	if err == nil {
		return true
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	if fields := bindErrorFields(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperrors.ErrValidation.Error(), Fields: fields})
		return false
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: prefix + err.Error()})
	return false
}

// respondError maps a service error to its HTTP status. Unexpected errors are logged and hidden
// behind "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var verrs apperrors.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperrors.ErrValidation.Error(), Fields: verrs})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting write", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}
