package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/railtrack/internal/identity"
	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
	lotdomain "github.com/smallbiznis/railtrack/internal/lot/domain"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isCodeError(err):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "unreadable_code",
			Message: err.Error(),
		}
	case errors.Is(err, productdomain.ErrPreconditionFailed):
		return http.StatusPreconditionFailed, errorPayload{
			Type:    "precondition_failed",
			Message: preconditionMessage(err),
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, manufacturerdomain.ErrExists),
		errors.Is(err, receiptdomain.ErrAlreadyReceived):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isManufacturerValidationError(err),
		isLotValidationError(err),
		isInstallationValidationError(err),
		isInspectionValidationError(err),
		isProductValidationError(err):
		return true
	default:
		return false
	}
}

func isCodeError(err error) bool {
	return errors.Is(err, identity.ErrMalformed) || errors.Is(err, identity.ErrNotAProduct)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, manufacturerdomain.ErrNotFound),
		errors.Is(err, lotdomain.ErrNotFound),
		errors.Is(err, lotdomain.ErrManufacturerNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, receiptdomain.ErrLotNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isManufacturerValidationError(err error) bool {
	return errors.Is(err, manufacturerdomain.ErrInvalidName)
}

func isLotValidationError(err error) bool {
	switch {
	case errors.Is(err, lotdomain.ErrInvalidQuantity),
		errors.Is(err, lotdomain.ErrInvalidProductType),
		errors.Is(err, lotdomain.ErrInvalidWarrantyMonths):
		return true
	default:
		return false
	}
}

func isInstallationValidationError(err error) bool {
	return errors.Is(err, installationdomain.ErrInvalidLocation) ||
		errors.Is(err, installationdomain.ErrInvalidCoordinates)
}

func isInspectionValidationError(err error) bool {
	return errors.Is(err, inspectiondomain.ErrInvalidCondition)
}

func isProductValidationError(err error) bool {
	return errors.Is(err, productdomain.ErrInvalidStatusFilter) ||
		errors.Is(err, productdomain.ErrInvalidPageToken) ||
		errors.Is(err, receiptdomain.ErrInvalidDepot)
}

func preconditionMessage(err error) string {
	var pErr *productdomain.PreconditionError
	if errors.As(err, &pErr) {
		return pErr.Error()
	}
	return "precondition failed"
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, receiptdomain.ErrAlreadyReceived):
		return "lot already received"
	case errors.Is(err, manufacturerdomain.ErrExists):
		return "manufacturer already exists"
	default:
		return "conflict"
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "internal", payload.Type
	case status == http.StatusPreconditionFailed:
		return "precondition", payload.Type
	case status == http.StatusConflict:
		return "conflict", payload.Type
	case status == http.StatusNotFound:
		return "not_found", payload.Type
	default:
		return "client", payload.Type
	}
}
