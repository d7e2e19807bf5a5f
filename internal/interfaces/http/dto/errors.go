package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Not found
	"NOT_FOUND":      http.StatusNotFound,
	"LINE_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":     http.StatusConflict,
	"SHIFT_ALREADY_OPEN": http.StatusConflict,

	// Auth
	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	// State violations
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"INVALID_STAGE":           http.StatusUnprocessableEntity,
	"INVALID_SOURCE":          http.StatusUnprocessableEntity,
	"INVALID_LINES":           http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_TENDER":     http.StatusUnprocessableEntity,
	"PAYMENT_METHOD_REQUIRED": http.StatusUnprocessableEntity,
	"SHIFT_CLOSED":            http.StatusUnprocessableEntity,
	"VISIT_CLOSED":            http.StatusUnprocessableEntity,
	"PENDING_PRESCRIPTION":    http.StatusUnprocessableEntity,

	// Bad input
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_NUMBER":        http.StatusBadRequest,
	"INVALID_CODE":          http.StatusBadRequest,
	"INVALID_NAME":          http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_AMOUNT":        http.StatusBadRequest,
	"INVALID_REASON":        http.StatusBadRequest,
	"INVALID_CUSTOMER":      http.StatusBadRequest,
	"INVALID_CUSTOMER_NAME": http.StatusBadRequest,
	"INVALID_CASHIER":       http.StatusBadRequest,
	"INVALID_STAFF":         http.StatusBadRequest,
	"INVALID_STAFF_NAME":    http.StatusBadRequest,
	"INVALID_RATE":          http.StatusBadRequest,
	"INVALID_PATIENT":       http.StatusBadRequest,
	"INVALID_PATIENT_NAME":  http.StatusBadRequest,
	"INVALID_DOCTOR":        http.StatusBadRequest,
	"INVALID_VISIT":         http.StatusBadRequest,
	"INVALID_ITEM":          http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
