package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

// gte returns a ParamValidator that checks if the argument is greater than or equal to the given value.
func gte(bound int64) ParamValidator {
	return func(v int64) bool { return v >= bound }
}

// gt returns a ParamValidator that checks if the argument is strictly greater than the given value.
func gt(bound int64) ParamValidator {
	return func(v int64) bool { return v > bound }
}

func ParseValidateGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, value int64) (int32, bool) {
	return parseValidate(r, w, logger, key, gte(value))
}

func ParseValidateGt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, value int64) (int32, bool) {
	return parseValidate(r, w, logger, key, gt(value))
}

func parseValidate(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}

// ParseInt32 extracts a required integer query parameter without bounds;
// negative values are accepted.
func ParseInt32(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}

// ParseFloat extracts a required float query parameter.
// Returns the value and a boolean indicating success; on failure a 400
// response has already been written.
func ParseFloat(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (float64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return floatValue, true
}

// ParseBool extracts a required boolean query parameter.
func ParseBool(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (bool, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return false, false
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s value: %s", key, value))
		return false, false
	}
	return boolValue, true
}

// ParseString extracts a required string query parameter.
func ParseString(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (string, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return "", false
	}
	return value, true
}
