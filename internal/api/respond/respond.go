package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Err maps application errors onto HTTP statuses.
func Err(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err.Error())
}

func StatusFor(err error) int {
	switch {
	case appErrors.IsNotFound(err):
		return http.StatusNotFound
	case appErrors.IsIncomplete(err):
		return http.StatusUnprocessableEntity
	case appErrors.IsGenerationFailed(err):
		return http.StatusBadGateway
	case errors.Is(err, appErrors.ErrGenerationInProgress),
		errors.Is(err, appErrors.ErrGenerationSuperseded),
		errors.Is(err, appErrors.ErrAlreadySubmitted),
		errors.Is(err, appErrors.ErrStatusRegression):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrChannelNotSelected),
		errors.Is(err, appErrors.ErrInvalidChannel),
		errors.Is(err, appErrors.ErrEmptyText),
		errors.Is(err, appErrors.ErrEmptyPrompt):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Decode reads a JSON body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid body")
		return false
	}
	return true
}

// DecodeOptional is Decode for endpoints whose body may be omitted.
func DecodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "invalid body")
		return false
	}
	return true
}
