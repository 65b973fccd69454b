package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Aideepakchaudhary/chainmate/pkg/chainmate"
)

// apiResponse is the envelope every endpoint answers with: success flag,
// payload or null, ISO-8601 timestamp, request duration in milliseconds
// (absent on requests rejected before processing), and an error message
// when unsuccessful.
type apiResponse struct {
	Success         bool   `json:"success"`
	Data            any    `json:"data"`
	Timestamp       string `json:"timestamp"`
	RequestDuration *int64 `json:"requestDuration,omitempty"`
	Error           string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess writes a successful envelope with the request duration.
func writeSuccess(w http.ResponseWriter, data any, started time.Time) {
	writeJSON(w, http.StatusOK, apiResponse{
		Success:         true,
		Data:            data,
		Timestamp:       isoNow(),
		RequestDuration: durationSince(started),
	})
}

// writeError writes a failure envelope for requests rejected before any
// processing happened.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{
		Success:   false,
		Timestamp: isoNow(),
		Error:     message,
	})
}

// writeCoreError converts a core error into a failure envelope, mapping
// structured error codes to HTTP statuses.
func writeCoreError(w http.ResponseWriter, err error, started time.Time) {
	status := http.StatusInternalServerError
	var coreErr *chainmate.Error
	if errors.As(err, &coreErr) {
		status = mapErrorCodeToHTTPStatus(coreErr.Code)
	}
	writeJSON(w, status, apiResponse{
		Success:         false,
		Timestamp:       isoNow(),
		RequestDuration: durationSince(started),
		Error:           chainmate.ErrorMessage(err),
	})
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code chainmate.ErrorCode) int {
	switch code {
	case chainmate.ErrCodeValidation:
		return http.StatusBadRequest
	case chainmate.ErrCodeUpstreamFetch:
		return http.StatusBadGateway
	case chainmate.ErrCodeModelConfig:
		return http.StatusInternalServerError
	case chainmate.ErrCodeModelQuota:
		return http.StatusServiceUnavailable
	case chainmate.ErrCodeModelTimeout:
		return http.StatusGatewayTimeout
	case chainmate.ErrCodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func durationSince(started time.Time) *int64 {
	ms := time.Since(started).Milliseconds()
	return &ms
}
