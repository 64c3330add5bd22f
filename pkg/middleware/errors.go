package middleware

import (
	"net/http"

	apperrors "classbook/pkg/errors"
	httputil "classbook/pkg/http"
)

// Codes for requests rejected before they reach a handler.
const (
	CodeRateLimited          = "RATE_LIMITED"
	CodeRequestTimeout       = "REQUEST_TIMEOUT"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
)

func reject(w http.ResponseWriter, status int, code, message string) {
	_ = httputil.WriteError(w, apperrors.New(code, message, status))
}
