package appwrite

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/moviehub-app/moviehub/internal/common"
)

// apiError is the backend's error envelope.
type apiError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// transportError wraps network-level failures. The remote is unreachable,
// which is always an infrastructure condition.
func transportError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

// mapAPIError translates a backend error response into the closed sentinel
// taxonomy. Classification happens here, once, by error type first and
// status code second; callers match with errors.Is and never look at the
// wire shape again.
func mapAPIError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		e = apiError{Code: status, Message: http.StatusText(status)}
	}

	sentinel := classify(status, e.Type)
	if e.Message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, e.Message)
}

func classify(status int, errType string) error {
	switch errType {
	case "user_invalid_credentials":
		return common.ErrInvalidCredentials
	case "user_already_exists", "user_email_already_exists":
		return common.ErrAccountExists
	case "user_not_found":
		return common.ErrAccountNotFound
	case "document_not_found":
		return common.ErrFavoriteNotFound
	case "user_password_mismatch", "password_recently_used", "password_personal_data",
		"general_argument_invalid", "user_password_reset_required":
		return common.ErrValidation
	case "general_unauthorized_scope", "user_unauthorized", "user_session_not_found",
		"user_jwt_invalid", "user_blocked":
		return common.ErrNoSession
	}

	switch status {
	case http.StatusUnauthorized:
		return common.ErrNoSession
	case http.StatusNotFound:
		return common.ErrAccountNotFound
	case http.StatusConflict:
		return common.ErrAccountExists
	case http.StatusBadRequest:
		return common.ErrValidation
	default:
		// 5xx, rate limits, project misconfiguration.
		return common.ErrUnavailable
	}
}
