package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAPI              = errors.New("httpclient: api error")
	ErrDecodeResponse   = errors.New("httpclient: failed to decode response")
	ErrCreateRequest    = errors.New("httpclient: failed to create request")
	ErrEncodeBody       = errors.New("httpclient: failed to encode request body")
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
	ErrNoContent        = errors.New("httpclient: no content was returned from the api")
	ErrInvalidConfig    = errors.New("httpclient: invalid config")
	ErrInvalidRequest   = errors.New("httpclient: invalid request")
	ErrAsyncPanic       = errors.New("httpclient: async call panicked")

	ErrValidation            = errors.New("httpclient: validation error")
	ErrMissingRequiredFields = errors.New("httpclient: missing required fields")
	ErrMissingAPIKey         = errors.New("httpclient: missing api key")
	ErrInvalidAPIKey         = errors.New("httpclient: invalid api key")
	ErrApplication           = errors.New("httpclient: application error")
)

// ParseFailureMessage is the message carried by the synthetic 500 error
// produced when a response body cannot be decoded.
const ParseFailureMessage = "failed to parse response; invalid content type or encoding"

type errorKind struct {
	sentinel        error
	defaultMessage  string
	suggestedAction string
}

var (
	kindValidation = errorKind{
		sentinel:        ErrValidation,
		defaultMessage:  "The request body is missing one or more required fields.",
		suggestedAction: "Check the error message to see the list of missing fields.",
	}
	kindMissingRequiredFields = errorKind{
		sentinel:        ErrMissingRequiredFields,
		defaultMessage:  "The request body is missing one or more required fields.",
		suggestedAction: "Check the error message to see the list of missing fields.",
	}
	kindMissingAPIKey = errorKind{
		sentinel:        ErrMissingAPIKey,
		defaultMessage:  "Missing API key in the x-api-key header.",
		suggestedAction: "Include the x-api-key header with your JigsawStack API key.",
	}
	kindInvalidAPIKey = errorKind{
		sentinel:        ErrInvalidAPIKey,
		defaultMessage:  "The API key is invalid.",
		suggestedAction: "Generate a new API key in the dashboard.",
	}
	kindApplication = errorKind{
		sentinel:        ErrApplication,
		defaultMessage:  "Something went wrong.",
		suggestedAction: "Contact JigsawStack support.",
	}
)

// errorTable is consulted first by (status, error type), then by status alone.
var errorTable = map[int]map[string]errorKind{
	http.StatusBadRequest: {
		"validation_error": kindValidation,
	},
	http.StatusUnprocessableEntity: {
		"missing_required_fields": kindMissingRequiredFields,
		"validation_error":        kindValidation,
	},
	http.StatusUnauthorized: {
		"missing_api_key": kindMissingAPIKey,
	},
	http.StatusForbidden: {
		"invalid_api_key": kindInvalidAPIKey,
	},
	http.StatusInternalServerError: {
		"application_error": kindApplication,
	},
}

var statusDefaults = map[int]errorKind{
	http.StatusBadRequest:          kindValidation,
	http.StatusUnauthorized:        kindMissingAPIKey,
	http.StatusForbidden:           kindInvalidAPIKey,
	http.StatusUnprocessableEntity: kindMissingRequiredFields,
	http.StatusInternalServerError: kindApplication,
}

// APIError is returned for every non-2xx response and for 2xx responses
// whose body could not be decoded.
type APIError struct {
	StatusCode      int
	Message         string
	ErrorType       string
	Raw             any
	SuggestedAction string
	RequestID       string

	causes []error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	if e.ErrorType != "" {
		return fmt.Sprintf("httpclient: status %d (%s): %s", e.StatusCode, e.ErrorType, msg)
	}

	return fmt.Sprintf("httpclient: status %d: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() []error {
	return append([]error{ErrAPI}, e.causes...)
}

// MapError translates a failed response into an *APIError. It never
// returns nil.
func MapError(status int, message string, raw any) *APIError {
	errorType := errorTypeOf(raw)

	apiErr := &APIError{
		StatusCode:      status,
		Message:         message,
		ErrorType:       errorType,
		Raw:             raw,
		SuggestedAction: "",
		RequestID:       "",
		causes:          nil,
	}

	kind, ok := lookupKind(status, errorType)
	if !ok {
		return apiErr
	}

	apiErr.causes = []error{kind.sentinel}
	apiErr.SuggestedAction = kind.suggestedAction

	if apiErr.Message == "" {
		apiErr.Message = kind.defaultMessage
	}

	return apiErr
}

func newParseError() *APIError {
	apiErr := MapError(http.StatusInternalServerError, ParseFailureMessage, nil)
	apiErr.causes = append(apiErr.causes, ErrDecodeResponse)

	return apiErr
}

func lookupKind(status int, errorType string) (errorKind, bool) {
	if errorType != "" {
		if kind, ok := errorTable[status][errorType]; ok {
			return kind, true
		}
	}

	kind, ok := statusDefaults[status]

	return kind, ok
}

func errorTypeOf(raw any) string {
	switch value := raw.(type) {
	case string:
		return value
	case map[string]any:
		for _, key := range []string{"type", "code"} {
			if s, ok := value[key].(string); ok {
				return s
			}
		}
	}

	return ""
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
