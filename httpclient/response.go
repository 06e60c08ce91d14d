package httpclient

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindJSON
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindJSON:
		return "json"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Envelope is a decoded 2xx response. Body holds the raw JSON document for
// KindJSON and the raw bytes for KindBinary.
type Envelope struct {
	Kind        Kind
	StatusCode  int
	ContentType string
	Body        []byte
	Header      http.Header
	RequestID   string
}

func (e *Envelope) IsEmpty() bool {
	return e == nil || e.Kind == KindEmpty
}

// Decode unmarshals a JSON envelope into v.
func (e *Envelope) Decode(v any) error {
	if e == nil || e.Kind != KindJSON {
		return fmt.Errorf("%w: envelope holds %s content", ErrDecodeResponse, e.kind())
	}

	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}

func (e *Envelope) kind() Kind {
	if e == nil {
		return KindEmpty
	}

	return e.Kind
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   any    `json:"error"`
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) //nolint:mnd
	}

	return parsed
}

func isJSONContentType(mt string) bool {
	return mt == ContentTypeJSON || strings.HasSuffix(mt, "+json")
}

func isBinaryContentType(mt string) bool {
	switch {
	case strings.HasPrefix(mt, "audio/"), strings.HasPrefix(mt, "image/"), strings.HasPrefix(mt, "video/"):
		return true
	case mt == ContentTypeOctetStream, mt == "application/pdf", mt == "application/zip":
		return true
	default:
		return false
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
