package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Request describes one API call. Exactly one body encoding applies: Files
// selects multipart, Body selects a raw binary upload, otherwise Params is
// sent as JSON (or as the query string for GET and DELETE).
type Request struct {
	Method  string
	Path    string
	Params  any
	Headers map[string]string
	Body    []byte
	Files   map[string]FilePart
	// Stream marks a long-lived response. Client timeouts do not apply.
	Stream bool
}

// FilePart is a multipart file field. It is either a Blob or a NamedFile.
type FilePart interface {
	filePart()
}

type Blob []byte

func (Blob) filePart() {}

type NamedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (NamedFile) filePart() {}

type bodyMode int

const (
	bodyJSON bodyMode = iota
	bodyRaw
	bodyMultipart
)

type plan struct {
	method    string
	url       string
	path      string
	headers   map[string]string
	body      []byte
	requestID string
	stream    bool
}

func (c *Client) buildPlan(req *Request, cfg *requestConfig) (*plan, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	path := req.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mode := bodyJSON

	switch {
	case len(req.Files) > 0:
		mode = bodyMultipart
	case req.Body != nil:
		mode = bodyRaw
	}

	query := make(map[string]any, len(cfg.query))
	for key, value := range cfg.query {
		query[key] = value
	}

	var (
		body        []byte
		contentType string
	)

	switch mode {
	case bodyJSON:
		if method == http.MethodGet || method == http.MethodDelete {
			if err := mergeQuery(query, req.Params); err != nil {
				return nil, err
			}

			break
		}

		if req.Params != nil {
			encoded, err := json.Marshal(req.Params)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
			}

			body = encoded
		}
	case bodyRaw:
		if err := mergeQuery(query, req.Params); err != nil {
			return nil, err
		}

		body = req.Body
	case bodyMultipart:
		encoded, formType, err := encodeMultipart(req.Files, req.Params)
		if err != nil {
			return nil, err
		}

		body = encoded
		contentType = formType
	}

	override := make(map[string]string, len(req.Headers)+len(cfg.headers))
	maps.Copy(override, req.Headers)
	maps.Copy(override, cfg.headers)

	headers := ComposeHeaders(c.config, override, mode == bodyRaw, mode == bodyMultipart)

	if contentType != "" {
		headers[HeaderContentType] = contentType
	}

	if _, ok := headers[HeaderContentType]; !ok && mode == bodyRaw {
		headers[HeaderContentType] = ContentTypeOctetStream
	}

	if _, ok := headers[HeaderUserAgent]; !ok && c.userAgent != "" {
		headers[HeaderUserAgent] = c.userAgent
	}

	requestID := cfg.requestID
	if requestID == "" {
		requestID = headers[HeaderXRequestID]
	}

	if requestID == "" {
		requestID = uuid.New().String()
	}

	headers[HeaderXRequestID] = requestID

	return &plan{
		method:    method,
		url:       c.config.BaseURL + BuildPath(path, query),
		path:      path,
		headers:   headers,
		body:      body,
		requestID: requestID,
		stream:    req.Stream,
	}, nil
}

func mergeQuery(query map[string]any, params any) error {
	object, ok, err := paramsObject(params)
	if err != nil {
		return err
	}

	if !ok {
		if params != nil {
			return fmt.Errorf("%w: query params must be an object", ErrInvalidRequest)
		}

		return nil
	}

	maps.Copy(query, object)

	return nil
}

func encodeMultipart(files map[string]FilePart, params any) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range slices.Sorted(maps.Keys(files)) {
		if err := writeFilePart(writer, field, files[field]); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
	}

	object, ok, err := paramsObject(params)
	if err != nil {
		return nil, "", err
	}

	if ok && len(object) > 0 {
		encoded, err := json.Marshal(object)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		if err := writer.WriteField("body", string(encoded)); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, field string, part FilePart) error {
	switch file := part.(type) {
	case Blob:
		w, err := writer.CreateFormFile(field, field)
		if err != nil {
			return err
		}

		_, err = w.Write(file)

		return err
	case NamedFile:
		filename := file.Filename
		if filename == "" {
			filename = field
		}

		contentType := file.ContentType
		if contentType == "" {
			contentType = ContentTypeOctetStream
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(field), escapeQuotes(filename)))
		header.Set(HeaderContentType, contentType)

		w, err := writer.CreatePart(header)
		if err != nil {
			return err
		}

		_, err = w.Write(file.Content)

		return err
	default:
		return fmt.Errorf("unsupported file part %T for field %q", part, field)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
