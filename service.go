package jigsawstack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/validator"
)

// BaseResponse carries the fields every JSON response shares.
type BaseResponse struct {
	Success bool `json:"success"`
}

// FileResponse is a binary response body.
type FileResponse struct {
	Content     []byte
	ContentType string
}

// Media is returned by endpoints that answer with either a binary file or a
// JSON document holding a URL or base64 payload.
type Media struct {
	File   *FileResponse
	URL    string
	Base64 string
	Raw    json.RawMessage
}

// IsFile reports whether the API returned the bytes directly.
func (m *Media) IsFile() bool {
	return m != nil && m.File != nil
}

type service struct {
	transport *httpclient.Client
}

func validateParams(params any) error {
	if rv := reflect.ValueOf(params); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return fmt.Errorf("%w: params are required", ErrInvalidParams)
	}

	if err := validator.Default().ValidateParams(params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return nil
}

func requireValue(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParams, name)
	}

	return nil
}

func resourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// call validates params, sends them to path and decodes the JSON answer.
func call[T any](
	ctx context.Context,
	s service,
	method, path string,
	params any,
	opts ...httpclient.RequestOption,
) (*T, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	result, err := httpclient.PerformJSON[T](ctx, s.transport, &httpclient.Request{
		Method: method,
		Path:   path,
		Params: params,
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// callMultipart is call with an uploaded file; params travel as the "body"
// form field and may be nil.
func callMultipart[T any](
	ctx context.Context,
	s service,
	path string,
	field string,
	file httpclient.FilePart,
	params any,
	opts ...httpclient.RequestOption,
) (*T, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidParams, field)
	}

	if params != nil {
		if err := validateParams(params); err != nil {
			return nil, err
		}
	}

	result, err := httpclient.PerformJSON[T](ctx, s.transport, &httpclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Params: params,
		Files:  map[string]httpclient.FilePart{field: file},
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// callMedia posts params and returns the answer as Media. binary selects the
// file executor, which accepts any non-JSON content type.
func callMedia(
	ctx context.Context,
	s service,
	path string,
	params any,
	binary bool,
	opts ...httpclient.RequestOption,
) (*Media, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	req := &httpclient.Request{Method: http.MethodPost, Path: path, Params: params}

	var (
		env *httpclient.Envelope
		err error
	)

	if binary {
		env, err = s.transport.PerformWithContentFile(ctx, req, opts...)
	} else {
		env, err = s.transport.PerformWithContent(ctx, req, opts...)
	}

	if err != nil {
		return nil, err
	}

	return mediaFromEnvelope(env)
}

func mediaFromEnvelope(env *httpclient.Envelope) (*Media, error) {
	switch env.Kind {
	case httpclient.KindBinary:
		return &Media{
			File:   &FileResponse{Content: env.Body, ContentType: env.ContentType},
			URL:    "",
			Base64: "",
			Raw:    nil,
		}, nil
	case httpclient.KindJSON:
		var payload struct {
			URL    string `json:"url"`
			Base64 string `json:"base64"`
			Image  string `json:"image"`
		}

		if err := env.Decode(&payload); err != nil {
			return nil, err
		}

		if payload.Base64 == "" {
			payload.Base64 = payload.Image
		}

		return &Media{File: nil, URL: payload.URL, Base64: payload.Base64, Raw: env.Body}, nil
	case httpclient.KindEmpty:
		return nil, httpclient.ErrNoContent
	default:
		return nil, fmt.Errorf("%w: %s body", ErrUnexpectedResponse, env.Kind)
	}
}
