package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

const (
	fileStorePath = "/store/file"
	kvStorePath   = "/store/kv"
)

type FileStore struct {
	service
}

type FileUploadParams struct {
	Key           string `json:"key,omitempty"`
	Overwrite     *bool  `json:"overwrite,omitempty"`
	TempPublicURL *bool  `json:"temp_public_url,omitempty"`
	// ContentType is sent as the request Content-Type. It defaults to
	// application/octet-stream.
	ContentType string `json:"-"`
}

type FileUploadResponse struct {
	Key           string `json:"key"`
	URL           string `json:"url"`
	Size          int64  `json:"size"`
	TempPublicURL string `json:"temp_public_url,omitempty"`
}

// Upload stores content as the raw request body. Key and flags travel in the
// query string.
func (f *FileStore) Upload(
	ctx context.Context,
	content []byte,
	params *FileUploadParams,
	opts ...httpclient.RequestOption,
) (*FileUploadResponse, error) {
	if content == nil {
		content = []byte{}
	}

	req := &httpclient.Request{Method: http.MethodPost, Path: fileStorePath, Body: content}

	if params != nil {
		req.Params = params

		if params.ContentType != "" {
			req.Headers = map[string]string{httpclient.HeaderContentType: params.ContentType}
		}
	}

	resp, err := httpclient.PerformJSON[FileUploadResponse](ctx, f.transport, req, opts...)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Get downloads a stored file. Stored JSON documents are returned as bytes
// like any other file.
func (f *FileStore) Get(ctx context.Context, key string, opts ...httpclient.RequestOption) (*FileResponse, error) {
	if err := requireValue("key", key); err != nil {
		return nil, err
	}

	env, err := f.transport.PerformWithContentFile(ctx, &httpclient.Request{
		Method: http.MethodGet,
		Path:   resourcePath(fileStorePath, key),
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &FileResponse{Content: env.Body, ContentType: env.ContentType}, nil
}

type DeleteResponse struct {
	BaseResponse

	Message string `json:"message,omitempty"`
}

func (f *FileStore) Delete(ctx context.Context, key string, opts ...httpclient.RequestOption) (*DeleteResponse, error) {
	if err := requireValue("key", key); err != nil {
		return nil, err
	}

	return deleteResource(ctx, f.service, resourcePath(fileStorePath, key), opts...)
}

func deleteResource(ctx context.Context, s service, path string, opts ...httpclient.RequestOption) (*DeleteResponse, error) {
	resp, ok, err := httpclient.PerformOptionalJSON[DeleteResponse](ctx, s.transport, &httpclient.Request{
		Method: http.MethodDelete,
		Path:   path,
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !ok {
		resp = DeleteResponse{BaseResponse: BaseResponse{Success: true}, Message: ""}
	}

	return &resp, nil
}

type KV struct {
	service
}

type KVAddParams struct {
	Key     string `json:"key"               validate:"required"`
	Value   string `json:"value"             validate:"required"`
	Encrypt *bool  `json:"encrypt,omitempty"`
}

type KVAddResponse struct {
	BaseResponse
}

type KVGetResponse struct {
	BaseResponse

	Value string `json:"value"`
}

func (k *KV) Add(ctx context.Context, params *KVAddParams, opts ...httpclient.RequestOption) (*KVAddResponse, error) {
	return call[KVAddResponse](ctx, k.service, http.MethodPost, kvStorePath, params, opts...)
}

func (k *KV) Get(ctx context.Context, key string, opts ...httpclient.RequestOption) (*KVGetResponse, error) {
	if err := requireValue("key", key); err != nil {
		return nil, err
	}

	return call[KVGetResponse](ctx, k.service, http.MethodGet, resourcePath(kvStorePath, key), nil, opts...)
}

func (k *KV) Delete(ctx context.Context, key string, opts ...httpclient.RequestOption) (*DeleteResponse, error) {
	if err := requireValue("key", key); err != nil {
		return nil, err
	}

	return deleteResource(ctx, k.service, resourcePath(kvStorePath, key), opts...)
}
