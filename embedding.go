package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Embedding struct {
	service
}

// EmbeddingParams covers both embedding API versions. SpeakerFingerprint
// only applies to audio and fills EmbeddingResponse.SpeakerEmbeddings.
type EmbeddingParams struct {
	Type               string `json:"type"                          validate:"required,oneof=text text-other image audio pdf"`
	Text               string `json:"text,omitempty"`
	URL                string `json:"url,omitempty"                 validate:"omitempty,url"`
	FileStoreKey       string `json:"file_store_key,omitempty"`
	TokenOverflowMode  string `json:"token_overflow_mode,omitempty" validate:"omitempty,oneof=truncate error"`
	SpeakerFingerprint bool   `json:"speaker_fingerprint,omitempty"`
}

type EmbeddingResponse struct {
	BaseResponse

	Embeddings        [][]float64 `json:"embeddings"`
	Chunks            []any       `json:"chunks,omitempty"`
	SpeakerEmbeddings [][]float64 `json:"speaker_embeddings,omitempty"`
}

func (e *Embedding) Embed(
	ctx context.Context,
	params *EmbeddingParams,
	opts ...httpclient.RequestOption,
) (*EmbeddingResponse, error) {
	return call[EmbeddingResponse](ctx, e.service, http.MethodPost, "/embedding", params, opts...)
}

// EmbedFile uploads the content to embed as a multipart "file" field.
func (e *Embedding) EmbedFile(
	ctx context.Context,
	file httpclient.FilePart,
	params *EmbeddingParams,
	opts ...httpclient.RequestOption,
) (*EmbeddingResponse, error) {
	if params == nil {
		return nil, validateParams(params)
	}

	return callMultipart[EmbeddingResponse](ctx, e.service, "/embedding", "file", file, params, opts...)
}
