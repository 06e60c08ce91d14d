package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type ImageGeneration struct {
	service
}

type ImageAdvanceConfig struct {
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Guidance       float64 `json:"guidance,omitempty"        validate:"omitempty,gte=1,lte=28"`
	Seed           int64   `json:"seed,omitempty"`
}

type ImageGenerationParams struct {
	Prompt        string              `json:"prompt"                   validate:"required,min=1,max=5000"`
	AspectRatio   string              `json:"aspect_ratio,omitempty"   validate:"omitempty,oneof=1:1 16:9 21:9 3:2 2:3 4:5 5:4 3:4 4:3 9:16 9:21"`
	Width         int                 `json:"width,omitempty"          validate:"omitempty,gte=256,lte=1920"`
	Height        int                 `json:"height,omitempty"         validate:"omitempty,gte=256,lte=1920"`
	Steps         int                 `json:"steps,omitempty"          validate:"omitempty,gte=1,lte=90"`
	OutputFormat  string              `json:"output_format,omitempty"  validate:"omitempty,oneof=png svg"`
	ReturnType    string              `json:"return_type,omitempty"    validate:"omitempty,oneof=url base64 binary"`
	URL           string              `json:"url,omitempty"            validate:"omitempty,url"`
	FileStoreKey  string              `json:"file_store_key,omitempty"`
	AdvanceConfig *ImageAdvanceConfig `json:"advance_config,omitempty"`
}

// Generate creates an image from a prompt. The API answers with image bytes
// or, for url and base64 return types, a JSON document.
func (g *ImageGeneration) Generate(
	ctx context.Context,
	params *ImageGenerationParams,
	opts ...httpclient.RequestOption,
) (*Media, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	env, err := g.transport.Perform(ctx, &httpclient.Request{
		Method: http.MethodPost,
		Path:   "/ai/image_generation",
		Params: params,
	}, opts...)
	if err != nil {
		return nil, err
	}

	return mediaFromEnvelope(env)
}
