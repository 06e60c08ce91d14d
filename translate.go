package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Translate struct {
	service
}

type TranslateParams struct {
	// Text is a string or a list of strings.
	Text            any    `json:"text"                       validate:"required"`
	TargetLanguage  string `json:"target_language"            validate:"required,langcode"`
	CurrentLanguage string `json:"current_language,omitempty" validate:"omitempty,langcode"`
}

type TranslateResponse struct {
	BaseResponse

	// TranslatedText mirrors the shape of the request text.
	TranslatedText any `json:"translated_text"`
}

// Texts returns the translations as a list regardless of the request shape.
func (r *TranslateResponse) Texts() []string {
	switch value := r.TranslatedText.(type) {
	case string:
		return []string{value}
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}

		return out
	default:
		return nil
	}
}

func (t *Translate) Text(
	ctx context.Context,
	params *TranslateParams,
	opts ...httpclient.RequestOption,
) (*TranslateResponse, error) {
	return call[TranslateResponse](ctx, t.service, http.MethodPost, "/ai/translate", params, opts...)
}

type TranslateImageParams struct {
	URL            string `json:"url,omitempty"            validate:"required_without=FileStoreKey,omitempty,url"`
	FileStoreKey   string `json:"file_store_key,omitempty"`
	TargetLanguage string `json:"target_language"          validate:"required,langcode"`
	ReturnType     string `json:"return_type,omitempty"    validate:"omitempty,oneof=url base64 binary"`
}

// Image translates the text inside an image.
func (t *Translate) Image(
	ctx context.Context,
	params *TranslateImageParams,
	opts ...httpclient.RequestOption,
) (*Media, error) {
	binary := params == nil || params.ReturnType == "" || params.ReturnType == "binary"

	return callMedia(ctx, t.service, "/ai/translate/image", params, binary, opts...)
}
