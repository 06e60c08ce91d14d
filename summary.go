package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Summary struct {
	service
}

type SummaryParams struct {
	Text          string `json:"text,omitempty"           validate:"required_without_all=URL FileStoreKey"`
	URL           string `json:"url,omitempty"            validate:"omitempty,url"`
	FileStoreKey  string `json:"file_store_key,omitempty"`
	Type          string `json:"type,omitempty"           validate:"omitempty,oneof=text points"`
	MaxPoints     int    `json:"max_points,omitempty"     validate:"omitempty,gte=1,lte=100"`
	MaxCharacters int    `json:"max_characters,omitempty" validate:"omitempty,gte=1"`
}

type SummaryResponse struct {
	BaseResponse

	// Summary is a string for type "text" and a list for type "points".
	Summary any `json:"summary"`
}

// Points returns the summary as a list of points.
func (r *SummaryResponse) Points() []string {
	switch value := r.Summary.(type) {
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

func (s *Summary) Summarize(
	ctx context.Context,
	params *SummaryParams,
	opts ...httpclient.RequestOption,
) (*SummaryResponse, error) {
	return call[SummaryResponse](ctx, s.service, http.MethodPost, "/ai/summary", params, opts...)
}
