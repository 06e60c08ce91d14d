package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Classification struct {
	service
}

type ClassificationItem struct {
	Type  string `json:"type"  validate:"required,oneof=text image"`
	Value string `json:"value" validate:"required"`
}

type ClassificationLabel struct {
	Key   string `json:"key,omitempty"`
	Type  string `json:"type"          validate:"required,oneof=text image"`
	Value string `json:"value"         validate:"required"`
}

type ClassificationParams struct {
	Dataset        []ClassificationItem  `json:"dataset"                   validate:"required,min=1,dive"`
	Labels         []ClassificationLabel `json:"labels"                    validate:"required,min=2,dive"`
	MultipleLabels bool                  `json:"multiple_labels,omitempty"`
}

type ClassificationResponse struct {
	BaseResponse

	// Predictions holds one label, or a list of labels with MultipleLabels,
	// per dataset item.
	Predictions []any `json:"predictions"`
}

func (c *Classification) Classify(
	ctx context.Context,
	params *ClassificationParams,
	opts ...httpclient.RequestOption,
) (*ClassificationResponse, error) {
	return call[ClassificationResponse](ctx, c.service, http.MethodPost, "/classification", params, opts...)
}
