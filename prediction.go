package jigsawstack

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/shopspring/decimal"
)

type Prediction struct {
	service
}

// DataPoint is one observation of a time series. Values keep their exact
// decimal representation on the wire.
type DataPoint struct {
	Date  string          `json:"date"  validate:"required"`
	Value decimal.Decimal `json:"value"`
}

func (p DataPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string      `json:"date"`
		Value json.Number `json:"value"`
	}{Date: p.Date, Value: json.Number(p.Value.String())})
}

type PredictionParams struct {
	Dataset []DataPoint `json:"dataset"         validate:"required,min=5,dive"`
	Steps   int         `json:"steps,omitempty" validate:"omitempty,gte=1,lte=500"`
}

type PredictionResponse struct {
	BaseResponse

	Prediction []DataPoint `json:"prediction"`
	Steps      int         `json:"steps,omitempty"`
}

func (p *Prediction) Predict(
	ctx context.Context,
	params *PredictionParams,
	opts ...httpclient.RequestOption,
) (*PredictionResponse, error) {
	return call[PredictionResponse](ctx, p.service, http.MethodPost, "/ai/prediction", params, opts...)
}
