package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Sentiment struct {
	service
}

type SentimentParams struct {
	Text string `json:"text" validate:"required"`
}

type SentenceSentiment struct {
	Text      string  `json:"text"`
	Emotion   string  `json:"emotion"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

type SentimentResult struct {
	Emotion   string              `json:"emotion"`
	Sentiment string              `json:"sentiment"`
	Score     float64             `json:"score"`
	Sentences []SentenceSentiment `json:"sentences,omitempty"`
}

type SentimentResponse struct {
	BaseResponse

	Sentiment SentimentResult `json:"sentiment"`
}

func (s *Sentiment) Analyze(
	ctx context.Context,
	params *SentimentParams,
	opts ...httpclient.RequestOption,
) (*SentimentResponse, error) {
	return call[SentimentResponse](ctx, s.service, http.MethodPost, "/ai/sentiment", params, opts...)
}
