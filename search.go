package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Search struct {
	service
}

type SearchParams struct {
	Query       string   `json:"query"                  validate:"required,max=400"`
	SpellCheck  *bool    `json:"spell_check,omitempty"`
	SafeSearch  string   `json:"safe_search,omitempty"  validate:"omitempty,oneof=strict moderate off"`
	AIOverview  *bool    `json:"ai_overview,omitempty"`
	ByoURLs     []string `json:"byo_urls,omitempty"     validate:"omitempty,dive,url"`
	CountryCode string   `json:"country_code,omitempty"`
	AutoScrape  *bool    `json:"auto_scrape,omitempty"`
	MaxResults  int      `json:"max_results,omitempty"  validate:"omitempty,gte=1,lte=50"`
}

type SearchResult struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Description  string   `json:"description"`
	Content      any      `json:"content,omitempty"`
	IsSafe       bool     `json:"is_safe"`
	SiteName     string   `json:"site_name,omitempty"`
	SiteLongName string   `json:"site_long_name,omitempty"`
	Age          string   `json:"age,omitempty"`
	Language     string   `json:"language,omitempty"`
	Favicon      string   `json:"favicon,omitempty"`
	Snippets     []string `json:"snippets,omitempty"`
}

type SearchResponse struct {
	BaseResponse

	Query            string         `json:"query"`
	SpellFixed       bool           `json:"spell_fixed"`
	IsSafe           bool           `json:"is_safe"`
	AIOverview       string         `json:"ai_overview,omitempty"`
	Results          []SearchResult `json:"results"`
	RelatedQuestions []string       `json:"related_questions,omitempty"`
	Links            []string       `json:"links,omitempty"`
}

func (s *Search) Search(ctx context.Context, params *SearchParams, opts ...httpclient.RequestOption) (*SearchResponse, error) {
	return call[SearchResponse](ctx, s.service, http.MethodPost, "/web/search", params, opts...)
}

type SuggestionsResponse struct {
	BaseResponse

	Query       string   `json:"query,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// Suggestions returns search completions for query.
func (s *Search) Suggestions(
	ctx context.Context,
	query string,
	opts ...httpclient.RequestOption,
) (*SuggestionsResponse, error) {
	if err := requireValue("query", query); err != nil {
		return nil, err
	}

	return call[SuggestionsResponse](ctx, s.service, http.MethodGet, "/web/search/suggest",
		map[string]any{"query": query}, opts...)
}

type DeepResearchConfig struct {
	MaxDepth           int `json:"max_depth,omitempty"            validate:"omitempty,gte=1,lte=5"`
	MaxBreadth         int `json:"max_breadth,omitempty"          validate:"omitempty,gte=1,lte=10"`
	MaxOutputTokens    int `json:"max_output_tokens,omitempty"    validate:"omitempty,gte=1"`
	TargetOutputTokens int `json:"target_output_tokens,omitempty" validate:"omitempty,gte=1"`
}

type DeepResearchParams struct {
	Query  string              `json:"query"            validate:"required"`
	Config *DeepResearchConfig `json:"config,omitempty"`
}

type ResearchSource struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type DeepResearchResponse struct {
	BaseResponse

	Results    string           `json:"results"`
	Sources    []ResearchSource `json:"sources"`
	ImageURLs  []string         `json:"image_urls,omitempty"`
	Links      []string         `json:"links,omitempty"`
	GeoResults any              `json:"geo_results,omitempty"`
}

func (s *Search) DeepResearch(
	ctx context.Context,
	params *DeepResearchParams,
	opts ...httpclient.RequestOption,
) (*DeepResearchResponse, error) {
	return call[DeepResearchResponse](ctx, s.service, http.MethodPost, "/web/deep_research", params, opts...)
}
