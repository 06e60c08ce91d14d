package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Web struct {
	service
}

type Cookie struct {
	Name   string `json:"name"             validate:"required"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

type WaitFor struct {
	Mode  string `json:"mode"  validate:"required,oneof=selector timeout function"`
	Value any    `json:"value" validate:"required"`
}

type AIScrapeParams struct {
	URL                 string            `json:"url,omitempty"                   validate:"required_without=HTML,omitempty,url"`
	HTML                string            `json:"html,omitempty"`
	ElementPrompts      []string          `json:"element_prompts"                 validate:"required,min=1,max=5"`
	RootElementSelector string            `json:"root_element_selector,omitempty"`
	PagePosition        int               `json:"page_position,omitempty"         validate:"omitempty,gte=1"`
	WaitFor             *WaitFor          `json:"wait_for,omitempty"`
	Cookies             []Cookie          `json:"cookies,omitempty"               validate:"omitempty,dive"`
	Headers             map[string]string `json:"http_headers,omitempty"`
	IsMobile            *bool             `json:"is_mobile,omitempty"`
	Scale               int               `json:"scale,omitempty"`
	Width               int               `json:"width,omitempty"`
	Height              int               `json:"height,omitempty"`
}

type ScrapeAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ScrapeResult struct {
	HTML       string            `json:"html"`
	Text       string            `json:"text"`
	Attributes []ScrapeAttribute `json:"attributes"`
}

type ScrapeData struct {
	Key      string         `json:"key"`
	Selector string         `json:"selector"`
	Results  []ScrapeResult `json:"results"`
}

type ScrapeLink struct {
	Href string `json:"href"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

type AIScrapeResponse struct {
	BaseResponse

	Context            map[string][]string `json:"context"`
	Selectors          map[string][]string `json:"selectors"`
	Data               []ScrapeData        `json:"data"`
	PagePosition       int                 `json:"page_position"`
	PagePositionLength int                 `json:"page_position_length"`
	Links              []ScrapeLink        `json:"link"`
}

func (w *Web) AIScrape(
	ctx context.Context,
	params *AIScrapeParams,
	opts ...httpclient.RequestOption,
) (*AIScrapeResponse, error) {
	return call[AIScrapeResponse](ctx, w.service, http.MethodPost, "/ai/scrape", params, opts...)
}

type HTMLToAnyParams struct {
	URL            string   `json:"url,omitempty"             validate:"required_without=HTML,omitempty,url"`
	HTML           string   `json:"html,omitempty"`
	Type           string   `json:"type,omitempty"            validate:"omitempty,oneof=pdf png jpeg webp"`
	FullPage       *bool    `json:"full_page,omitempty"`
	OmitBackground *bool    `json:"omit_background,omitempty"`
	Quality        int      `json:"quality,omitempty"         validate:"omitempty,gte=1,lte=100"`
	Width          int      `json:"width,omitempty"`
	Height         int      `json:"height,omitempty"`
	Scale          int      `json:"scale,omitempty"`
	IsMobile       *bool    `json:"is_mobile,omitempty"`
	DarkMode       *bool    `json:"dark_mode,omitempty"`
	Cookies        []Cookie `json:"cookies,omitempty"         validate:"omitempty,dive"`
	ReturnType     string   `json:"return_type,omitempty"     validate:"omitempty,oneof=url base64 binary"`
}

// HTMLToAny renders a page or HTML snippet to an image or PDF. A binary
// ReturnType yields the rendered bytes, url and base64 yield JSON.
func (w *Web) HTMLToAny(ctx context.Context, params *HTMLToAnyParams, opts ...httpclient.RequestOption) (*Media, error) {
	binary := params == nil || params.ReturnType == "" || params.ReturnType == "binary"

	return callMedia(ctx, w.service, "/web/html_to_any", params, binary, opts...)
}
