package jigsawstack

import (
	"context"
	"iter"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/pagination"
)

const promptEnginePath = "/prompt_engine"

type PromptEngine struct {
	service
}

type PromptInput struct {
	Key          string `json:"key"                     validate:"required"`
	Optional     bool   `json:"optional,omitempty"`
	InitialValue string `json:"initial_value,omitempty"`
}

type PromptEngineCreateParams struct {
	Prompt       string        `json:"prompt"                  validate:"required"`
	Inputs       []PromptInput `json:"inputs,omitempty"        validate:"omitempty,dive"`
	ReturnPrompt any           `json:"return_prompt,omitempty"`
	UseInternet  bool          `json:"use_internet,omitempty"`
	Optimize     bool          `json:"optimize_prompt,omitempty"`
}

type PromptEngineCreateResponse struct {
	BaseResponse

	PromptEngineID string `json:"prompt_engine_id"`
}

type PromptEngineResult struct {
	ID           string        `json:"id"`
	Prompt       string        `json:"prompt"`
	Inputs       []PromptInput `json:"inputs"`
	ReturnPrompt any           `json:"return_prompt,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

type PromptEngineGetResponse struct {
	BaseResponse
	PromptEngineResult
}

type PromptEngineListParams struct {
	Page     int
	PageSize int
	Search   string
}

type PromptEngineListResponse struct {
	PromptEngines []PromptEngineResult `json:"prompt_engines"`
	Page          int                  `json:"page"`
	Limit         int                  `json:"limit"`
}

type PromptEngineDeleteResponse struct {
	BaseResponse

	PromptEngineID string `json:"prompt_engine_id"`
}

type PromptEngineRunParams struct {
	InputValues map[string]any `json:"input_values,omitempty"`
}

type PromptEngineRunResponse struct {
	BaseResponse

	Result any `json:"result"`
}

func (p *PromptEngine) Create(
	ctx context.Context,
	params *PromptEngineCreateParams,
	opts ...httpclient.RequestOption,
) (*PromptEngineCreateResponse, error) {
	return call[PromptEngineCreateResponse](ctx, p.service, http.MethodPost, promptEnginePath, params, opts...)
}

func (p *PromptEngine) Get(
	ctx context.Context,
	id string,
	opts ...httpclient.RequestOption,
) (*PromptEngineGetResponse, error) {
	if err := requireValue("id", id); err != nil {
		return nil, err
	}

	return call[PromptEngineGetResponse](ctx, p.service, http.MethodGet, resourcePath(promptEnginePath, id), nil, opts...)
}

// List returns one page of prompt engines. Zero values select the first page
// with the default page size.
func (p *PromptEngine) List(
	ctx context.Context,
	params PromptEngineListParams,
	opts ...httpclient.RequestOption,
) (*PromptEngineListResponse, error) {
	page, limit, _ := pagination.Normalize(params.Page, params.PageSize)

	query := map[string]any{"page": page, "limit": limit}
	if params.Search != "" {
		query["search"] = params.Search
	}

	resp, err := call[PromptEngineListResponse](ctx, p.service, http.MethodGet, promptEnginePath, query, opts...)
	if err != nil {
		return nil, err
	}

	if resp.Page == 0 {
		resp.Page = page
	}

	if resp.Limit == 0 {
		resp.Limit = limit
	}

	return resp, nil
}

// All walks every page of prompt engines, stopping at the first error.
func (p *PromptEngine) All(
	ctx context.Context,
	params PromptEngineListParams,
	opts ...httpclient.RequestOption,
) iter.Seq2[PromptEngineResult, error] {
	return func(yield func(PromptEngineResult, error) bool) {
		page, limit, _ := pagination.Normalize(params.Page, params.PageSize)

		for {
			resp, err := p.List(ctx, PromptEngineListParams{Page: page, PageSize: limit, Search: params.Search}, opts...)
			if err != nil {
				yield(PromptEngineResult{}, err) //nolint:exhaustruct

				return
			}

			for _, engine := range resp.PromptEngines {
				if !yield(engine, nil) {
					return
				}
			}

			if !pagination.HasMore(len(resp.PromptEngines), limit) {
				return
			}

			page++
		}
	}
}

// Delete removes a prompt engine. An empty answer is reported as success.
func (p *PromptEngine) Delete(
	ctx context.Context,
	id string,
	opts ...httpclient.RequestOption,
) (*PromptEngineDeleteResponse, error) {
	if err := requireValue("id", id); err != nil {
		return nil, err
	}

	resp, ok, err := httpclient.PerformOptionalJSON[PromptEngineDeleteResponse](ctx, p.transport, &httpclient.Request{
		Method: http.MethodDelete,
		Path:   resourcePath(promptEnginePath, id),
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !ok {
		resp = PromptEngineDeleteResponse{BaseResponse: BaseResponse{Success: true}, PromptEngineID: id}
	}

	if resp.PromptEngineID == "" {
		resp.PromptEngineID = id
	}

	return &resp, nil
}

func (p *PromptEngine) Run(
	ctx context.Context,
	id string,
	params *PromptEngineRunParams,
	opts ...httpclient.RequestOption,
) (*PromptEngineRunResponse, error) {
	if err := requireValue("id", id); err != nil {
		return nil, err
	}

	if params == nil {
		params = &PromptEngineRunParams{InputValues: nil}
	}

	return call[PromptEngineRunResponse](ctx, p.service, http.MethodPost, resourcePath(promptEnginePath, id), params, opts...)
}

// RunStream runs a prompt engine and streams the result. The caller must
// Close the returned stream.
func (p *PromptEngine) RunStream(
	ctx context.Context,
	id string,
	params *PromptEngineRunParams,
	opts ...httpclient.RequestOption,
) (*httpclient.Stream, error) {
	if err := requireValue("id", id); err != nil {
		return nil, err
	}

	body := map[string]any{"stream": true}
	if params != nil && params.InputValues != nil {
		body["input_values"] = params.InputValues
	}

	return p.transport.PerformWithContentStreaming(ctx, &httpclient.Request{
		Method: http.MethodPost,
		Path:   resourcePath(promptEnginePath, id),
		Params: body,
		Stream: true,
	}, opts...)
}
