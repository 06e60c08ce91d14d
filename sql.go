package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type SQL struct {
	service
}

type TextToSQLParams struct {
	Prompt       string `json:"prompt"                   validate:"required"`
	SQLSchema    string `json:"sql_schema,omitempty"     validate:"required_without=FileStoreKey,excluded_with=FileStoreKey"`
	FileStoreKey string `json:"file_store_key,omitempty"`
	Database     string `json:"database,omitempty"       validate:"omitempty,oneof=postgresql mysql sqlite"`
}

type SQLResponse struct {
	BaseResponse

	SQL string `json:"sql"`
}

func (s *SQL) TextToSQL(ctx context.Context, params *TextToSQLParams, opts ...httpclient.RequestOption) (*SQLResponse, error) {
	return call[SQLResponse](ctx, s.service, http.MethodPost, "/ai/sql", params, opts...)
}
