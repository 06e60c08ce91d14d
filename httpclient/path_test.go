package httpclient_test

import (
	"testing"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildPath(t *testing.T) {
	t.Parallel()

	limit := 20

	tests := []struct {
		name   string
		base   string
		params map[string]any
		want   string
	}{
		{
			name:   "nil params",
			base:   "/validate/email",
			params: nil,
			want:   "/validate/email",
		},
		{
			name:   "drops nil values",
			base:   "/x",
			params: map[string]any{"a": 1, "b": nil, "c": "q"},
			want:   "/x?a=1&c=q",
		},
		{
			name:   "all values nil",
			base:   "/x",
			params: map[string]any{"a": nil},
			want:   "/x",
		},
		{
			name:   "lowercases booleans",
			base:   "/store/file",
			params: map[string]any{"overwrite": true, "temp_public_url": false},
			want:   "/store/file?overwrite=true&temp_public_url=false",
		},
		{
			name:   "encodes reserved characters",
			base:   "/web/search/suggest",
			params: map[string]any{"query": "go & rust?"},
			want:   "/web/search/suggest?query=go+%26+rust%3F",
		},
		{
			name:   "appends to an existing query",
			base:   "/x?page=1",
			params: map[string]any{"limit": 20},
			want:   "/x?page=1&limit=20",
		},
		{
			name:   "dereferences pointers",
			base:   "/prompt_engine",
			params: map[string]any{"limit": &limit, "page": (*int)(nil)},
			want:   "/prompt_engine?limit=20",
		},
		{
			name:   "repeats slice values",
			base:   "/x",
			params: map[string]any{"tag": []string{"a", "b"}},
			want:   "/x?tag=a&tag=b",
		},
		{
			name:   "renders floats without exponent",
			base:   "/x",
			params: map[string]any{"v": 1.5, "big": 1e21},
			want:   "/x?big=1000000000000000000000&v=1.5",
		},
		{
			name:   "uses Stringer values",
			base:   "/x",
			params: map[string]any{"amount": decimal.RequireFromString("12.50")},
			want:   "/x?amount=12.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, httpclient.BuildPath(tt.base, tt.params))
		})
	}
}
