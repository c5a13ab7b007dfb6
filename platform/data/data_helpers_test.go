package data

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"
)

var (
	simpleData = map[string]any{
		"string": "value",
		"int":    42,
		"bool":   true,
	}

	nestedData = map[string]any{
		"user": map[string]any{
			"name":  "ada",
			"roles": []any{"admin", "dev"},
			"limits": map[string]any{
				"daily": 10,
			},
		},
	}
)

func newTestRequest() *http.Request {
	return &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Path: "/rules", RawQuery: "tier=gold"},
		Header: http.Header{"X-Request-Id": []string{"abc"}},
	}
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetData(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(map[string]any)
	return d, args.Error(1)
}

func (m *MockProvider) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	args := m.Called(ctx, d)
	next, _ := args.Get(0).(context.Context)
	return next, args.Error(1)
}
