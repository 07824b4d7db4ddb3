package modeladapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openaipro/openaipro/pkg/modeladapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_MissingCredential(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	a := modeladapter.New(srv.URL, modeladapter.Auth{}, nil)

	err := a.PostJSON(context.Background(), "/v1/test", map[string]any{}, nil)
	require.ErrorIs(t, err, modeladapter.ErrMissingCredential)

	// The failure happens before any request is built.
	assert.Equal(t, int32(0), hits.Load())
}

func TestNewRequest_DefaultAuthHeader(t *testing.T) {
	a := modeladapter.New("https://example.com", modeladapter.Auth{Key: "sk-test"}, nil)

	req, err := a.NewRequest(context.Background(), http.MethodPost, "/v1/x", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/v1/x", req.URL.String())
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
}

func TestNewRequest_CustomAuthAndHeaders(t *testing.T) {
	a := modeladapter.New("https://example.com", modeladapter.Auth{
		Key:    "key",
		Header: "x-api-key",
	}, nil)
	a.Headers = map[string]string{"x-extra": "on"}

	req, err := a.NewRequest(context.Background(), http.MethodGet, "/v1/y", nil)
	require.NoError(t, err)

	assert.Equal(t, "key", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, "on", req.Header.Get("x-extra"))
}

func TestPostJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	a := modeladapter.New(srv.URL, modeladapter.Auth{Key: "k"}, nil)

	var dest struct {
		Answer string `json:"answer"`
	}
	err := a.PostJSON(context.Background(), "/v1/z", map[string]string{"in": "x"}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "ok", dest.Answer)
}

func TestPostJSON_APIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	t.Cleanup(srv.Close)

	a := modeladapter.New(srv.URL, modeladapter.Auth{Key: "bad"}, nil)

	err := a.PostJSON(context.Background(), "/v1/z", map[string]string{}, nil)

	var apiErr *modeladapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect API key provided", apiErr.Message)
	assert.Equal(t, "invalid_api_key", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "401")
}

func TestPostJSON_APIErrorRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(srv.Close)

	a := modeladapter.New(srv.URL, modeladapter.Auth{Key: "k"}, nil)

	err := a.PostJSON(context.Background(), "/v1/z", map[string]string{}, nil)

	var apiErr *modeladapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestPostJSON_RateLimitHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-remaining-requests", "42")
		w.Header().Set("x-ratelimit-remaining-tokens", "9000")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	a := modeladapter.New(srv.URL, modeladapter.Auth{Key: "k"}, nil)
	a.HeaderParser = modeladapter.ParseOpenAIRateLimitHeaders

	require.NoError(t, a.PostJSON(context.Background(), "/v1/z", map[string]string{}, nil))

	info := a.LastRateLimitInfo()
	require.NotNil(t, info)
	assert.Equal(t, 42, info.RemainingRequests)
	assert.Equal(t, 9000, info.RemainingTokens)
}
