package modeladapter_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/openaipro/openaipro/pkg/modeladapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpenAIRateLimitHeaders_Empty(t *testing.T) {
	info := modeladapter.ParseOpenAIRateLimitHeaders(http.Header{}, time.Now())
	assert.Nil(t, info)
}

func TestParseOpenAIRateLimitHeaders_Remaining(t *testing.T) {
	h := http.Header{}
	h.Set("x-ratelimit-remaining-requests", "10")
	h.Set("x-ratelimit-remaining-tokens", "5000")

	info := modeladapter.ParseOpenAIRateLimitHeaders(h, time.Now())
	require.NotNil(t, info)
	assert.Equal(t, 10, info.RemainingRequests)
	assert.Equal(t, 5000, info.RemainingTokens)
}

func TestParseOpenAIRateLimitHeaders_DurationReset(t *testing.T) {
	now := time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC)

	h := http.Header{}
	h.Set("x-ratelimit-remaining-requests", "1")
	h.Set("x-ratelimit-reset-requests", "6s")
	h.Set("x-ratelimit-reset-tokens", "1m30s")

	info := modeladapter.ParseOpenAIRateLimitHeaders(h, now)
	require.NotNil(t, info)
	assert.Equal(t, now.Add(6*time.Second), info.RequestsReset)
	assert.Equal(t, now.Add(90*time.Second), info.TokensReset)
}

func TestParseOpenAIRateLimitHeaders_RFC3339Reset(t *testing.T) {
	now := time.Now()
	reset := time.Date(2025, 6, 24, 13, 0, 0, 0, time.UTC)

	h := http.Header{}
	h.Set("x-ratelimit-remaining-tokens", "100")
	h.Set("x-ratelimit-reset-tokens", reset.Format(time.RFC3339))

	info := modeladapter.ParseOpenAIRateLimitHeaders(h, now)
	require.NotNil(t, info)
	assert.True(t, info.TokensReset.Equal(reset))
}
