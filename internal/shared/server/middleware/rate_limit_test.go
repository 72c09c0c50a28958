package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(now *time.Time, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return *now })
	r := gin.New()
	r.Use(Session(), RateLimit(RateLimitConfig{
		GroupFor: PageEventGroup,
		Limiter:  limiter,
		Rules:    rules,
	}))
	r.GET("/home", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/home", func(c *gin.Context) { c.Status(http.StatusSeeOther) })
	return r
}

func formPost(sid string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/home?sid="+sid, strings.NewReader("event=tab.tracker"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return req
}

func uploadPost(sid string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("event", "analyze")
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/home?sid="+sid, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req
}

func TestRateLimitAnalyzeStricterThanEvents(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		EventRateLimitGroup:   {Rate: 5, Burst: 3},
		AnalyzeRateLimitGroup: {Rate: 0.1, Burst: 1},
	})

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, formPost("s1"))
		if resp.Code != http.StatusSeeOther {
			t.Fatalf("event %d expected 303, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadPost("s1"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("first upload expected 303, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, uploadPost("s1"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload expected 429, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, uploadPost("s2"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("other session should not share the bucket, got %d", resp.Code)
	}

	for i := 0; i < 5; i++ {
		resp = httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/home?sid=s1", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("reads are not limited, got %d", resp.Code)
		}
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		EventRateLimitGroup: {Rate: 1, Burst: 1},
	})

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, formPost("s1"))
	if resp1.Code != http.StatusSeeOther {
		t.Fatalf("expected first request 303, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, formPost("s1"))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp2.Header().Get("Retry-After"))
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected code rate_limited, got %q", payload.Error.Code)
	}
	if _, ok := payload.Error.Details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}

	now = now.Add(time.Second)
	resp3 := httptest.NewRecorder()
	r.ServeHTTP(resp3, formPost("s1"))
	if resp3.Code != http.StatusSeeOther {
		t.Fatalf("bucket should refill after a second, got %d", resp3.Code)
	}
}

func TestRateLimitUnknownSessionsShareClientBucket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := gin.New()
	r.Use(Session(), RateLimit(RateLimitConfig{
		GroupFor:     PageEventGroup,
		Limiter:      NewRateLimiter(func() time.Time { return now }),
		Rules:        map[string]RateLimitRule{EventRateLimitGroup: {Rate: 0.01, Burst: 2}},
		KnownSession: func(_ *gin.Context, sid string) bool { return sid == "live" },
	}))
	r.POST("/home", func(c *gin.Context) { c.Status(http.StatusSeeOther) })

	codes := make([]int, 0, 3)
	for _, sid := range []string{"forged-1", "forged-2", "forged-3"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, formPost(sid))
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusSeeOther || codes[1] != http.StatusSeeOther || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("rotating sids should share one bucket, got %v", codes)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, formPost("live"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("a live session has its own bucket, got %d", resp.Code)
	}
}

func TestRateLimiterPruneDropsIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}
	l.Allow("sid:a|EVENTS", rule)
	now = now.Add(20 * time.Minute)
	l.Allow("sid:b|EVENTS", rule)

	now = now.Add(15 * time.Minute)
	if n := l.Prune(30 * time.Minute); n != 1 {
		t.Fatalf("expected one pruned bucket, got %d", n)
	}
	if l.Len() != 1 {
		t.Fatalf("expected one bucket left, got %d", l.Len())
	}

	now = now.Add(24 * time.Hour)
	l.Prune(30 * time.Minute)
	if l.Len() != 0 {
		t.Fatalf("expected no buckets after a day, got %d", l.Len())
	}
}
