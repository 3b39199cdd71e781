package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/sweep"
)

func newTestServer() *Server {
	return NewServer(Config{Workers: 2, RequestTimeout: 10 * time.Second}, newTestLogger())
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	rec := get(t, newTestServer(), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleMultiply(t *testing.T) {
	t.Parallel()
	s := newTestServer()

	t.Run("demo operands at width 31", func(t *testing.T) {
		rec := get(t, s, "/multiply?a=1474822451&b=1275755509&width=31")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp MultiplyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint32(1743), resp.Res0)
		assert.Equal(t, uint32(602964), resp.Res1)
		assert.Equal(t, [4]uint32{151, 729344, 397757, 144179200}, resp.Components)
		assert.Equal(t, uint32(1234872015), resp.Actual)
		assert.True(t, resp.OK)
	})

	t.Run("defaults to demo operands at width 32", func(t *testing.T) {
		rec := get(t, s, "/multiply")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp MultiplyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 32, resp.Width)
		assert.Equal(t, uint32(3382355663), resp.Actual)
		assert.Equal(t, resp.Expected, resp.Actual)
	})

	t.Run("hex operands", func(t *testing.T) {
		rec := get(t, s, "/multiply?a=0xFFFFFFFF&b=0xFFFFFFFF")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp MultiplyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint32(1), resp.Actual)
		assert.Equal(t, LimbsResponse{Hi: 0x1FFFFF, Lo: 0x7FF}, resp.ALimbs)
	})

	bad := []string{
		"/multiply?a=-1",
		"/multiply?a=4294967296",
		"/multiply?b=abc",
		"/multiply?width=16",
		"/multiply?width=x",
	}
	for _, target := range bad {
		t.Run(target, func(t *testing.T) {
			rec := get(t, s, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation error")
		})
	}
}

func TestHandleVerify(t *testing.T) {
	t.Parallel()
	s := newTestServer()

	t.Run("u32 suite is consistent", func(t *testing.T) {
		rec := get(t, s, "/verify?suite=u32&count=1000&seed=7")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp VerifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Consistent)
		assert.Empty(t, resp.Mismatches)
		assert.Equal(t, sweep.EdgeCount+1000, resp.Pairs)
		assert.Len(t, resp.Results, len(multiplier.Names(multiplier.SuiteU32)))

		digest := resp.Results[0].Digest
		for _, r := range resp.Results {
			assert.Empty(t, r.Error)
			assert.Equal(t, digest, r.Digest, r.Algorithm)
		}
	})

	t.Run("single algorithm in fp21", func(t *testing.T) {
		rec := get(t, s, "/verify?suite=fp21&algo=pseudo-mersenne&count=10")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp VerifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "pseudo-mersenne", resp.Results[0].Algorithm)
		assert.Len(t, resp.Results[0].Digest, 16)
	})

	bad := []string{
		"/verify?suite=f16",
		"/verify?count=-1",
		"/verify?count=2000000",
		"/verify?count=many",
		"/verify?seed=-3",
		"/verify?algo=karatsuba",
	}
	for _, target := range bad {
		t.Run(target, func(t *testing.T) {
			rec := get(t, s, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	metrics := scrape(t, s.metrics)
	assert.Contains(t, metrics, `limbcalc_multiplications_total{algorithm="pseudo-mersenne"} 74`)
}

func TestHandlers_RejectNonGet(t *testing.T) {
	t.Parallel()
	s := newTestServer()

	for _, path := range []string{"/multiply", "/verify", "/health"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), path)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(body), "ok")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ValidationError{Field: "count", Message: "too large"}, http.StatusBadRequest},
		{"deadline", apperrors.CalculationError{Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"canceled", apperrors.CalculationError{Cause: context.Canceled}, http.StatusServiceUnavailable},
		{"wrapped canceled", fmt.Errorf("sweep: %w", context.Canceled), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			s.writeError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
