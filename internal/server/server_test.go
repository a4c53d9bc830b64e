package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestServer_Health(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]HealthChecker
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no dependencies",
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name: "database reachable",
			checks: map[string]HealthChecker{
				"database": pingFunc(func(context.Context) error { return nil }),
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name: "database unreachable",
			checks: map[string]HealthChecker{
				"database": pingFunc(func(context.Context) error { return errors.New("refused") }),
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unhealthy",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New("127.0.0.1:0", "release", tc.checks)

			rec := httptest.NewRecorder()
			s.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tc.expectedStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.expectedBody, body["status"])
		})
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0", "release", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
