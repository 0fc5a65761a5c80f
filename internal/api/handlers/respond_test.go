package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/argus/internal/contracts"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{contracts.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", contracts.ErrInvalidInput), http.StatusBadRequest},
		{contracts.ErrInsufficientData, http.StatusUnprocessableEntity},
		{contracts.ErrInvalidData, http.StatusBadGateway},
		{contracts.ErrFetchFailed, http.StatusBadGateway},
		{contracts.ErrTimeout, http.StatusGatewayTimeout},
		{fmt.Errorf("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "error %v", tt.err)
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{"", 30, true}, // fallback
		{"days=10", 10, true},
		{"days=0", 0, false},
		{"days=-5", 0, false},
		{"days=999", 0, false}, // over max
		{"days=abc", 0, false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/forecast/AAPL?"+tt.query, nil)
		got, ok := queryInt(r, "days", 30, 365)
		assert.Equal(t, tt.wantOK, ok, "query %q", tt.query)
		if ok {
			assert.Equal(t, tt.want, got, "query %q", tt.query)
		}
	}
}
