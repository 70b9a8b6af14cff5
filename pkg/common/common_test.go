package common

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "campaign-manager/pkg/errors"
)

func TestExtractPaginationParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    PaginationParams
		wantErr bool
	}{
		{name: "defaults", query: "", want: PaginationParams{Limit: 100, Skip: 0}},
		{name: "explicit", query: "?limit=10&skip=20", want: PaginationParams{Limit: 10, Skip: 20}},
		{name: "upper bound", query: "?limit=1000", want: PaginationParams{Limit: 1000}},
		{name: "zero limit", query: "?limit=0", wantErr: true},
		{name: "too large", query: "?limit=1001", wantErr: true},
		{name: "not a number", query: "?limit=ten", wantErr: true},
		{name: "negative skip", query: "?skip=-1", wantErr: true},
		{name: "largest skip", query: "?skip=2147483647", want: PaginationParams{Limit: 100, Skip: 2147483647}},
		{name: "skip past int32", query: "?skip=9223372036854775807", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/campaigns"+tt.query, nil)

			got, err := ExtractPaginationParams(req, 100)

			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPaginationMeta(t *testing.T) {
	assert.True(t, BuildPaginationMeta(11, 10, 0).HasMore)
	assert.False(t, BuildPaginationMeta(10, 10, 0).HasMore)
	assert.False(t, BuildPaginationMeta(3, 10, 20).HasMore)
	assert.False(t, BuildPaginationMeta(3, 10, math.MaxInt).HasMore)
}

func TestParseJSONBody(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		require.NoError(t, ParseJSONBody(httptest.NewRecorder(), req, &v))
		assert.Equal(t, "x", v.Name)
	})

	for name, body := range map[string]string{
		"empty":     "",
		"malformed": "{",
		"too large": `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			err := ParseJSONBody(httptest.NewRecorder(), req, &v)
			assert.True(t, pkgerrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}
