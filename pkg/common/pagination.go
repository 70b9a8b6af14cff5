package common

import (
	"math"
	"net/http"
	"strconv"

	pkgerrors "campaign-manager/pkg/errors"
)

const (
	// MaxPageLimit caps the limit query parameter
	MaxPageLimit = 1000
	// MaxSkip caps the skip query parameter so skip+limit cannot overflow
	MaxSkip = math.MaxInt32
)

// PaginationParams is a skip/limit window taken from the query string
type PaginationParams struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// ExtractPaginationParams reads limit and skip from the request. A missing
// parameter takes its default; a malformed or out-of-range one is a
// validation error.
func ExtractPaginationParams(r *http.Request, defaultLimit int) (PaginationParams, error) {
	params := PaginationParams{Limit: defaultLimit}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil || l < 1 || l > MaxPageLimit {
			return PaginationParams{}, pkgerrors.NewValidationError("limit must be an integer between 1 and 1000").
				WithDetail("limit", limit)
		}
		params.Limit = l
	}

	if skip := r.URL.Query().Get("skip"); skip != "" {
		s, err := strconv.Atoi(skip)
		if err != nil || s < 0 || s > MaxSkip {
			return PaginationParams{}, pkgerrors.NewValidationError("skip must be an integer between 0 and 2147483647").
				WithDetail("skip", skip)
		}
		params.Skip = s
	}

	return params, nil
}

// PaginationInfo describes the window returned alongside a list
type PaginationInfo struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Skip    int  `json:"skip"`
	HasMore bool `json:"hasMore"`
}

// BuildPaginationMeta builds pagination metadata. HasMore is true while
// records remain past skip+limit.
func BuildPaginationMeta(total, limit, skip int) PaginationInfo {
	return PaginationInfo{
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: total-limit > skip,
	}
}
