package dto

import "palantir/internal/egis"

type SearchRequest struct {
	SearchTerm    string              `json:"searchTerm"`
	SearchOptions *egis.SearchOptions `json:"searchOptions,omitempty"`
	StartRow      int                 `json:"startRow"`
}
