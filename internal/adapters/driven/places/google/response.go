package google

import "github.com/rdkhare/CourtFinder/internal/core/domain"

// Text search status values.
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
)

// textSearchResponse is the body of /place/textsearch/json.
type textSearchResponse struct {
	Status           string         `json:"status"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	Results          []domain.Court `json:"results"`
	HTMLAttributions []string       `json:"html_attributions"`
	NextPageToken    string         `json:"next_page_token,omitempty"`
}
