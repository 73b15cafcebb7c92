// Package google implements driven.PlaceSearch over the Google Places
// text search endpoint.
//
// Requests are paced by a token bucket. OVER_QUERY_LIMIT and HTTP 429
// responses push the next request back by the server's Retry-After, or a
// minute when none is given.
package google
