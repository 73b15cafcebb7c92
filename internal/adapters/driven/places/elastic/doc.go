// Package elastic implements driven.PlaceSearch over a self-hosted
// Elasticsearch index of courts.
//
// Documents carry the full court record plus a geo_point "location" field.
// Searches return courts nearest the point first, optionally limited to a
// radius. Index and Load seed the index from court records.
package elastic
