// Package domain defines the core business entities for CourtFinder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Court: A place record returned by a geosearch provider
//   - Coordinate: A WGS84 latitude/longitude pair
//   - UserDocument: The remote per-user document holding favourites
//   - CourtsSnapshot: An immutable view of the courts and favourites
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
