// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PlaceSearch: Finds courts near a coordinate (Google Places, Elasticsearch)
//   - UserStore: Per-user document persistence holding favourites
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SessionSource: Identity changes. Without it the identity is fixed per command.
//   - LocationSource: Position updates. Without it courts are fetched on demand only.
//   - ImageCache: Avatar loading for the profile command.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
