// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// CourtsManager owns the nearby-courts cache and the signed-in user's
// favourites. Watcher feeds it location and session changes.
package services
