// Package memory provides in-process implementations of driven ports.
//
// UserStore keeps user documents in a map and backs the "memory" store
// setting. ConfigStore is used by service tests.
package memory
