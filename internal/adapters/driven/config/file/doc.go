// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps settings in ~/.courtfinder/config.toml. Keys are flat
// dot-notation in memory and nested tables on disk, so
// "search.google.api_key" is written under [search.google].
package file
