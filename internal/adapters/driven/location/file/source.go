// Package file implements driven.LocationSource over a location file
// holding "lat,lng". The locate command writes it; GPS bridges or scripts
// can do the same.
package file

import (
	"context"
	"fmt"
	"strings"

	"github.com/rdkhare/CourtFinder/internal/adapters/driven/filewatch"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.LocationSource = (*Source)(nil)

// DefaultFileName is the location file name inside the config directory.
const DefaultFileName = "location"

var locationLog = logger.Component("location")

// Source reads positions from a file.
type Source struct {
	path string
}

// New creates a location source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Current returns the last written position.
// ok is false when no position has been written.
func (s *Source) Current() (point domain.Coordinate, ok bool, err error) {
	content, err := filewatch.Read(s.path)
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("reading location: %w", err)
	}
	if !content.Exists || strings.TrimSpace(string(content.Data)) == "" {
		return domain.Coordinate{}, false, nil
	}
	point, err = domain.ParseCoordinate(string(content.Data))
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	return point, true, nil
}

// Set records a new position.
func (s *Source) Set(point domain.Coordinate) error {
	if err := point.Validate(); err != nil {
		return err
	}
	return filewatch.WriteAtomic(s.path, []byte(point.String()+"\n"))
}

// Updates emits the current position, if any, and each new one.
// Unparseable contents are logged and skipped.
func (s *Source) Updates(ctx context.Context) (<-chan domain.Coordinate, error) {
	changes, err := filewatch.Watch(ctx, s.path)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Coordinate, 1)
	go func() {
		defer close(out)
		for content := range changes {
			text := strings.TrimSpace(string(content.Data))
			if !content.Exists || text == "" {
				continue
			}
			point, err := domain.ParseCoordinate(text)
			if err != nil {
				locationLog.Warn("ignoring %s: %v", s.path, err)
				continue
			}
			select {
			case out <- point:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
