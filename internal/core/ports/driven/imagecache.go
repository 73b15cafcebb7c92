package driven

import "context"

// ImageCache loads remote images, keeping recent ones in memory.
type ImageCache interface {
	Load(ctx context.Context, url string) ([]byte, error)
}
