package render

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/voyagelog/internal/logging"
	_ "golang.org/x/image/webp"
)

// Assets decodes page artwork (parchments, frames, ship emblems and loot
// icons) from a directory and keeps decoded images for reuse.
type Assets struct {
	dir    string
	logger logging.Logger

	mu     sync.Mutex
	cache  map[string]image.Image
	missed map[string]bool
}

func NewAssets(dir string, logger logging.Logger) *Assets {
	return &Assets{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]image.Image),
		missed: make(map[string]bool),
	}
}

// Image decodes the named asset. A missing or undecodable file is reported
// once and yields ok=false; callers draw a fallback instead.
func (a *Assets) Image(ctx context.Context, name string) (image.Image, bool) {
	if name == "" {
		return nil, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if img, ok := a.cache[name]; ok {
		return img, true
	}
	if a.missed[name] {
		return nil, false
	}

	img, err := a.decode(name)
	if err != nil {
		a.missed[name] = true
		a.logger.Debug(ctx, "asset unavailable", "asset", name, "error", err)
		return nil, false
	}
	a.cache[name] = img
	return img, true
}

func (a *Assets) decode(name string) (image.Image, error) {
	f, err := os.Open(filepath.Join(a.dir, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
