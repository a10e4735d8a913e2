package qr

import (
	"image"
	"sync"

	"github.com/matryer/resync"
)

// logoCache keeps the decoded logo of the last image source. Updates that
// only restyle the symbol reuse it; a new source resets the cache.
type logoCache struct {
	mu    sync.Mutex
	once  resync.Once
	src   string
	img   image.Image
	err   error
	loads int
}

func (c *logoCache) get(src string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src != c.src {
		c.src = src
		c.once.Reset()
	}
	c.once.Do(func() {
		c.loads++
		c.img, c.err = loadImage(src)
	})
	return c.img, c.err
}
