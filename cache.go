package folio

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// ContentCache is the live copy of the content document with a TTL. Public
// pages render from it; a successful save replaces it.
type ContentCache struct {
	mu      sync.RWMutex
	doc     *content.Document
	fetched time.Time
	ttl     time.Duration
	loader  *content.Loader
	now     func() time.Time
	onLoad  func(raw []byte)
}

// NewContentCache creates a ContentCache backed by loader.
func NewContentCache(loader *content.Loader, ttl time.Duration) *ContentCache {
	return &ContentCache{loader: loader, ttl: ttl, now: time.Now}
}

func (c *ContentCache) valid() bool {
	return c.doc != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()
}

// Replace installs doc as the live copy, as if it had just been loaded.
func (c *ContentCache) Replace(doc *content.Document) {
	c.mu.Lock()
	c.doc = doc.Clone()
	c.fetched = c.now()
	c.mu.Unlock()
}

func (c *ContentCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	raw, err := c.loader.Raw(ctx)
	if err != nil {
		return err
	}
	doc, err := content.Parse(raw)
	if err != nil {
		return &content.LoadError{Source: c.loader.Source, Err: err}
	}
	if c.onLoad != nil {
		c.onLoad(raw)
	}
	c.doc = doc
	c.fetched = c.now()
	return nil
}

// Document returns a private clone of the live document, reloading it when
// the TTL has passed. It tries a read lock first; only takes a write lock if
// a reload is needed.
func (c *ContentCache) Document(ctx context.Context) (*content.Document, error) {
	c.mu.RLock()
	if c.valid() {
		doc := c.doc.Clone()
		c.mu.RUnlock()
		return doc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.doc.Clone(), nil
}

// Fetched reports when the live document was last loaded or replaced. It is
// zero before the first load.
func (c *ContentCache) Fetched() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.doc == nil {
		return time.Time{}
	}
	return c.fetched
}
