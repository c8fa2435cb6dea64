package hosting

import (
	"context"
	"errors"
	"sync"
)

// siteCache lazily resolves the hosting target once per process and reuses
// it. Creation is get-or-create, so concurrent first calls and repeated
// processes converge on the same site.
type siteCache struct {
	client   *Client
	siteName string

	mu   sync.Mutex
	site *Site
}

func newSiteCache(client *Client, siteName string) *siteCache {
	return &siteCache{client: client, siteName: siteName}
}

func (c *siteCache) get(ctx context.Context) (*Site, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.site != nil {
		return c.site, nil
	}

	site, err := c.client.GetSite(ctx, c.siteName)
	if errors.Is(err, ErrSiteNotFound) {
		site, err = c.client.CreateSite(ctx, c.siteName)
	}
	if err != nil {
		return nil, err
	}

	c.site = site
	return site, nil
}
