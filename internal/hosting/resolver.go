package hosting

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/roomify-labs/roomify-backend/internal/imaging"
)

// Storage paths on the hosting target.
const (
	sourcesDir = "roomify/sources"
	rendersDir = "roomify/renders"
)

// Hosted is a resolved permanent URL for an image.
type Hosted struct {
	URL string `json:"url"`
}

// Resolver turns image payloads (inline or remote) into permanently hosted
// URLs. Already-hosted URLs pass through unchanged; failures yield nil and
// the caller decides whether that is fatal.
type Resolver struct {
	client       *Client
	cache        *siteCache
	hostedDomain string
	fetchClient  *http.Client
}

// NewResolver creates a resolver uploading to the named site. hostedDomain
// is the permanent hosting domain suffix used to recognize URLs that need
// no re-upload.
func NewResolver(client *Client, siteName, hostedDomain string) *Resolver {
	return &Resolver{
		client:       client,
		cache:        newSiteCache(client, siteName),
		hostedDomain: hostedDomain,
		fetchClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsHostedURL reports whether the payload is already a permanent hosting
// URL.
func (r *Resolver) IsHostedURL(payload string) bool {
	if !strings.HasPrefix(payload, "http://") && !strings.HasPrefix(payload, "https://") {
		return false
	}
	u, err := url.Parse(payload)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == r.hostedDomain || strings.HasSuffix(host, "."+r.hostedDomain)
}

// EnsureHosted resolves the payload to a permanent URL, uploading it under
// a path derived from the project ID and label ("source" or "rendered")
// when needed. Idempotent for already-hosted URLs: no second upload happens.
func (r *Resolver) EnsureHosted(ctx context.Context, payload, projectID, label string) *Hosted {
	if payload == "" || projectID == "" {
		return nil
	}

	if r.IsHostedURL(payload) {
		return &Hosted{URL: payload}
	}

	site, err := r.cache.get(ctx)
	if err != nil {
		log.Printf("Failed to resolve hosting config: %v", err)
		return nil
	}

	mimeType, data, err := r.loadPayload(ctx, payload)
	if err != nil {
		log.Printf("Failed to read image payload for project %s: %v", projectID, err)
		return nil
	}

	hostedURL, err := r.client.Upload(ctx, site, r.objectPath(projectID, label, mimeType), mimeType, data)
	if err != nil {
		log.Printf("Failed to upload %s image for project %s: %v", label, projectID, err)
		return nil
	}

	return &Hosted{URL: hostedURL}
}

func (r *Resolver) loadPayload(ctx context.Context, payload string) (string, []byte, error) {
	if strings.HasPrefix(payload, "data:") {
		return imaging.DecodeDataURL(payload)
	}

	dataURL, err := imaging.FetchAsDataURL(ctx, r.fetchClient, payload)
	if err != nil {
		return "", nil, err
	}
	return imaging.DecodeDataURL(dataURL)
}

func (r *Resolver) objectPath(projectID, label, mimeType string) string {
	dir := sourcesDir
	if label == "rendered" {
		dir = rendersDir
	}

	ext := "jpg"
	if mimeType == "image/png" {
		ext = "png"
	}

	return fmt.Sprintf("%s/%s-%s.%s", dir, projectID, label, ext)
}
