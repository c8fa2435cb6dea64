package transport

import (
	"net/url"
	"strings"
)

// Detector decides whether the app is executing on the hosting platform's
// own domain. The origin is re-read on every call: the same build runs in
// either environment across deployments, so the answer is never cached.
type Detector struct {
	// Origin returns the current execution origin, e.g. "https://app.roomify.site".
	Origin func() string
	// HostedSuffix is the hosting platform's domain suffix, e.g. ".roomify.site".
	HostedSuffix string
}

// IsHosted reports whether the current origin's host name ends with the
// hosting-domain suffix.
func (d *Detector) IsHosted() bool {
	if d == nil || d.Origin == nil || d.HostedSuffix == "" {
		return false
	}

	u, err := url.Parse(d.Origin())
	if err != nil {
		return false
	}

	host := u.Hostname()
	if host == "" {
		// Bare host without a scheme.
		host = strings.TrimSpace(d.Origin())
	}
	return strings.HasSuffix(host, d.HostedSuffix)
}
