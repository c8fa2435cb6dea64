package domain

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Visibility controls who can see a saved project.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// DesignItem is the persisted project record: one uploaded floor plan and,
// once generation has run, its 3D render.
type DesignItem struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	// SourceImage holds the uploaded floor plan. After a successful save it
	// is always a permanently hosted URL, never an inline payload.
	SourceImage string `json:"sourceImage"`
	// RenderedImage is absent until generation succeeds.
	RenderedImage string `json:"renderedImage,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	UpdatedAt     string `json:"updatedAt,omitempty"`

	// Transient upload bookkeeping. Stripped before persistence.
	SourcePath   string `json:"sourcePath,omitempty"`
	RenderedPath string `json:"renderedPath,omitempty"`
	PublicPath   string `json:"publicPath,omitempty"`
}

// StripTransient returns a copy with the path-only fields cleared.
func (d DesignItem) StripTransient() DesignItem {
	d.SourcePath = ""
	d.RenderedPath = ""
	d.PublicPath = ""
	return d
}

// DefaultName returns the generated display label for a project.
func DefaultName(id string) string {
	return fmt.Sprintf("Residence %s", id)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID assigns a client-side identifier derived from the current time in
// milliseconds. IDs are strictly increasing even when created within the
// same millisecond.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
