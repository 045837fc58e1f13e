// Package item defines the normalized clipboard snapshot record.
//
// An Item is produced fresh on every read: it has a generated id and
// timestamp but no persisted identity across reads. Payload fields are
// pointer-valued (or nil slices) so that a field a given read did not
// populate serializes as absent, never as "" or []. Consumers rely on
// that to tell "no rich text" from "empty rich text".
package item

import (
	"time"

	"github.com/google/uuid"
)

// ContentType classifies a clipboard snapshot. Exactly one tag is assigned
// per item by the snapshot reader's priority order.
type ContentType string

const (
	Text     ContentType = "text"
	RichText ContentType = "rich_text"
	Image    ContentType = "image"
	File     ContentType = "file"
	Link     ContentType = "link"
	// Color is reserved in the taxonomy for forward compatibility.
	// No pasteboard type currently maps to it.
	Color   ContentType = "color"
	Unknown ContentType = "unknown"
)

// Item is a single normalized clipboard snapshot.
//
// Image dimensions are deliberately not part of the schema: the reader never
// decodes image payloads, so width/height would never be populated.
type Item struct {
	ID          string      `json:"id"`
	ContentType ContentType `json:"content_type"`
	CreatedAt   string      `json:"created_at"` // RFC 3339

	SourceAppBundleID *string `json:"source_app_bundle_id,omitempty"`
	SourceAppName     *string `json:"source_app_name,omitempty"`

	PlainText *string `json:"plain_text,omitempty"`
	RTFData   *string `json:"rtf_data,omitempty"`
	HTMLData  *string `json:"html_data,omitempty"`

	ImageData   []byte  `json:"image_data,omitempty"` // base64 in JSON
	ImageFormat *string `json:"image_format,omitempty"`

	FilePaths    []string `json:"file_paths,omitempty"`
	DetectedURLs []string `json:"detected_urls,omitempty"`
}

// New returns an empty Unknown item with a fresh id and timestamp.
func New() *Item {
	return &Item{
		ID:          uuid.NewString(),
		ContentType: Unknown,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// String returns a pointer to s, for populating optional fields.
func String(s string) *string { return &s }

// DefaultPollInterval is the monitor poll interval used when a
// MonitorConfig does not specify one.
const DefaultPollInterval = 500 * time.Millisecond

// MonitorConfig configures the external poller. The snapshot core never
// consults it; exclusion by bundle id is enforced by the monitor alone.
type MonitorConfig struct {
	PollIntervalMS    int      `json:"poll_interval_ms"`
	ExcludedBundleIDs []string `json:"excluded_bundle_ids,omitempty"`
}

// Interval returns the configured poll interval, or DefaultPollInterval
// when unset or non-positive.
func (c MonitorConfig) Interval() time.Duration {
	if c.PollIntervalMS <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Excluded reports whether bundleID appears in ExcludedBundleIDs.
func (c MonitorConfig) Excluded(bundleID string) bool {
	for _, id := range c.ExcludedBundleIDs {
		if id == bundleID {
			return true
		}
	}
	return false
}
