// Package pasteboard provides a narrow, read-only interface to the system
// pasteboard. Build constraints select the implementation:
//
//	pasteboard_darwin.go — macOS via cgo NSPasteboard + NSWorkspace
//	pasteboard_other.go  — unsupported stub everywhere else
//
// The stub represents platform absence purely through sentinel values: an
// empty type list and a zero change count. No implementation ever mutates
// pasteboard state.
package pasteboard

// Uniform type identifiers probed by the snapshot reader.
const (
	TypeFileURL   = "public.file-url"
	TypePNG       = "public.png"
	TypeTIFF      = "public.tiff"
	TypeHTML      = "public.html"
	TypeRTF       = "public.rtf"
	TypePlainText = "public.utf8-plain-text"
)

// SourceApp identifies the frontmost foreground application at read time.
type SourceApp struct {
	BundleID string
	Name     string
}

// Pasteboard is the capability surface the snapshot reader is written
// against. Every method is a short, synchronous query; failures are
// reported as absence (empty slices, false, zero), never as errors.
type Pasteboard interface {
	// Name returns a human-readable name for the implementation.
	Name() string

	// Types returns the pasteboard's declared type identifiers, or nil
	// when the pasteboard is unreachable.
	Types() []string

	// StringForType returns the string payload for a declared type.
	// ok is false when the type yields no decodable string.
	StringForType(t string) (s string, ok bool)

	// DataForType returns the raw bytes for a declared type, or nil.
	DataForType(t string) []byte

	// FileURLs returns the filesystem paths of any file references on
	// the pasteboard, or nil.
	FileURLs() []string

	// ChangeCount returns the OS-maintained clipboard change counter.
	// Only equality between consecutive reads is meaningful. Returns 0
	// when the pasteboard service is unreachable or unsupported.
	ChangeCount() int64

	// FrontmostApp identifies the foreground application, best-effort.
	FrontmostApp() (SourceApp, bool)
}
