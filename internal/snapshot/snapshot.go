// Package snapshot turns the current pasteboard contents into a normalized
// item. It is a pure query surface: no internal state, no retries, and no
// errors — every failure mode collapses to an absence value (nil item,
// zero counter).
package snapshot

import (
	"log/slog"
	"strings"

	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/pasteboard"
)

// Reader classifies pasteboard contents by probing declared types in a
// fixed priority order. The resulting tag follows
// File > Image > (Link overriding Text) > Text > RichText-without-text;
// HTML is only ever a secondary attachment.
type Reader struct {
	pb pasteboard.Pasteboard
}

// NewReader returns a Reader over pb.
func NewReader(pb pasteboard.Pasteboard) *Reader {
	return &Reader{pb: pb}
}

// probe is one entry in the ordered classification list. It fires when any
// of its type identifiers is declared; apply reports whether a payload was
// extracted. A terminal probe that extracts ends classification.
type probe struct {
	name     string
	types    []string
	terminal bool
	apply    func(pb pasteboard.Pasteboard, it *item.Item) bool
}

// Probe order is the priority contract. Files come first because a dragged
// file's pasteboard representation can also advertise text and image types;
// html and rtf accumulate onto the item without deciding it.
var probes = []probe{
	{name: "file", types: []string{pasteboard.TypeFileURL}, terminal: true, apply: applyFile},
	{name: "image", types: []string{pasteboard.TypePNG, pasteboard.TypeTIFF}, terminal: true, apply: applyImage},
	{name: "html", types: []string{pasteboard.TypeHTML}, apply: applyHTML},
	{name: "rtf", types: []string{pasteboard.TypeRTF}, apply: applyRTF},
	{name: "text", types: []string{pasteboard.TypePlainText}, terminal: true, apply: applyText},
}

// Read returns a normalized snapshot of the current pasteboard, or nil when
// the pasteboard is unreachable, declares no recognized type, or yields no
// extractable payload. It never mutates pasteboard state.
func (r *Reader) Read() *item.Item {
	declared := r.pb.Types()
	if declared == nil {
		return nil
	}

	it := item.New()
	if app, ok := r.pb.FrontmostApp(); ok {
		if app.BundleID != "" {
			it.SourceAppBundleID = item.String(app.BundleID)
		}
		if app.Name != "" {
			it.SourceAppName = item.String(app.Name)
		}
	}

	have := make(map[string]bool, len(declared))
	for _, t := range declared {
		have[t] = true
	}

	for _, p := range probes {
		fired := false
		for _, t := range p.types {
			if have[t] {
				fired = true
				break
			}
		}
		if !fired {
			continue
		}
		if p.apply(r.pb, it) && p.terminal {
			slog.Debug("pasteboard classified", "probe", p.name, "content_type", it.ContentType)
			return it
		}
	}

	// RTF without a plain-text representation still classifies.
	if it.RTFData != nil {
		slog.Debug("pasteboard classified", "probe", "rtf", "content_type", it.ContentType)
		return it
	}
	return nil
}

// ChangeCount returns the OS clipboard change counter, or 0 when the
// pasteboard service is unreachable or the platform is unsupported. Callers
// may rely only on inequality between consecutive reads as a change signal.
func (r *Reader) ChangeCount() int64 {
	return r.pb.ChangeCount()
}

func applyFile(pb pasteboard.Pasteboard, it *item.Item) bool {
	paths := pb.FileURLs()
	if len(paths) == 0 {
		return false
	}
	it.FilePaths = paths
	it.ContentType = item.File
	return true
}

func applyImage(pb pasteboard.Pasteboard, it *item.Item) bool {
	data, format := pb.DataForType(pasteboard.TypePNG), "png"
	if len(data) == 0 {
		data, format = pb.DataForType(pasteboard.TypeTIFF), "tiff"
	}
	if len(data) == 0 {
		return false
	}
	it.ImageData = data
	it.ImageFormat = item.String(format)
	it.ContentType = item.Image
	return true
}

func applyHTML(pb pasteboard.Pasteboard, it *item.Item) bool {
	s, ok := pb.StringForType(pasteboard.TypeHTML)
	if !ok {
		return false
	}
	it.HTMLData = item.String(s)
	return true
}

func applyRTF(pb pasteboard.Pasteboard, it *item.Item) bool {
	s, ok := pb.StringForType(pasteboard.TypeRTF)
	if !ok {
		return false
	}
	it.RTFData = item.String(s)
	it.ContentType = item.RichText
	return true
}

func applyText(pb pasteboard.Pasteboard, it *item.Item) bool {
	s, ok := pb.StringForType(pasteboard.TypePlainText)
	if !ok {
		return false
	}
	urls := DetectURLs(s)
	if len(urls) > 0 {
		it.DetectedURLs = urls
		if len(urls) == 1 && strings.TrimSpace(s) == urls[0] {
			it.ContentType = item.Link
		}
	}
	it.PlainText = item.String(s)
	if it.ContentType == item.Unknown {
		it.ContentType = item.Text
	}
	return true
}
