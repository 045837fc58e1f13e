package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/pasteboard"
)

func TestDetectURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two urls in order",
			text: "Check out https://example.com and http://test.org for more",
			want: []string{"https://example.com", "http://test.org"},
		},
		{
			name: "single bare url",
			text: "https://github.com/user/repo",
			want: []string{"https://github.com/user/repo"},
		},
		{
			name: "no urls",
			text: "This is plain text without any URLs",
			want: nil,
		},
		{
			name: "duplicates kept in order",
			text: "https://a.example https://a.example",
			want: []string{"https://a.example", "https://a.example"},
		},
		{
			name: "greedy up to whitespace",
			text: "see https://example.com/path?q=1#frag\nnext line",
			want: []string{"https://example.com/path?q=1#frag"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectURLs(tt.text))
		})
	}
}

func textFake(text string) *pasteboard.Fake {
	return &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypePlainText},
		Strings:       map[string]string{pasteboard.TypePlainText: text},
		Count:         1,
	}
}

func TestReadPlainText(t *testing.T) {
	it := NewReader(textFake("This is plain text without any URLs")).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Text, it.ContentType)
	require.NotNil(t, it.PlainText)
	assert.Equal(t, "This is plain text without any URLs", *it.PlainText)
	assert.Empty(t, it.DetectedURLs)
}

func TestReadLinkOverride(t *testing.T) {
	it := NewReader(textFake("https://github.com/user/repo")).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Link, it.ContentType)
	assert.Equal(t, []string{"https://github.com/user/repo"}, it.DetectedURLs)
}

func TestReadLinkOverrideTrimsWhitespace(t *testing.T) {
	it := NewReader(textFake("  https://github.com/user/repo\n")).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Link, it.ContentType)
}

func TestReadURLWithSurroundingTextStaysText(t *testing.T) {
	it := NewReader(textFake("see https://example.com today")).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Text, it.ContentType)
	assert.Equal(t, []string{"https://example.com"}, it.DetectedURLs)
}

func TestReadFileBeatsText(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeFileURL, pasteboard.TypePlainText},
		Strings:       map[string]string{pasteboard.TypePlainText: "/tmp/report.pdf"},
		Paths:         []string{"/tmp/report.pdf"},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.File, it.ContentType)
	assert.Equal(t, []string{"/tmp/report.pdf"}, it.FilePaths)
	// File classification returns early; text is never probed.
	assert.Nil(t, it.PlainText)
}

func TestReadFileDeclaredWithoutPathsFallsThrough(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeFileURL, pasteboard.TypePlainText},
		Strings:       map[string]string{pasteboard.TypePlainText: "hello"},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Text, it.ContentType)
	assert.Nil(t, it.FilePaths)
}

func TestReadImagePrefersPNG(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypePNG, pasteboard.TypeTIFF},
		Data: map[string][]byte{
			pasteboard.TypePNG:  []byte("png-bytes"),
			pasteboard.TypeTIFF: []byte("tiff-bytes"),
		},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Image, it.ContentType)
	assert.Equal(t, []byte("png-bytes"), it.ImageData)
	require.NotNil(t, it.ImageFormat)
	assert.Equal(t, "png", *it.ImageFormat)
}

func TestReadImageTIFFFallback(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypePNG, pasteboard.TypeTIFF},
		Data:          map[string][]byte{pasteboard.TypeTIFF: []byte("tiff-bytes")},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Image, it.ContentType)
	require.NotNil(t, it.ImageFormat)
	assert.Equal(t, "tiff", *it.ImageFormat)
}

func TestReadImageDeclaredWithoutBytesFallsThrough(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypePNG, pasteboard.TypePlainText},
		Strings:       map[string]string{pasteboard.TypePlainText: "caption"},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Text, it.ContentType)
	assert.Nil(t, it.ImageData)
}

func TestReadRichTextKeepsTagOverPlainText(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeHTML, pasteboard.TypeRTF, pasteboard.TypePlainText},
		Strings: map[string]string{
			pasteboard.TypeHTML:      "<b>bold</b>",
			pasteboard.TypeRTF:       `{\rtf1 bold}`,
			pasteboard.TypePlainText: "bold",
		},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.RichText, it.ContentType)
	require.NotNil(t, it.HTMLData)
	assert.Equal(t, "<b>bold</b>", *it.HTMLData)
	require.NotNil(t, it.RTFData)
	require.NotNil(t, it.PlainText)
	assert.Equal(t, "bold", *it.PlainText)
}

func TestReadRichTextLinkOverride(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeRTF, pasteboard.TypePlainText},
		Strings: map[string]string{
			pasteboard.TypeRTF:       `{\rtf1 https://example.com}`,
			pasteboard.TypePlainText: "https://example.com",
		},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.Link, it.ContentType)
	assert.NotNil(t, it.RTFData)
}

func TestReadRTFWithoutPlainText(t *testing.T) {
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeRTF},
		Strings:       map[string]string{pasteboard.TypeRTF: `{\rtf1 styled}`},
	}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	assert.Equal(t, item.RichText, it.ContentType)
	assert.Nil(t, it.PlainText)
}

func TestReadHTMLAloneYieldsNothing(t *testing.T) {
	// HTML is a secondary attachment, never the deciding tag: with no rtf
	// and no text the item is unreturnable.
	fake := &pasteboard.Fake{
		DeclaredTypes: []string{pasteboard.TypeHTML},
		Strings:       map[string]string{pasteboard.TypeHTML: "<p>hi</p>"},
	}
	assert.Nil(t, NewReader(fake).Read())
}

func TestReadNoRecognizedTypes(t *testing.T) {
	fake := &pasteboard.Fake{DeclaredTypes: []string{"com.example.custom"}}
	assert.Nil(t, NewReader(fake).Read())
}

func TestReadEmptyPasteboard(t *testing.T) {
	assert.Nil(t, NewReader(&pasteboard.Fake{}).Read())
}

func TestUnsupportedPlatformIsIdempotent(t *testing.T) {
	r := NewReader(&pasteboard.Fake{Unreachable: true})
	for i := 0; i < 5; i++ {
		assert.Nil(t, r.Read())
		assert.Equal(t, int64(0), r.ChangeCount())
	}
}

func TestChangeCountEqualityIsTheSignal(t *testing.T) {
	fake := textFake("x")
	r := NewReader(fake)
	a, b := r.ChangeCount(), r.ChangeCount()
	assert.Equal(t, a, b)

	fake.Bump()
	assert.NotEqual(t, b, r.ChangeCount())
}

func TestReadAttachesSourceApp(t *testing.T) {
	fake := textFake("hello")
	fake.App = &pasteboard.SourceApp{BundleID: "com.apple.Safari", Name: "Safari"}
	it := NewReader(fake).Read()
	require.NotNil(t, it)
	require.NotNil(t, it.SourceAppBundleID)
	assert.Equal(t, "com.apple.Safari", *it.SourceAppBundleID)
	require.NotNil(t, it.SourceAppName)
	assert.Equal(t, "Safari", *it.SourceAppName)
}

func TestRepeatedReadsAreFreshItems(t *testing.T) {
	r := NewReader(textFake("same content"))
	a, b := r.Read(), r.Read()
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, *a.PlainText, *b.PlainText)
	assert.Equal(t, a.ContentType, b.ContentType)
}
