package snapshot

import (
	"regexp"
	"strings"
)

// urlPattern matches http:// or https:// followed by one or more
// non-whitespace characters. Compiled once; nil if compilation fails so
// detection can fall back to a prefix check.
var urlPattern = compileURLPattern()

func compileURLPattern() *regexp.Regexp {
	re, err := regexp.Compile(`https?://\S+`)
	if err != nil {
		return nil
	}
	return re
}

// DetectURLs returns every http(s) URL found in text as greedy,
// non-overlapping matches in order of first occurrence. Duplicates are
// kept. Without a usable pattern it degrades to treating the whole
// trimmed text as a single URL when it starts with an http(s) scheme.
func DetectURLs(text string) []string {
	if urlPattern == nil {
		t := strings.TrimSpace(text)
		if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
			return []string{t}
		}
		return nil
	}
	return urlPattern.FindAllString(text, -1)
}
