package review

import "github.com/bmatcuk/doublestar/v4"

// ShouldExclude reports whether filename matches any of the exclusion
// patterns. Patterns use doublestar glob syntax, so "dist/**" and
// "**/*.min.js" work. An invalid pattern matches nothing.
func ShouldExclude(filename string, patterns []string) bool {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, filename)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
