package common

import "path/filepath"

// URLMatcher decides whether a URL satisfies a caller-supplied url option
// on waitForNavigation/waitForSelector-style operations. An absent
// matcher (nil) matches every URL.
type URLMatcher interface {
	Match(url string) bool
}

// exactURLMatcher matches a URL by literal string equality.
type exactURLMatcher struct{ url string }

func (m exactURLMatcher) Match(url string) bool { return m.url == url }

// globURLMatcher matches a URL against a glob pattern with
// path/filepath.Match: '*' matches any run of characters other than '/',
// '?' matches one such character, and '[...]' is a character class.
type globURLMatcher struct{ pattern string }

func (m globURLMatcher) Match(url string) bool {
	ok, err := filepath.Match(m.pattern, url)
	return err == nil && ok
}

// predicateURLMatcher wraps a caller-supplied predicate function.
type predicateURLMatcher struct{ fn func(string) bool }

func (m predicateURLMatcher) Match(url string) bool { return m.fn(url) }

// NewURLMatcher builds a URLMatcher from a caller option value. A nil or
// empty-string input matches every URL (returns a nil URLMatcher; callers
// must treat a nil matcher as "match all").
func NewURLMatcher(value interface{}) URLMatcher {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		if hasGlobMeta(v) {
			return globURLMatcher{pattern: v}
		}
		return exactURLMatcher{url: v}
	case func(string) bool:
		return predicateURLMatcher{fn: v}
	default:
		return nil
	}
}

func hasGlobMeta(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// matchesURL reports whether matcher accepts url, treating a nil matcher
// as "matches everything" per spec's URL matching rule.
func matchesURL(matcher URLMatcher, url string) bool {
	return matcher == nil || matcher.Match(url)
}
