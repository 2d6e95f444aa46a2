package frames

// Marker is the reserved expression-marker character. An identifier
// containing an unescaped occurrence is computed per-request; a doubled
// marker ("@@") is an escape for a literal '@'.
const Marker = '@'

// ContainsExpressionMarker reports whether s contains an unescaped
// expression marker. Doubled markers are escapes and do not count.
func ContainsExpressionMarker(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != Marker {
			continue
		}
		if i+1 < len(s) && s[i+1] == Marker {
			i++ // escaped pair, skip both
			continue
		}
		return true
	}
	return false
}

// StaticPortion returns the substring of s up to (excluding) the first
// unescaped expression marker. If s contains no unescaped marker it is
// returned unchanged. The result is raw text: escaped marker pairs in the
// static part are not collapsed.
func StaticPortion(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != Marker {
			continue
		}
		if i+1 < len(s) && s[i+1] == Marker {
			i++
			continue
		}
		return s[:i]
	}
	return s
}
