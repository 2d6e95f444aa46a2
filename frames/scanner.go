package frames

import (
	"strings"
)

// Scan locates all frame regions in a document using the default tag surface.
//
// Thread-safety: pure function of its input, safe for concurrent calls.
func Scan(content string) []FrameRegion {
	return DefaultScanConfig.Scan(content)
}

// openContext tracks one open frame tag on the nesting stack.
type openContext struct {
	identifier string
	prefix     string
	hasPrefix  bool
	// contentStart is the byte offset just past the opening tag's '>'.
	contentStart int
	startLine    int
	// dropped marks a tag with a missing or empty id attribute. It still
	// participates in nesting (its closing tag must pair with it) but emits
	// no region, so its content is attributed to the enclosing region.
	dropped bool
}

// Scan performs a single character-level pass over the document and returns
// every fully closed frame region.
//
// Algorithm:
//  1. Jump from '<' to '<', counting newlines in between for line tracking.
//  2. A closing tag (</frame>, case-insensitive) pops the innermost open
//     context and emits its region; stray closers are ignored.
//  3. An opening tag parses its attribute list permissively (single, double,
//     or unquoted values, any order, multi-line, unknown attributes skipped)
//     and pushes a context. Self-closing syntax emits an empty region
//     immediately.
//  4. Anything else (other tags, comments, text, template expressions) is
//     opaque. Tags inside markup comments are still discovered; that is
//     documented behavior, not a defect.
//
// Malformed input never produces an error: unclosed tags simply never emit,
// and whatever regions were fully closed are returned. Emission order is
// closing order, so a parent region always follows its children and its
// Content textually contains their markup.
//
// Thread-safety: pure function of its input, safe for concurrent calls.
func (cfg ScanConfig) Scan(content string) []FrameRegion {
	tagName := strings.ToLower(cfg.TagName)
	if tagName == "" {
		tagName = DefaultScanConfig.TagName
	}
	idAttr := cfg.IDAttr
	if idAttr == "" {
		idAttr = DefaultScanConfig.IDAttr
	}
	prefixAttr := cfg.PrefixAttr
	if prefixAttr == "" {
		prefixAttr = DefaultScanConfig.PrefixAttr
	}

	var regions []FrameRegion
	var stack []openContext

	cur := 0
	line := 1

	for cur < len(content) {
		ltRel := strings.IndexByte(content[cur:], '<')
		if ltRel == -1 {
			break
		}
		ltIdx := cur + ltRel
		line += strings.Count(content[cur:ltIdx], "\n")
		cur = ltIdx + 1

		// Closing tag: </frame ... >
		if rest, ok := matchClosingTag(content[cur:], tagName); ok {
			line += strings.Count(content[cur:cur+rest], "\n")
			cur += rest
			if len(stack) == 0 {
				continue // stray closer, ignore
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.dropped {
				regions = append(regions, FrameRegion{
					Identifier: top.identifier,
					Prefix:     top.prefix,
					HasPrefix:  top.hasPrefix,
					Content:    content[top.contentStart:ltIdx],
					StartLine:  top.startLine,
					Dynamic:    ContainsExpressionMarker(top.identifier),
				})
			}
			continue
		}

		// Opening tag: <frame ... > or <frame ... />
		if n := matchTagName(content[cur:], tagName); n > 0 {
			attrs, selfClosing, end, closed := parseAttributes(content[cur+n:])
			if !closed {
				break // tag runs past end of input, nothing more to emit
			}
			startLine := line
			line += strings.Count(content[cur:cur+n+end], "\n")
			cur += n + end

			id := attrs[idAttr]
			prefix, hasPrefix := attrs[prefixAttr]

			if selfClosing {
				// Immediately closed, empty content.
				if id != "" {
					regions = append(regions, FrameRegion{
						Identifier: id,
						Prefix:     prefix,
						HasPrefix:  hasPrefix,
						StartLine:  startLine,
						Dynamic:    ContainsExpressionMarker(id),
					})
				}
				continue
			}

			stack = append(stack, openContext{
				identifier:   id,
				prefix:       prefix,
				hasPrefix:    hasPrefix,
				contentStart: cur,
				startLine:    startLine,
				dropped:      id == "",
			})
		}
	}

	return regions
}

// matchTagName reports whether s starts with the frame tag name
// (case-insensitively) followed by a tag-terminating character. It returns
// the length of the matched name, or 0 when there is no match. The
// terminator check keeps <frameset> from matching <frame.
func matchTagName(s, tagName string) int {
	if len(s) < len(tagName) {
		return 0
	}
	if !strings.EqualFold(s[:len(tagName)], tagName) {
		return 0
	}
	if len(s) == len(tagName) {
		return 0 // name at EOF, tag is never closed anyway
	}
	switch s[len(tagName)] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return len(tagName)
	}
	return 0
}

// matchClosingTag matches "/frame ... >" (case-insensitive, optional
// whitespace before '>') at the start of s. It returns the number of bytes
// consumed through the '>', and whether the match succeeded.
func matchClosingTag(s, tagName string) (int, bool) {
	if len(s) == 0 || s[0] != '/' {
		return 0, false
	}
	rest := s[1:]
	if len(rest) < len(tagName) || !strings.EqualFold(rest[:len(tagName)], tagName) {
		return 0, false
	}
	i := 1 + len(tagName)
	for i < len(s) && isWhitespace(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '>' {
		return i + 1, true
	}
	return 0, false
}

// parseAttributes consumes an attribute list up to the closing '>' of the
// opening tag. It returns the parsed attributes, whether the tag used
// self-closing syntax, the number of bytes consumed through the '>', and
// whether the '>' was found at all.
//
// Parsing is deliberately permissive: values may be double-quoted,
// single-quoted, or unquoted; attributes may span multiple lines and appear
// in any order; a bare name with no '=' is an attribute with an empty value.
// Quoted values may contain '>' without terminating the tag.
func parseAttributes(s string) (attrs map[string]string, selfClosing bool, end int, closed bool) {
	attrs = make(map[string]string)
	i := 0

	for i < len(s) {
		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		if i >= len(s) {
			return attrs, false, i, false
		}

		switch s[i] {
		case '>':
			return attrs, selfClosing, i + 1, true
		case '/':
			selfClosing = true
			i++
			continue
		}
		selfClosing = false

		// Attribute name.
		nameStart := i
		for i < len(s) && !isWhitespace(s[i]) && s[i] != '=' && s[i] != '>' && s[i] != '/' {
			i++
		}
		name := s[nameStart:i]

		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			// Bare attribute, no value.
			if name != "" {
				attrs[name] = ""
			}
			continue
		}
		i++ // consume '='
		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		if i >= len(s) {
			return attrs, false, i, false
		}

		// Attribute value.
		var value string
		if q := s[i]; q == '"' || q == '\'' {
			i++
			valStart := i
			for i < len(s) && s[i] != q {
				i++
			}
			if i >= len(s) {
				return attrs, false, i, false // unterminated quote
			}
			value = s[valStart:i]
			i++ // consume closing quote
		} else {
			valStart := i
			for i < len(s) && !isWhitespace(s[i]) && s[i] != '>' {
				i++
			}
			value = s[valStart:i]
		}
		if name != "" {
			attrs[name] = value
		}
	}

	return attrs, false, i, false
}

// isWhitespace checks if a byte is whitespace (space, tab, newline, carriage return).
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
