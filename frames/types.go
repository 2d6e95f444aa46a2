// Package frames discovers declarative frame regions embedded in
// server-rendered template documents and classifies their identifiers.
//
// A frame region is declared with a single tag:
//
//	<frame id="cart-items">...</frame>
//	<frame id="item_@Model.Id" prefix="item_">...</frame>
//
// The tag name is matched case-insensitively. Two attributes are recognized:
// "id" (required) and "prefix" (optional, the stable routing prefix for
// dynamic identifiers). All other attributes are inert. An identifier that
// contains an unescaped '@' is dynamic: its concrete value is computed
// per-request rather than fixed at build time.
package frames

// FrameRegion represents one discovered frame tag instance.
type FrameRegion struct {
	// Identifier is the raw value of the id attribute. Never empty:
	// regions with a missing or empty id are dropped during scanning.
	Identifier string `json:"identifier"`

	// Prefix is the raw value of the prefix attribute, if declared.
	Prefix string `json:"prefix,omitempty"`

	// HasPrefix reports whether the prefix attribute was declared at all,
	// distinguishing an absent prefix from a declared-empty one.
	HasPrefix bool `json:"hasPrefix"`

	// Content is the inner markup between the opening and closing tag,
	// including the verbatim markup of any nested frame regions.
	Content string `json:"-"`

	// StartLine is the 1-based line of the opening tag in the document.
	StartLine int `json:"startLine"`

	// Dynamic is true iff Identifier contains an unescaped expression marker.
	Dynamic bool `json:"dynamic"`
}

// StaticPortion returns the leading static part of the region's identifier:
// the substring before the first unescaped expression marker for dynamic
// identifiers, or the whole identifier for static ones.
func (r FrameRegion) StaticPortion() string {
	return StaticPortion(r.Identifier)
}

// DocumentFrameSet pairs a document's identity with its ordered frame regions.
type DocumentFrameSet struct {
	// Path is the filesystem path the document was loaded from.
	Path string `json:"path"`

	// Template is the logical template reference (relative, slash-separated)
	// used as the routing target for the document's regions.
	Template string `json:"template"`

	// Regions holds the document's frame regions in closing order: a region
	// is emitted when its closing tag is found, so parents follow children.
	Regions []FrameRegion `json:"regions"`
}

// ScanConfig defines the tag and attribute names the scanner recognizes.
type ScanConfig struct {
	// TagName is the frame tag name, matched case-insensitively (default: "frame").
	TagName string
	// IDAttr is the identifier attribute name, matched exactly (default: "id").
	IDAttr string
	// PrefixAttr is the stable-prefix attribute name, matched exactly (default: "prefix").
	PrefixAttr string
}

// DefaultScanConfig is the standard frame tag surface.
var DefaultScanConfig = ScanConfig{
	TagName:    "frame",
	IDAttr:     "id",
	PrefixAttr: "prefix",
}
