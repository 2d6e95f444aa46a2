package frames

import "fmt"

// DiagnosticKind identifies one of the frame authoring mistakes the
// classifier can detect.
type DiagnosticKind string

const (
	// KindMissingPrefix marks a dynamic identifier with no declared stable
	// prefix. Such a frame cannot be routed.
	KindMissingPrefix DiagnosticKind = "missing-prefix"

	// KindMismatchedPrefix marks a declared prefix that contradicts the
	// identifier's static portion.
	KindMismatchedPrefix DiagnosticKind = "mismatched-prefix"

	// KindUnnecessaryPrefix marks a prefix declared on a static identifier,
	// where it serves no purpose.
	KindUnnecessaryPrefix DiagnosticKind = "unnecessary-prefix"
)

// Severity levels for diagnostics.
const (
	SeverityError = "error"
	SeverityInfo  = "info"
)

// Diagnostic represents a single authoring issue found in a frame region.
// Diagnostics are non-fatal: they are reported to build tooling and never
// stop scanning or aggregation.
type Diagnostic struct {
	// Template is the logical template reference of the document.
	Template string `json:"template"`
	// Line is the 1-based line of the region's opening tag.
	Line int `json:"line"`
	// Identifier is the region's raw identifier.
	Identifier string `json:"identifier"`
	// Prefix is the declared prefix, if any.
	Prefix string `json:"prefix,omitempty"`
	// Kind categorizes the issue.
	Kind DiagnosticKind `json:"kind"`
	// Severity is "error" or "info".
	Severity string `json:"severity"`
	// Message is a human-readable description of the issue.
	Message string `json:"message"`
}

// Classify decides which authoring diagnostic, if any, applies to a region.
// It returns nil when the region is well-formed. The returned diagnostic has
// its Template field unset; the caller fills in the document identity.
//
// Decision table over (dynamic, has prefix, prefix valid):
//
//	static,  no prefix            -> ok
//	static,  prefix declared      -> unnecessary-prefix (info)
//	dynamic, no prefix            -> missing-prefix (error)
//	dynamic, prefix valid         -> ok
//	dynamic, prefix invalid       -> mismatched-prefix (error)
func Classify(r FrameRegion) *Diagnostic {
	if !r.Dynamic {
		if !r.HasPrefix {
			return nil
		}
		return &Diagnostic{
			Line:       r.StartLine,
			Identifier: r.Identifier,
			Prefix:     r.Prefix,
			Kind:       KindUnnecessaryPrefix,
			Severity:   SeverityInfo,
			Message:    fmt.Sprintf("Frame id %q is static; the declared prefix %q has no effect", r.Identifier, r.Prefix),
		}
	}

	if !r.HasPrefix {
		return &Diagnostic{
			Line:       r.StartLine,
			Identifier: r.Identifier,
			Kind:       KindMissingPrefix,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Dynamic frame id %q declares no stable prefix and cannot be routed", r.Identifier),
		}
	}

	if prefixValid(r) {
		return nil
	}
	return &Diagnostic{
		Line:       r.StartLine,
		Identifier: r.Identifier,
		Prefix:     r.Prefix,
		Kind:       KindMismatchedPrefix,
		Severity:   SeverityError,
		Message:    fmt.Sprintf("Declared prefix %q does not match the static portion %q of frame id %q", r.Prefix, r.StaticPortion(), r.Identifier),
	}
}

// prefixValid reports whether a declared prefix agrees with the region's
// static portion. A fully dynamic identifier (empty static portion) accepts
// any prefix: there is no static text to contradict it. Otherwise the prefix
// must be an exact leading substring of the static portion.
func prefixValid(r FrameRegion) bool {
	sp := r.StaticPortion()
	if sp == "" {
		return true
	}
	return len(sp) >= len(r.Prefix) && sp[:len(r.Prefix)] == r.Prefix
}
