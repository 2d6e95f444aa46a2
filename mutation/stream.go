package mutation

import (
	"strings"

	"golang.org/x/net/html"
)

// RenderStream renders the record as a frame-stream element:
//
//	<frame-stream action="update" target="cart-items">...fragment...</frame-stream>
//
// Attribute values are HTML-escaped; the fragment itself is emitted verbatim,
// since it is already rendered template output.
func (r Record) RenderStream() string {
	var b strings.Builder
	b.WriteString(`<frame-stream action="`)
	b.WriteString(html.EscapeString(string(r.Op)))
	b.WriteString(`" target="`)
	b.WriteString(html.EscapeString(r.Target))
	b.WriteString(`">`)
	b.WriteString(r.HTML)
	b.WriteString(`</frame-stream>`)
	return b.String()
}

// RenderStream renders every record of the batch in order.
func (b *Batch) RenderStream() string {
	var sb strings.Builder
	for _, r := range b.Records {
		sb.WriteString(r.RenderStream())
	}
	return sb.String()
}
