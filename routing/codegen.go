package routing

import (
	"io"
	"strconv"
	"text/template"
)

// moduleTemplate renders a generated Go lookup module. All strings are
// pre-quoted with strconv.Quote, exact entries are sorted by identifier and
// prefix entries keep registration order, so unchanged input produces
// byte-identical output.
var moduleTemplate = template.Must(template.New("module").Parse(`// Code generated by rex-frames. DO NOT EDIT.

package {{.Package}}

import "github.com/abiiranathan/rex-frames/routing"

// FrameRoutes maps frame identifiers to template fragments. Static
// identifiers resolve through the exact map; dynamic identifiers resolve
// through the stable-prefix list.
var FrameRoutes = routing.NewTable(
	map[string]string{
{{- range .Exact}}
		{{.Identifier}}: {{.Template}},
{{- end}}
	},
	[]routing.PrefixEntry{
{{- range .Prefixes}}
		{Prefix: {{.Prefix}}, Template: {{.Template}}},
{{- end}}
	},
)
`))

// WriteModule emits t as a compilable Go source file declaring a FrameRoutes
// table in the given package.
func WriteModule(w io.Writer, pkg string, t *Table) error {
	if pkg == "" {
		pkg = "routes"
	}

	data := struct {
		Package  string
		Exact    []Entry
		Prefixes []PrefixEntry
	}{Package: pkg}

	for _, e := range t.Exact() {
		data.Exact = append(data.Exact, Entry{
			Identifier: strconv.Quote(e.Identifier),
			Template:   strconv.Quote(e.Template),
		})
	}
	for _, e := range t.Prefixes() {
		data.Prefixes = append(data.Prefixes, PrefixEntry{
			Prefix:   strconv.Quote(e.Prefix),
			Template: strconv.Quote(e.Template),
		})
	}

	return moduleTemplate.Execute(w, data)
}
