// Package routing builds and queries the two-tier frame routing table: an
// exact-match map for static frame identifiers and an ordered prefix list for
// dynamic ones. Tables are immutable snapshots: they are rebuilt wholesale
// when source documents change and swapped atomically, never mutated.
package routing

import (
	"log/slog"
	"sort"

	"github.com/abiiranathan/rex-frames/frames"
)

// PrefixEntry routes any inbound identifier starting with Prefix to Template.
type PrefixEntry struct {
	Prefix   string `json:"prefix"`
	Template string `json:"template"`
}

// Entry is one exact-match pair.
type Entry struct {
	Identifier string `json:"identifier"`
	Template   string `json:"template"`
}

// Table is the aggregate lookup structure consumed at request time. It is
// read-only after construction and safe for unbounded concurrent reads.
type Table struct {
	exact    map[string]string
	prefixes []PrefixEntry
}

// NewTable constructs a table from pre-built entries. Generated lookup
// modules call this; application code normally uses Aggregate. The inputs
// are copied, so callers cannot mutate the table afterwards.
func NewTable(exact map[string]string, prefixes []PrefixEntry) *Table {
	t := &Table{
		exact:    make(map[string]string, len(exact)),
		prefixes: make([]PrefixEntry, len(prefixes)),
	}
	for k, v := range exact {
		t.exact[k] = v
	}
	copy(t.prefixes, prefixes)
	return t
}

// Aggregate merges the frame regions of every document into a routing table.
//
// Rules:
//   - A static region inserts (identifier, template) into the exact map.
//     On a key collision the later document wins; processing order is the
//     given document order, so callers should pass a deterministically
//     ordered slice (frames.ScanDir sorts by template path).
//   - A dynamic region with a declared prefix inserts (prefix, template)
//     into the prefix list unless that prefix is already present:
//     first-seen wins, and the duplicate is skipped.
//   - A dynamic region without a prefix is not routable and contributes
//     nothing; it was already flagged by frames.Classify.
func Aggregate(docs []frames.DocumentFrameSet, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{exact: make(map[string]string)}
	seen := make(map[string]string) // prefix -> first template

	for _, doc := range docs {
		for _, r := range doc.Regions {
			if !r.Dynamic {
				t.exact[r.Identifier] = doc.Template
				continue
			}
			if !r.HasPrefix {
				continue
			}
			if first, dup := seen[r.Prefix]; dup {
				logger.Debug("routing: duplicate prefix skipped",
					"prefix", r.Prefix, "template", doc.Template, "kept", first)
				continue
			}
			seen[r.Prefix] = doc.Template
			t.prefixes = append(t.prefixes, PrefixEntry{Prefix: r.Prefix, Template: doc.Template})
		}
	}

	return t
}

// Exact returns the exact-match entries sorted by identifier. The
// underlying map is not exposed.
func (t *Table) Exact() []Entry {
	entries := make([]Entry, 0, len(t.exact))
	for id, tmpl := range t.exact {
		entries = append(entries, Entry{Identifier: id, Template: tmpl})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Identifier < entries[j].Identifier })
	return entries
}

// Prefixes returns a copy of the prefix entries in registration order.
func (t *Table) Prefixes() []PrefixEntry {
	out := make([]PrefixEntry, len(t.prefixes))
	copy(out, t.prefixes)
	return out
}

// Len returns the total number of routing entries.
func (t *Table) Len() int {
	return len(t.exact) + len(t.prefixes)
}
