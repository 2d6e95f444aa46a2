package routing

import (
	"strings"
	"sync/atomic"
)

// Resolve maps an inbound frame identifier to a template reference.
//
// Lookup is two-tier: the exact map first, then a linear scan of the prefix
// list in registration order. The first prefix that is a leading substring
// of id wins, with no longest-match preference. A miss is a normal outcome,
// not an error: the second return value is false and the caller decides the
// fallback.
func (t *Table) Resolve(id string) (string, bool) {
	if tmpl, ok := t.exact[id]; ok {
		return tmpl, true
	}
	for _, e := range t.prefixes {
		if strings.HasPrefix(id, e.Prefix) {
			return e.Template, true
		}
	}
	return "", false
}

// Resolver serves frame lookups in the request path while allowing the
// routing table to be rebuilt behind it. The current table is held in an
// atomic pointer: concurrent Resolve calls never block each other, and a
// Swap publishes a complete new snapshot: in-flight resolutions see either
// the old table or the new one in full, never a partial update.
type Resolver struct {
	table atomic.Pointer[Table]
}

// NewResolver creates a resolver serving the given table. A nil table is
// allowed; every lookup misses until the first Swap.
func NewResolver(t *Table) *Resolver {
	r := &Resolver{}
	if t != nil {
		r.table.Store(t)
	}
	return r
}

// Resolve looks up id in the current snapshot.
func (r *Resolver) Resolve(id string) (string, bool) {
	t := r.table.Load()
	if t == nil {
		return "", false
	}
	return t.Resolve(id)
}

// Swap atomically replaces the current snapshot.
func (r *Resolver) Swap(t *Table) {
	r.table.Store(t)
}

// Table returns the current snapshot, which may be nil.
func (r *Resolver) Table() *Table {
	return r.table.Load()
}
