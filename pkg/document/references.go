package document

import (
	"encoding/json"
	"sort"
)

// ReferenceTable maps link reference identifiers to their targets. It is
// filled while one document is built and never shared between parses.
type ReferenceTable struct {
	refs map[string]LinkMark
}

// NewReferenceTable creates an empty table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{refs: make(map[string]LinkMark)}
}

// Add registers a target. A later definition of the same identifier
// replaces the earlier one.
func (t *ReferenceTable) Add(identifier string, link LinkMark) {
	if t.refs == nil {
		t.refs = make(map[string]LinkMark)
	}
	t.refs[identifier] = link
}

// Lookup returns the target registered for identifier.
func (t *ReferenceTable) Lookup(identifier string) (LinkMark, bool) {
	if t == nil {
		return LinkMark{}, false
	}
	link, ok := t.refs[identifier]
	return link, ok
}

// Len returns the number of registered identifiers.
func (t *ReferenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.refs)
}

// Identifiers returns the registered identifiers in sorted order.
func (t *ReferenceTable) Identifiers() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.refs))
	for id := range t.refs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve returns the target a link points at. Reference links take the
// registered target; an unknown identifier leaves the link with an empty
// URL so it stays inert.
func (t *ReferenceTable) Resolve(link LinkMark) LinkMark {
	if !link.IsReference() {
		return link
	}
	if target, ok := t.Lookup(link.Identifier); ok {
		return target
	}
	return link
}

// MarshalJSON encodes the table as an object keyed by identifier.
func (t *ReferenceTable) MarshalJSON() ([]byte, error) {
	if t == nil || t.refs == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.refs)
}
