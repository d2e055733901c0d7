// Package registry implements the ClassLayoutRegistry of spec.md §4.5: a
// per-parse mapping from class object id to the reusable (ClassInfo,
// MemberTypeInfo) layout that a later ClassWithId record needs to read its
// members.
//
// Shaped after internal/collision.Tracker in the teacher repo: a map keyed
// by an identifier, insert-or-detect-duplicate, with sentinel errors for the
// invalid-insert and miss cases.
package registry

import (
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
)

// Registry is a per-parse class-layout registry. It must not be shared
// across parse instances; construct a new Registry per top-level or nested
// parse.
type Registry struct {
	layouts map[int32]format.Layout
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{layouts: make(map[int32]format.Layout)}
}

// Register inserts layout under id. Registering an id a second time is a
// fatal error, per spec.md §3 ("attempting to add a duplicate key is a
// fatal error").
func (r *Registry) Register(id int32, layout format.Layout) error {
	if _, exists := r.layouts[id]; exists {
		return errs.Errorf(0, errs.ErrDuplicateClassMetadata, "class metadata id %d", id)
	}
	r.layouts[id] = layout

	return nil
}

// Lookup returns the layout registered under id, or ErrUnknownClassMetadata.
func (r *Registry) Lookup(id int32) (format.Layout, error) {
	layout, ok := r.layouts[id]
	if !ok {
		return format.Layout{}, errs.Errorf(0, errs.ErrUnknownClassMetadata, "class metadata id %d", id)
	}

	return layout, nil
}

// Count returns the number of registered layouts.
func (r *Registry) Count() int {
	return len(r.layouts)
}
