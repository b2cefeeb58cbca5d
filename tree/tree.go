// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree implements the SVG document tree as an id-indexed arena
// of elements, with parent / children stored as indices into the arena.
// All traversal takes a snapshot of the relevant child lists, so
// visitors are free to create, move, and remove elements mid-walk
// without invalidating the iteration.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/svganim/base/ordmap"
)

var (
	// ErrNoRoot indicates parsed input without a root svg element.
	ErrNoRoot = errors.New("tree: no root svg element")

	// ErrBadID indicates an out-of-range or deleted NodeID.
	ErrBadID = errors.New("tree: invalid node id")
)

// NodeID is an index into a [Document]'s element arena.
type NodeID int

// Nil is the NodeID of no element.
const Nil NodeID = -1

// Element is one element in the document: a tag, ordered attributes,
// parent and child indices, and any directly contained character data.
type Element struct {
	Tag      string
	Attrs    ordmap.Map[string, string]
	Parent   NodeID
	Children []NodeID
	Text     string

	deleted bool
}

// Document is an SVG document: an arena of elements with one root.
type Document struct {
	Root NodeID

	nodes []Element
	free  []NodeID
}

// NewDocument returns an empty document with a root svg element.
func NewDocument() *Document {
	d := &Document{Root: Nil}
	d.Root = d.New("svg", Nil)
	return d
}

// Valid returns whether the given id refers to a live element.
func (d *Document) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes) && !d.nodes[id].deleted
}

// Elem returns the element for the given id, or nil if invalid.
// The returned pointer is valid until the next call to [Document.New].
func (d *Document) Elem(id NodeID) *Element {
	if !d.Valid(id) {
		return nil
	}
	return &d.nodes[id]
}

// Tag returns the tag name of the given element, or "" if invalid.
func (d *Document) Tag(id NodeID) string {
	if !d.Valid(id) {
		return ""
	}
	return d.nodes[id].Tag
}

// New creates a new element with the given tag as the last child of
// the given parent (or as a detached element for parent Nil),
// returning its id. Deleted arena slots are recycled.
func (d *Document) New(tag string, parent NodeID) NodeID {
	var id NodeID
	if n := len(d.free); n > 0 {
		id = d.free[n-1]
		d.free = d.free[:n-1]
		d.nodes[id] = Element{Tag: tag, Parent: Nil}
	} else {
		id = NodeID(len(d.nodes))
		d.nodes = append(d.nodes, Element{Tag: tag, Parent: Nil})
	}
	if parent != Nil {
		d.nodes[id].Parent = parent
		d.nodes[parent].Children = append(d.nodes[parent].Children, id)
	}
	return id
}

// Remove removes the given element and its entire subtree from the
// document, recycling their arena slots.
func (d *Document) Remove(id NodeID) {
	if !d.Valid(id) {
		return
	}
	if p := d.nodes[id].Parent; p != Nil && d.Valid(p) {
		d.detach(id)
	}
	d.removeSubtree(id)
}

func (d *Document) removeSubtree(id NodeID) {
	for _, c := range d.nodes[id].Children {
		d.removeSubtree(c)
	}
	d.nodes[id] = Element{deleted: true, Parent: Nil}
	d.free = append(d.free, id)
}

func (d *Document) detach(id NodeID) {
	p := d.nodes[id].Parent
	kids := d.nodes[p].Children
	if i := slices.Index(kids, id); i >= 0 {
		d.nodes[p].Children = slices.Delete(kids, i, i+1)
	}
	d.nodes[id].Parent = Nil
}

// Move moves the given element (with its subtree) to be the last child
// of the given new parent. Moving an element into its own subtree is
// an error.
func (d *Document) Move(id, newParent NodeID) error {
	if !d.Valid(id) || !d.Valid(newParent) {
		return ErrBadID
	}
	for p := newParent; p != Nil; p = d.nodes[p].Parent {
		if p == id {
			return fmt.Errorf("tree: cannot move %d into its own subtree", id)
		}
	}
	d.detach(id)
	d.nodes[id].Parent = newParent
	d.nodes[newParent].Children = append(d.nodes[newParent].Children, id)
	return nil
}

// MoveBefore moves the given element to sit immediately before the
// given sibling under the sibling's parent.
func (d *Document) MoveBefore(id, sibling NodeID) error {
	if !d.Valid(id) || !d.Valid(sibling) {
		return ErrBadID
	}
	p := d.nodes[sibling].Parent
	if p == Nil {
		return fmt.Errorf("tree: sibling %d has no parent", sibling)
	}
	d.detach(id)
	kids := d.nodes[p].Children
	i := slices.Index(kids, sibling)
	d.nodes[p].Children = slices.Insert(kids, i, id)
	d.nodes[id].Parent = p
	return nil
}

// Parent returns the parent of the given element, or Nil.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.Valid(id) {
		return Nil
	}
	return d.nodes[id].Parent
}

// Children returns a copy of the child list of the given element.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.Valid(id) {
		return nil
	}
	return slices.Clone(d.nodes[id].Children)
}

// Attr returns the value of the given attribute, and whether it is set.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	if !d.Valid(id) {
		return "", false
	}
	return d.nodes[id].Attrs.ValueByKeyTry(name)
}

// SetAttr sets the given attribute, preserving original attribute
// order for attributes that already exist.
func (d *Document) SetAttr(id NodeID, name, value string) {
	if !d.Valid(id) {
		return
	}
	d.nodes[id].Attrs.Add(name, value)
}

// DelAttr removes the given attribute if present.
func (d *Document) DelAttr(id NodeID, name string) {
	if !d.Valid(id) {
		return
	}
	d.nodes[id].Attrs.DeleteKey(name)
}

// AttrNames returns the attribute names of the element, in order.
func (d *Document) AttrNames(id NodeID) []string {
	if !d.Valid(id) {
		return nil
	}
	return d.nodes[id].Attrs.Keys()
}

// Count returns the number of live elements in the document,
// including the root.
func (d *Document) Count() int {
	n := 0
	for i := range d.nodes {
		if !d.nodes[i].deleted {
			n++
		}
	}
	return n
}

// structuralTags are non-visual elements excluded from id assignment
// and palette / complexity walks.
var structuralTags = map[string]bool{
	"defs":     true,
	"metadata": true,
	"title":    true,
	"desc":     true,
	"style":    true,
}

// IsStructural returns whether the given tag is a non-visual
// structural element (defs, metadata, title, desc, style).
func IsStructural(tag string) bool {
	return structuralTags[tag]
}

// WalkDown calls the given function on the given element and then its
// children, in document pre-order. If the function returns false, the
// children of that element are not visited. The child list of each
// element is snapshotted before descending, so the function may mutate
// the tree; elements removed before being reached are skipped.
func (d *Document) WalkDown(id NodeID, fun func(id NodeID) bool) {
	if !d.Valid(id) {
		return
	}
	if !fun(id) {
		return
	}
	for _, c := range d.Children(id) {
		d.WalkDown(c, fun)
	}
}

// WalkDownVisual is [Document.WalkDown] skipping structural subtrees
// (defs, metadata, title, desc, style).
func (d *Document) WalkDownVisual(id NodeID, fun func(id NodeID) bool) {
	d.WalkDown(id, func(id NodeID) bool {
		if IsStructural(d.Tag(id)) {
			return false
		}
		return fun(id)
	})
}

// Depth returns the depth of the given element below the root
// (the root is at depth 0).
func (d *Document) Depth(id NodeID) int {
	n := 0
	for p := d.Parent(id); p != Nil; p = d.Parent(p) {
		n++
	}
	return n
}

// Clone returns a deep copy of the document, with identical NodeIDs
// for all live elements.
func (d *Document) Clone() *Document {
	nd := &Document{
		Root:  d.Root,
		nodes: make([]Element, len(d.nodes)),
		free:  slices.Clone(d.free),
	}
	for i := range d.nodes {
		e := &d.nodes[i]
		ne := Element{
			Tag:      e.Tag,
			Parent:   e.Parent,
			Children: slices.Clone(e.Children),
			Text:     e.Text,
			deleted:  e.deleted,
		}
		ne.Attrs = *e.Attrs.Copy()
		nd.nodes[i] = ne
	}
	return nd
}
