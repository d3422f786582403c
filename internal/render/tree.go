/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render turns a store snapshot into a visual tree that every backend draws from.
//
// The tree is a pure function of the element list. Only top-level elements sit
// at the root; a card lays its children out inside its content region, below
// the header, so each node carries both its container-local rectangle and the
// absolute rectangle on the canvas.
package render

import (
	"formsketch/internal/form"
	"formsketch/internal/geom"
)

// Card layout metrics, in canvas units.
const (
	CardPadding      float32 = 16
	CardHeaderHeight float32 = 64
	CornerRadius     float32 = 6
)

// ContentInset is the offset from a card's origin to the origin of its content region.
func ContentInset() geom.Pt { return geom.P(CardPadding, CardHeaderHeight) }

// Role flags describe how the UI may interact with a node.
type Role uint8

const (
	// RoleDragSource nodes can be picked up and relocated.
	RoleDragSource Role = 1 << iota
	// RoleDropTarget nodes accept template drops as children.
	RoleDropTarget
	// RoleDrawSurface nodes accept new selection boxes.
	RoleDrawSurface
)

func (r Role) Has(f Role) bool { return r&f != 0 }

// Node is one drawn element.
type Node struct {
	ID       string
	Kind     form.Kind
	ParentID string
	Depth    int
	Roles    Role
	// Local is the element geometry in its container's space.
	Local geom.Rect
	// Abs is the same rectangle in canvas space.
	Abs geom.Rect
	// Text holds the placeholder strings drawn for the element, top to bottom.
	Text     []string
	Children []*Node
}

// Content returns the absolute content region of a card (the whole node for leaves).
func (n *Node) Content() geom.Rect {
	if n.Kind != form.KindCard {
		return n.Abs
	}
	r := n.Abs.Inset(CardPadding, CardPadding)
	head := CardHeaderHeight - CardPadding
	return geom.R(r.X, r.Y+head, max(r.W, 0), max(r.H-head, 0))
}

// ToLocal converts an absolute point into the coordinate space children of n use.
func (n *Node) ToLocal(p geom.Pt) geom.Pt { return p.Sub(n.Content().Min()) }

// Tree is the rendered sketch.
type Tree struct {
	Roots []*Node
}

// Placeholder texts shown inside each kind of element.
const (
	TextInputPlaceholder = "Input field"
	ButtonLabel          = "Button"
	TextAreaPlaceholder  = "Textarea"
	CardTitle            = "Card Title"
	CardDescription      = "Card Description"
	CardContent          = "Content goes here"
)

// Build lays out elements. Elements with a parent id are skipped at the root;
// they are reached through their card.
func Build(elements []form.Element) *Tree {
	t := &Tree{}
	for _, e := range elements {
		if e.Info().ParentID != "" {
			continue
		}
		t.Roots = append(t.Roots, build(e, geom.Pt{}, 0))
	}
	return t
}

func build(e form.Element, origin geom.Pt, depth int) *Node {
	b := e.Info()
	n := &Node{
		ID:       b.ID,
		Kind:     e.Kind(),
		ParentID: b.ParentID,
		Depth:    depth,
		Roles:    RoleDragSource,
		Local:    b.Geometry,
		Abs:      b.Geometry.Offset(origin),
	}
	switch v := e.(type) {
	case form.TextInput:
		n.Text = []string{TextInputPlaceholder}
	case form.Button:
		n.Text = []string{ButtonLabel}
	case form.TextArea:
		n.Text = []string{TextAreaPlaceholder}
	case form.Card:
		n.Roles |= RoleDropTarget | RoleDrawSurface
		n.Text = []string{CardTitle, CardDescription, CardContent}
		inner := n.Content().Min()
		for _, c := range v.Children {
			n.Children = append(n.Children, build(c, inner, depth+1))
		}
	}
	return n
}

// HitTest returns the innermost node under the absolute point p, or nil for bare canvas.
// Later siblings are drawn on top and win over earlier ones.
func (t *Tree) HitTest(p geom.Pt) *Node {
	return hit(t.Roots, p)
}

func hit(nodes []*Node, p geom.Pt) *Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if deeper := hit(n.Children, p); deeper != nil {
			return deeper
		}
		if n.Abs.Contains(p) {
			return n
		}
	}
	return nil
}

// Surface returns the innermost draw surface under p: the node itself when it
// accepts drawing, otherwise its nearest card ancestor. Nil means the canvas.
func (t *Tree) Surface(p geom.Pt) *Node {
	n := t.HitTest(p)
	for n != nil && !n.Roles.Has(RoleDrawSurface) {
		n = t.Find(n.ParentID)
	}
	return n
}

// Walk visits nodes depth-first in paint order. Returning false stops the walk.
func (t *Tree) Walk(fn func(n *Node) bool) {
	var walk func(nodes []*Node) bool
	walk = func(nodes []*Node) bool {
		for _, n := range nodes {
			if !fn(n) || !walk(n.Children) {
				return false
			}
		}
		return true
	}
	walk(t.Roots)
}

// Find returns the node for id.
func (t *Tree) Find(id string) *Node {
	var found *Node
	t.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Extent is the union of every absolute rectangle, or the zero rect for an empty tree.
func (t *Tree) Extent() geom.Rect {
	var ext geom.Rect
	first := true
	t.Walk(func(n *Node) bool {
		if first {
			ext, first = n.Abs, false
		} else {
			ext = ext.Union(n.Abs)
		}
		return true
	})
	return ext
}

// Len counts nodes.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(*Node) bool { n++; return true })
	return n
}
