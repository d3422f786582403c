/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package placement owns the live element list of a sketch.
//
// Every command reports whether it changed state. Callers push a history
// snapshot only when that report is true; invalid input (short drags, unknown
// ids, leaf containers) is a silent false, never an error.
package placement

import (
	"github.com/samber/lo"

	"formsketch/internal/form"
	"formsketch/internal/geom"
)

// DefaultMinDrag is the smallest width and height a drawn box needs before it can become an element.
const DefaultMinDrag float32 = 20

// classifyMaxInputHeight is the tallest box still classified as a text input.
const classifyMaxInputHeight float32 = 40

// Snapshot is the top-level element list at a point in time. It is never written to after creation.
type Snapshot []form.Element

// Store holds the current snapshot and builds a new one for every mutation.
type Store struct {
	elements Snapshot
	minDrag  float32
	newID    func() string
}

type Option func(*Store)

// WithMinDrag overrides DefaultMinDrag. Non-positive values are ignored.
func WithMinDrag(v float32) Option {
	return func(s *Store) {
		if v > 0 {
			s.minDrag = v
		}
	}
}

// WithIDFunc replaces the id generator (tests use deterministic ids).
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{minDrag: DefaultMinDrag, newID: form.NewID}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MinDrag returns the threshold applied by Commit.
func (s *Store) MinDrag() float32 { return s.minDrag }

// Classify picks the kind for a drawn box: short boxes are inputs, everything else a card.
func (s *Store) Classify(box geom.Rect) form.Kind {
	if box.H <= classifyMaxInputHeight {
		return form.KindTextInput
	}
	return form.KindCard
}

// Commit turns a drawn box into an element, top-level or inside the card containerID.
func (s *Store) Commit(box geom.Rect, containerID string) (form.Element, bool) {
	if !box.AtLeast(s.minDrag) {
		return nil, false
	}
	return s.insert(s.Classify(box), box, containerID)
}

// Spawn places a template of kind with its default size at pos. No drag threshold applies.
func (s *Store) Spawn(kind form.Kind, pos geom.Pt, containerID string) (form.Element, bool) {
	size := kind.DefaultSize()
	return s.insert(kind, geom.R(pos.X, pos.Y, size.W, size.H), containerID)
}

func (s *Store) insert(kind form.Kind, r geom.Rect, containerID string) (form.Element, bool) {
	e := form.New(kind, s.newID(), containerID, r)
	if e == nil {
		return nil, false
	}
	if containerID == "" {
		next := make(Snapshot, len(s.elements), len(s.elements)+1)
		copy(next, s.elements)
		s.elements = append(next, e)
		return e, true
	}
	next, ok := replace(s.elements, containerID, func(found form.Element) (form.Element, bool) {
		card, isCard := found.(form.Card)
		if !isCard {
			return nil, false
		}
		return card.WithChild(e), true
	})
	if !ok {
		return nil, false
	}
	s.elements = next
	return e, true
}

// Relocate moves element id to (x, y) in its container's space. Size, id and children are kept.
func (s *Store) Relocate(id string, x, y float32) bool {
	to := geom.P(x, y)
	next, ok := replace(s.elements, id, func(found form.Element) (form.Element, bool) {
		if found.Info().Geometry.Min() == to {
			return nil, false
		}
		return form.MoveTo(found, to), true
	})
	if ok {
		s.elements = next
	}
	return ok
}

// replace rebuilds the path from the root to element id with fn's result.
// Lists off the path are shared with the previous snapshot.
func replace(list []form.Element, id string, fn func(form.Element) (form.Element, bool)) ([]form.Element, bool) {
	for i, e := range list {
		var updated form.Element
		if e.Info().ID == id {
			var ok bool
			if updated, ok = fn(e); !ok {
				return nil, false
			}
		} else if card, isCard := e.(form.Card); isCard && len(card.Children) > 0 {
			children, ok := replace(card.Children, id, fn)
			if !ok {
				continue
			}
			updated = card.WithChildren(children)
		} else {
			continue
		}
		next := make([]form.Element, len(list))
		copy(next, list)
		next[i] = updated
		return next, true
	}
	return nil, false
}

// Elements returns the current snapshot.
func (s *Store) Elements() Snapshot { return s.elements }

// TopLevel returns the elements drawn directly on the canvas.
func (s *Store) TopLevel() []form.Element {
	return lo.Filter(s.elements, func(e form.Element, _ int) bool { return e.Info().ParentID == "" })
}

// Find looks id up anywhere in the tree.
func (s *Store) Find(id string) (form.Element, bool) {
	var found form.Element
	form.Walk(s.elements, func(e form.Element, _ int) bool {
		if e.Info().ID == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// Len counts every element including nested ones.
func (s *Store) Len() int { return form.Count(s.elements) }

// Restore makes snap the live list.
func (s *Store) Restore(snap Snapshot) { s.elements = snap }
