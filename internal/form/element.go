/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package form defines the placed-element model of a sketch.
//
// An Element is a closed sum over four variants: TextInput, Button and TextArea
// are leaves; Card is the only container and the only variant that carries
// children. Elements are values and are never modified after construction:
// "changing" one means building a replacement, which lets history snapshots
// share structure with the live list.
package form

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"formsketch/internal/geom"
)

// Kind tags an element variant. The string form is used in scripts, drag payloads and exports.
type Kind string

const (
	KindTextInput Kind = "text-input"
	KindCard      Kind = "card-container"
	KindButton    Kind = "button"
	KindTextArea  Kind = "multiline-text-input"
)

// Kinds lists every variant in a stable order.
var Kinds = []Kind{KindTextInput, KindCard, KindButton, KindTextArea}

// ParseKind accepts canonical names and the short aliases used by the menu drag payloads.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text-input", "input":
		return KindTextInput, nil
	case "card-container", "card":
		return KindCard, nil
	case "button":
		return KindButton, nil
	case "multiline-text-input", "textarea":
		return KindTextArea, nil
	}
	return "", fmt.Errorf("unknown element kind %q", s)
}

// IsContainer reports whether elements of this kind accept children.
func (k Kind) IsContainer() bool { return k == KindCard }

// DefaultSize is the size given to an element spawned from a menu template.
func (k Kind) DefaultSize() geom.Size {
	switch k {
	case KindButton:
		return geom.Size{W: 100, H: 40}
	case KindTextInput:
		return geom.Size{W: 200, H: 40}
	default:
		return geom.Size{W: 300, H: 200}
	}
}

// Label is the human-facing name used on menu tiles and in the terminal renderer.
func (k Kind) Label() string {
	switch k {
	case KindTextInput:
		return "Input"
	case KindCard:
		return "Card"
	case KindButton:
		return "Button"
	case KindTextArea:
		return "Textarea"
	}
	return string(k)
}

// Base carries the fields every variant shares.
// ParentID is a weak back-reference: ownership runs only through Card.Children.
type Base struct {
	ID       string
	ParentID string
	Geometry geom.Rect
}

// Element is implemented by TextInput, Button, TextArea and Card only.
type Element interface {
	Info() Base
	Kind() Kind
	// moved returns a copy with the geometry origin replaced.
	moved(p geom.Pt) Element
}

type TextInput struct{ Base }
type Button struct{ Base }
type TextArea struct{ Base }

// Card is the container variant.
type Card struct {
	Base
	Children []Element
}

func (e TextInput) Info() Base { return e.Base }
func (e Button) Info() Base    { return e.Base }
func (e TextArea) Info() Base  { return e.Base }
func (e Card) Info() Base      { return e.Base }

func (TextInput) Kind() Kind { return KindTextInput }
func (Button) Kind() Kind    { return KindButton }
func (TextArea) Kind() Kind  { return KindTextArea }
func (Card) Kind() Kind      { return KindCard }

func (e TextInput) moved(p geom.Pt) Element { e.Geometry = e.Geometry.MoveTo(p); return e }
func (e Button) moved(p geom.Pt) Element    { e.Geometry = e.Geometry.MoveTo(p); return e }
func (e TextArea) moved(p geom.Pt) Element  { e.Geometry = e.Geometry.MoveTo(p); return e }
func (e Card) moved(p geom.Pt) Element      { e.Geometry = e.Geometry.MoveTo(p); return e }

// New builds the variant for kind. Unknown kinds yield nil.
func New(kind Kind, id, parentID string, r geom.Rect) Element {
	b := Base{ID: id, ParentID: parentID, Geometry: r}
	switch kind {
	case KindTextInput:
		return TextInput{b}
	case KindButton:
		return Button{b}
	case KindTextArea:
		return TextArea{b}
	case KindCard:
		return Card{Base: b}
	}
	return nil
}

// MoveTo returns e with its origin at p; size, id, parent and children are kept.
func MoveTo(e Element, p geom.Pt) Element { return e.moved(p) }

// WithChild returns a copy of c with child appended. The receiver's slice is never
// written to, so lists captured by earlier snapshots stay intact.
func (c Card) WithChild(child Element) Card {
	next := make([]Element, len(c.Children), len(c.Children)+1)
	copy(next, c.Children)
	c.Children = append(next, child)
	return c
}

// WithChildren returns a copy of c holding children.
func (c Card) WithChildren(children []Element) Card {
	c.Children = children
	return c
}

// Children returns the nested elements of a container, nil for leaves.
func Children(e Element) []Element {
	if c, ok := e.(Card); ok {
		return c.Children
	}
	return nil
}

// NewID returns a time-ordered identifier (UUIDv7): ids of later elements sort after earlier ones.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Walk visits elements depth-first in list order. Returning false from fn stops the walk.
func Walk(list []Element, fn func(e Element, depth int) bool) {
	walk(list, 0, fn)
}

func walk(list []Element, depth int, fn func(Element, int) bool) bool {
	for _, e := range list {
		if !fn(e, depth) {
			return false
		}
		if !walk(Children(e), depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of elements in the tree.
func Count(list []Element) int {
	n := 0
	Walk(list, func(Element, int) bool { n++; return true })
	return n
}
