/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package suggest holds the state of the floating template menu shown after a drag in menu mode.
package suggest

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"formsketch/internal/form"
	"formsketch/internal/geom"
)

// tallBoxHeight splits the offer: boxes taller than this suggest containers and text areas.
const tallBoxHeight float32 = 50

// payloadPrefix marks drag payloads produced by menu tiles.
const payloadPrefix = "formsketch/template:"

// Template is one draggable tile.
type Template struct {
	Kind  form.Kind
	Label string
	Size  geom.Size
}

func templateOf(k form.Kind) Template {
	return Template{Kind: k, Label: k.Label(), Size: k.DefaultSize()}
}

// Payload is the transfer string attached to a tile drag.
func (t Template) Payload() string { return payloadPrefix + string(t.Kind) }

// ParsePayload recovers the element kind from a tile drag payload.
func ParsePayload(s string) (form.Kind, error) {
	raw, ok := strings.CutPrefix(s, payloadPrefix)
	if !ok {
		return "", fmt.Errorf("not a template payload: %q", s)
	}
	return form.ParseKind(raw)
}

// Offered returns the templates suggested for a drawn box.
func Offered(box geom.Rect) []Template {
	kinds := []form.Kind{form.KindButton, form.KindTextInput}
	if box.H > tallBoxHeight {
		kinds = []form.Kind{form.KindCard, form.KindTextArea}
	}
	return lo.Map(kinds, func(k form.Kind, _ int) Template { return templateOf(k) })
}

// Menu is the open/closed state plus what it currently offers.
type Menu struct {
	minDrag   float32
	visible   bool
	anchor    geom.Pt
	box       geom.Rect
	templates []Template
}

// NewMenu returns a closed menu that opens only for boxes of at least minDrag on both sides.
func NewMenu(minDrag float32) *Menu { return &Menu{minDrag: minDrag} }

// Open shows the menu at anchor for box. Boxes below the drag threshold leave it closed.
func (m *Menu) Open(anchor geom.Pt, box geom.Rect) bool {
	if !box.AtLeast(m.minDrag) {
		return false
	}
	m.visible = true
	m.anchor = anchor
	m.box = box
	m.templates = Offered(box)
	return true
}

func (m *Menu) Close() {
	m.visible = false
	m.templates = nil
}

func (m *Menu) Visible() bool         { return m.visible }
func (m *Menu) Anchor() geom.Pt       { return m.anchor }
func (m *Menu) Box() geom.Rect        { return m.box }
func (m *Menu) Templates() []Template { return m.templates }

// AnchorFor places the menu just right of the box, vertically aligned with its top.
func AnchorFor(box geom.Rect) geom.Pt {
	return geom.P(box.X+box.W+8, box.Y)
}
