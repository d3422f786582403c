/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"formsketch/internal/form"
	"formsketch/internal/geom"
)

// Label is a run of text placed by the layout; backends only choose the font.
type Label struct {
	Text string
	// At is the baseline start, or the baseline center when Centered is set.
	At       geom.Pt
	Size     float32
	Bold     bool
	Muted    bool
	Inverse  bool
	Centered bool
}

// Labels positions the placeholder text of n in absolute coordinates.
func Labels(n *Node) []Label {
	r := n.Abs
	switch n.Kind {
	case form.KindTextInput:
		return []Label{{Text: n.Text[0], At: geom.P(r.X+12, r.Y+r.H/2+FontSize/3), Size: FontSize, Muted: true}}
	case form.KindTextArea:
		return []Label{{Text: n.Text[0], At: geom.P(r.X+12, r.Y+8+FontSize), Size: FontSize, Muted: true}}
	case form.KindButton:
		return []Label{{Text: n.Text[0], At: geom.P(r.X+r.W/2, r.Y+r.H/2+FontSize/3), Size: FontSize, Inverse: true, Centered: true}}
	case form.KindCard:
		return []Label{
			{Text: n.Text[0], At: geom.P(r.X+CardPadding, r.Y+CardPadding+16), Size: 18, Bold: true},
			{Text: n.Text[1], At: geom.P(r.X+CardPadding, r.Y+CardPadding+36), Size: 12, Muted: true},
			{Text: n.Text[2], At: geom.P(r.X+CardPadding, r.Y+CardHeaderHeight+FontSize), Size: FontSize},
		}
	}
	return nil
}

// Margin is the blank border kept around the drawing when the canvas is sized to fit.
const Margin float32 = 24

// CanvasSize returns a size covering every node plus Margin, never smaller than minW x minH.
func (t *Tree) CanvasSize(minW, minH float32) geom.Size {
	far := t.Extent().Max()
	return geom.Size{W: max(minW, far.X+Margin), H: max(minH, far.Y+Margin)}
}

// FitOrigin shifts the tree right and down so no node starts left of or above
// Margin when some node has a negative coordinate. It returns the applied shift.
func (t *Tree) FitOrigin() geom.Pt {
	if t.Len() == 0 {
		return geom.Pt{}
	}
	least := t.Extent().Min()
	var d geom.Pt
	if least.X < 0 {
		d.X = Margin - least.X
	}
	if least.Y < 0 {
		d.Y = Margin - least.Y
	}
	if d != (geom.Pt{}) {
		t.Walk(func(n *Node) bool {
			n.Abs = n.Abs.Offset(d)
			return true
		})
	}
	return d
}
