/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package selection turns pointer positions into a normalized selection box.
//
// All positions handed to a Tracker are local to the surface on which the drag
// began (the root canvas, or the content region of the card that was pressed),
// so a box drawn inside a nested card comes out in that card's coordinates.
package selection

import "formsketch/internal/geom"

// Tracker follows one drag at a time. The zero value is ready to use.
type Tracker struct {
	active      bool
	origin      geom.Pt
	box         geom.Rect
	containerID string

	// OnOverlay, when set, is called with the current box on every update of an active drag.
	OnOverlay func(box geom.Rect)
}

// Begin starts a drag at pos. containerID names the card the drag started in, empty for the canvas.
func (t *Tracker) Begin(pos geom.Pt, containerID string) {
	t.active = true
	t.origin = pos
	t.containerID = containerID
	t.box = geom.Rect{X: pos.X, Y: pos.Y}
}

// Update recomputes the box from the origin and pos. No-op unless a drag is active.
func (t *Tracker) Update(pos geom.Pt) {
	if !t.active {
		return
	}
	t.box = geom.Span(t.origin, pos)
	if t.OnOverlay != nil {
		t.OnOverlay(t.box)
	}
}

// End finishes the drag and returns the final box, the originating container, and whether a drag was active.
func (t *Tracker) End() (box geom.Rect, containerID string, ok bool) {
	if !t.active {
		return geom.Rect{}, "", false
	}
	t.active = false
	box, containerID = t.box, t.containerID
	t.containerID = ""
	return box, containerID, true
}

func (t *Tracker) Active() bool        { return t.active }
func (t *Tracker) Box() geom.Rect      { return t.box }
func (t *Tracker) ContainerID() string { return t.containerID }
