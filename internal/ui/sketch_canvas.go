//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/render"
	"formsketch/internal/session"
	"formsketch/internal/suggest"
)

// gesture is the pointer interaction in progress on the canvas.
type gesture int

const (
	gestureNone gesture = iota
	gestureDraw
	gestureMove
)

// relocation tracks an element being moved; the element is only moved in the session when the drag ends,
// so one drag is one undo step.
type relocation struct {
	id     string
	parent *render.Node // nil for top-level elements
	grab   geom.Pt      // pointer minus element origin, absolute
	ghost  geom.Rect
}

// SketchCanvas draws the session's elements and turns pointer input into session commands.
type SketchCanvas struct {
	widget.BaseWidget

	sess    *session.Session
	palette render.Palette
	minW    float32
	minH    float32

	tree    *render.Tree
	gesture gesture
	// origin of the surface the current draw started on, in canvas coordinates
	origin geom.Pt
	move   relocation
	// drop preview while a template tile is dragged over the canvas
	preview *geom.Rect
}

func NewSketchCanvas(s *session.Session, minW, minH float32) *SketchCanvas {
	c := &SketchCanvas{sess: s, palette: render.DefaultPalette, minW: minW, minH: minH}
	c.tree = s.Tree()
	c.ExtendBaseWidget(c)
	return c
}

func toPt(p fyne.Position) geom.Pt { return geom.P(p.X, p.Y) }

func toPos(p geom.Pt) fyne.Position { return fyne.NewPos(p.X, p.Y) }

// Sync rebuilds the render tree from the session and repaints.
func (c *SketchCanvas) Sync() {
	c.tree = c.sess.Tree()
	c.Refresh()
}

// MouseDown starts a relocation when the press lands on an element that can be dragged
// (cards only with Shift or the secondary button), otherwise starts a draw on the
// innermost card content or on the canvas.
func (c *SketchCanvas) MouseDown(e *desktop.MouseEvent) {
	p := toPt(e.Position)
	hit := c.tree.HitTest(p)
	if hit != nil && hit.Roles.Has(render.RoleDragSource) {
		alt := e.Modifier&fyne.KeyModifierShift != 0 || e.Button == desktop.MouseButtonSecondary
		if !hit.Roles.Has(render.RoleDrawSurface) || alt {
			c.beginMove(hit, p)
			return
		}
	}
	c.gesture = gestureDraw
	if surface := c.tree.Surface(p); surface != nil {
		c.origin = surface.Content().Min()
		c.sess.PointerDown(surface.ToLocal(p), surface.ID)
		return
	}
	c.origin = geom.Pt{}
	c.sess.PointerDown(p, "")
}

func (c *SketchCanvas) beginMove(n *render.Node, p geom.Pt) {
	c.gesture = gestureMove
	c.move = relocation{id: n.ID, grab: p.Sub(n.Abs.Min()), ghost: n.Abs}
	if n.ParentID != "" {
		c.move.parent = c.tree.Find(n.ParentID)
	}
	c.Refresh()
}

func (c *SketchCanvas) MouseUp(*desktop.MouseEvent) { c.finish() }

func (c *SketchCanvas) MouseIn(*desktop.MouseEvent) {}

func (c *SketchCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends any gesture as if the button had been released.
func (c *SketchCanvas) MouseOut() { c.finish() }

func (c *SketchCanvas) Dragged(e *fyne.DragEvent) {
	p := toPt(e.Position)
	switch c.gesture {
	case gestureDraw:
		c.sess.PointerMove(p.Sub(c.origin))
	case gestureMove:
		c.move.ghost = c.move.ghost.MoveTo(p.Sub(c.move.grab))
		c.Refresh()
	}
}

func (c *SketchCanvas) DragEnd() { c.finish() }

func (c *SketchCanvas) finish() {
	g := c.gesture
	c.gesture = gestureNone
	switch g {
	case gestureDraw:
		c.sess.PointerUp()
	case gestureMove:
		m := c.move
		c.move = relocation{}
		at := m.ghost.Min()
		if m.parent != nil {
			at = m.parent.ToLocal(at)
		}
		if !c.sess.Relocate(m.id, at.X, at.Y) {
			c.Refresh()
		}
	}
}

// dropTarget resolves where a template released at canvas point p belongs.
func (c *SketchCanvas) dropTarget(p geom.Pt) (local geom.Pt, containerID string) {
	if surface := c.tree.Surface(p); surface != nil {
		return surface.ToLocal(p), surface.ID
	}
	return p, ""
}

// PreviewDrop shows where a dragged template would land; kind "" clears the preview.
func (c *SketchCanvas) PreviewDrop(kind form.Kind, p geom.Pt) {
	if kind == "" {
		c.preview = nil
	} else {
		r := geom.Rect{X: p.X, Y: p.Y, W: kind.DefaultSize().W, H: kind.DefaultSize().H}
		c.preview = &r
	}
	c.Refresh()
}

// Drop spawns the template named by payload at canvas point p, nested when p is over a card.
func (c *SketchCanvas) Drop(payload string, p geom.Pt) bool {
	c.preview = nil
	kind, err := suggest.ParsePayload(payload)
	if err != nil {
		c.Refresh()
		return false
	}
	local, containerID := c.dropTarget(p)
	if !c.sess.DropTemplate(kind, local, containerID) {
		c.Refresh()
		return false
	}
	return true
}

// OverlayRect returns the selection box in canvas coordinates.
func (c *SketchCanvas) OverlayRect() (geom.Rect, bool) {
	ov := c.sess.Overlay()
	if !ov.Active {
		return geom.Rect{}, false
	}
	origin := geom.Pt{}
	if ov.ContainerID != "" {
		if n := c.tree.Find(ov.ContainerID); n != nil {
			origin = n.Content().Min()
		}
	}
	return ov.Box.Offset(origin), true
}

// MenuAnchor returns the suggestion menu position in canvas coordinates.
func (c *SketchCanvas) MenuAnchor(m session.MenuState) geom.Pt {
	if m.ContainerID != "" {
		if n := c.tree.Find(m.ContainerID); n != nil {
			return m.Anchor.Add(n.Content().Min())
		}
	}
	return m.Anchor
}

// PreferredSize grows with the drawing and never drops below the configured canvas.
func (c *SketchCanvas) PreferredSize() fyne.Size {
	s := c.tree.CanvasSize(c.minW, c.minH)
	return fyne.NewSize(s.W, s.H)
}

func (c *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(c.palette.Canvas.RGBA())
	r := &sketchCanvasRenderer{c: c, bg: bg}
	r.rebuild()
	return r
}

type sketchCanvasRenderer struct {
	c       *SketchCanvas
	bg      *canvas.Rectangle
	shapes  []*canvas.Rectangle
	overlay *canvas.Rectangle
	ghost   *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *sketchCanvasRenderer) Destroy()                     {}
func (r *sketchCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *sketchCanvasRenderer) MinSize() fyne.Size           { return r.c.PreferredSize() }
func (r *sketchCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.c) }

func (r *sketchCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
}

// rebuild regenerates every object from the render tree; element positions are absolute.
func (r *sketchCanvasRenderer) rebuild() {
	pal := r.c.palette
	r.shapes = r.shapes[:0]
	r.overlay, r.ghost = nil, nil
	objs := []fyne.CanvasObject{r.bg}
	r.c.tree.Walk(func(n *render.Node) bool {
		shape := nodeShape(n, pal)
		r.shapes = append(r.shapes, shape)
		objs = append(objs, shape)
		for _, l := range render.Labels(n) {
			objs = append(objs, labelText(l, pal))
		}
		return true
	})
	if box, ok := r.c.OverlayRect(); ok {
		r.overlay = outline(box, pal.Selection.RGBA(), pal.SelectionBG.RGBA())
		objs = append(objs, r.overlay)
	}
	switch {
	case r.c.gesture == gestureMove:
		r.ghost = outline(r.c.move.ghost, pal.Selection.RGBA(), color.Transparent)
		objs = append(objs, r.ghost)
	case r.c.preview != nil:
		r.ghost = outline(*r.c.preview, pal.Selection.RGBA(), pal.SelectionBG.RGBA())
		objs = append(objs, r.ghost)
	}
	r.objects = objs
	r.Layout(r.c.Size())
}

func place(o fyne.CanvasObject, rect geom.Rect) {
	o.Move(toPos(rect.Min()))
	o.Resize(fyne.NewSize(rect.W, rect.H))
}

func nodeShape(n *render.Node, pal render.Palette) *canvas.Rectangle {
	fill := pal.Field
	if n.Kind == form.KindButton {
		fill = pal.Button
	}
	rect := canvas.NewRectangle(fill.RGBA())
	if n.Kind != form.KindButton {
		rect.StrokeColor = pal.Border.RGBA()
		rect.StrokeWidth = 1
	}
	rect.CornerRadius = render.CornerRadius
	place(rect, n.Abs)
	return rect
}

func outline(box geom.Rect, stroke, fill color.Color) *canvas.Rectangle {
	rect := canvas.NewRectangle(fill)
	rect.StrokeColor = stroke
	rect.StrokeWidth = 1
	place(rect, box)
	return rect
}

// labelText converts a baseline-anchored label into a top-left positioned canvas.Text.
func labelText(l render.Label, pal render.Palette) *canvas.Text {
	col := pal.Text
	switch {
	case l.Inverse:
		col = pal.ButtonText
	case l.Muted:
		col = pal.Muted
	}
	t := canvas.NewText(l.Text, col.RGBA())
	t.TextSize = l.Size
	t.TextStyle = fyne.TextStyle{Bold: l.Bold}
	x := l.At.X
	if l.Centered {
		x -= fyne.MeasureText(l.Text, l.Size, t.TextStyle).Width / 2
	}
	t.Resize(t.MinSize())
	t.Move(fyne.NewPos(x, l.At.Y-l.Size))
	return t
}
