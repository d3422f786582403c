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
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"formsketch/internal/geom"
	"formsketch/internal/render"
	"formsketch/internal/session"
	"formsketch/internal/suggest"
)

const tileWidth float32 = 150

// templateTile is a menu entry that is dragged onto the canvas to place its template.
type templateTile struct {
	widget.BaseWidget

	tpl     suggest.Template
	canvas  *SketchCanvas
	last    fyne.Position
	dragged bool
}

func newTemplateTile(tpl suggest.Template, c *SketchCanvas) *templateTile {
	t := &templateTile{tpl: tpl, canvas: c}
	t.ExtendBaseWidget(t)
	return t
}

func (t *templateTile) CreateRenderer() fyne.WidgetRenderer {
	pal := render.DefaultPalette
	bg := canvas.NewRectangle(pal.Field.RGBA())
	bg.StrokeColor = pal.Border.RGBA()
	bg.StrokeWidth = 1
	bg.CornerRadius = render.CornerRadius
	label := widget.NewLabel(t.tpl.Label)
	return widget.NewSimpleRenderer(container.NewStack(bg, label))
}

func (t *templateTile) MinSize() fyne.Size {
	t.ExtendBaseWidget(t)
	return fyne.NewSize(tileWidth, t.BaseWidget.MinSize().Height)
}

// canvasPoint maps a position relative to the tile into sketch canvas coordinates.
func (t *templateTile) canvasPoint(p fyne.Position) geom.Pt {
	d := fyne.CurrentApp().Driver()
	abs := d.AbsolutePositionForObject(t).Add(p)
	return toPt(abs.Subtract(d.AbsolutePositionForObject(t.canvas)))
}

func (t *templateTile) Dragged(e *fyne.DragEvent) {
	t.last = e.Position
	t.dragged = true
	t.canvas.PreviewDrop(t.tpl.Kind, t.canvasPoint(e.Position))
}

func (t *templateTile) DragEnd() {
	if !t.dragged {
		return
	}
	t.dragged = false
	t.canvas.Drop(t.tpl.Payload(), t.canvasPoint(t.last))
}

// newMenuPanel lays out one tile per offered template under a short heading.
func newMenuPanel(templates []suggest.Template, c *SketchCanvas) fyne.CanvasObject {
	items := []fyne.CanvasObject{widget.NewLabelWithStyle("Drag to place", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})}
	for _, tpl := range templates {
		items = append(items, newTemplateTile(tpl, c))
	}
	return widget.NewCard("", "", container.NewVBox(items...))
}

// showMenu replaces the content of layer with the panel for m, or empties it when m is hidden.
func showMenu(layer *fyne.Container, m session.MenuState, c *SketchCanvas) {
	layer.Objects = nil
	if m.Visible {
		panel := newMenuPanel(m.Templates, c)
		panel.Resize(panel.MinSize())
		panel.Move(toPos(c.MenuAnchor(m)))
		layer.Objects = []fyne.CanvasObject{panel}
	}
	layer.Refresh()
}
