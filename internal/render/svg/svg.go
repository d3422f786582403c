/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package svg writes a render tree as an SVG document.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"

	"formsketch/internal/form"
	"formsketch/internal/render"
)

// Options controls SVG output.
// - Width/Height set the minimum canvas in sketch units; the drawing grows to fit.
// - DPI scales the width/height attributes relative to 96 dpi; the viewBox stays in sketch units.
type Options struct {
	Width   float32
	Height  float32
	DPI     int
	Palette *render.Palette
}

func (o Options) palette() render.Palette {
	if o.Palette != nil {
		return *o.Palette
	}
	return render.DefaultPalette
}

func (o Options) scale() float64 {
	if o.DPI <= 0 {
		return 1
	}
	return float64(o.DPI) / 96.0
}

// ElementID is the XML id of an element's group. Element ids may start with a
// digit, which XML names cannot.
func ElementID(id string) string { return "el-" + id }

// Write renders t to w.
func Write(w io.Writer, t *render.Tree, opt Options) error {
	if t == nil {
		return fmt.Errorf("render tree is nil")
	}
	pal := opt.palette()
	size := t.CanvasSize(opt.Width, opt.Height)
	vw, vh := px(size.W), px(size.H)
	s := opt.scale()

	canvas := svgo.New(w)
	canvas.Startview(int(math.Round(float64(vw)*s)), int(math.Round(float64(vh)*s)), 0, 0, vw, vh)
	canvas.Rect(0, 0, vw, vh, "fill:"+pal.Canvas.Hex())

	var draw func(nodes []*render.Node)
	draw = func(nodes []*render.Node) {
		for _, n := range nodes {
			canvas.Gid(ElementID(n.ID))
			shape(canvas, n, pal)
			for _, l := range render.Labels(n) {
				canvas.Text(px(l.At.X), px(l.At.Y), l.Text, textStyle(l, pal))
			}
			draw(n.Children)
			canvas.Gend()
		}
	}
	draw(t.Roots)
	canvas.End()
	return nil
}

// Bytes renders t into memory.
func Bytes(t *render.Tree, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shape(c *svgo.SVG, n *render.Node, pal render.Palette) {
	r := n.Abs
	x, y, w, h := px(r.X), px(r.Y), px(r.W), px(r.H)
	rad := px(render.CornerRadius)
	switch n.Kind {
	case form.KindButton:
		c.Roundrect(x, y, w, h, rad, rad, "fill:"+pal.Button.Hex())
	case form.KindCard:
		c.Roundrect(x, y, w, h, rad*2, rad*2, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", pal.Field.Hex(), pal.Border.Hex()))
	default:
		c.Roundrect(x, y, w, h, rad, rad, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", pal.Field.Hex(), pal.Border.Hex()))
	}
}

func textStyle(l render.Label, pal render.Palette) string {
	col := pal.Text
	switch {
	case l.Inverse:
		col = pal.ButtonText
	case l.Muted:
		col = pal.Muted
	}
	st := fmt.Sprintf("font-family:Helvetica, Arial, sans-serif;font-size:%gpx;fill:%s", l.Size, col.Hex())
	if l.Bold {
		st += ";font-weight:600"
	}
	if l.Centered {
		st += ";text-anchor:middle"
	}
	return st
}

func px(v float32) int { return int(math.Round(float64(v))) }
