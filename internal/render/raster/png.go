/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package raster paints a render tree into a PNG.
//
// Shapes go through the SVG backend and are rasterized with oksvg; oksvg has no
// text support, so labels are drawn afterwards with a fixed bitmap face.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"formsketch/internal/render"
	svgout "formsketch/internal/render/svg"
)

// Options controls PNG output.
// - DPI: when > 0 scales the pixel size relative to 96 dpi
// - Width/Height: minimum canvas in sketch units
type Options struct {
	Width   float32
	Height  float32
	DPI     int
	Palette *render.Palette
}

// Image rasterizes t.
func Image(t *render.Tree, opt Options) (*image.RGBA, error) {
	if t == nil {
		return nil, fmt.Errorf("render tree is nil")
	}
	pal := render.DefaultPalette
	if opt.Palette != nil {
		pal = *opt.Palette
	}
	doc, err := svgout.Bytes(t, svgout.Options{Width: opt.Width, Height: opt.Height, Palette: &pal})
	if err != nil {
		return nil, fmt.Errorf("build svg: %w", err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	scale := 1.0
	if opt.DPI > 0 {
		scale = float64(opt.DPI) / 96.0
	}
	size := t.CanvasSize(opt.Width, opt.Height)
	w := int(math.Round(float64(size.W) * scale))
	h := int(math.Round(float64(size.H) * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	t.Walk(func(n *render.Node) bool {
		for _, l := range render.Labels(n) {
			drawLabel(img, l, scale, pal)
		}
		return true
	})
	return img, nil
}

// Encode writes t as PNG to w.
func Encode(w io.Writer, t *render.Tree, opt Options) error {
	img, err := Image(t, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawLabel(img *image.RGBA, l render.Label, scale float64, pal render.Palette) {
	col := pal.Text
	switch {
	case l.Inverse:
		col = pal.ButtonText
	case l.Muted:
		col = pal.Muted
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col.RGBA()), Face: basicfont.Face7x13}
	x := float64(l.At.X) * scale
	if l.Centered {
		x -= float64(d.MeasureString(l.Text).Round()) / 2
	}
	y := float64(l.At.Y) * scale
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(y)))
	d.DrawString(l.Text)
}
