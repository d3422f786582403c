/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package pdf writes a render tree as a single-page vector PDF.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"formsketch/internal/form"
	"formsketch/internal/render"
	"formsketch/internal/version"
)

// Options controls PDF output. Sketch units map 1:1 to points.
type Options struct {
	Width   float32
	Height  float32
	Title   string
	Palette *render.Palette
}

// Write renders t to w.
func Write(w io.Writer, t *render.Tree, opt Options) error {
	if t == nil {
		return fmt.Errorf("render tree is nil")
	}
	pal := render.DefaultPalette
	if opt.Palette != nil {
		pal = *opt.Palette
	}
	size := t.CanvasSize(opt.Width, opt.Height)
	pw, ph := float64(size.W), float64(size.H)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	title := opt.Title
	if title == "" {
		title = "Form sketch"
	}
	pdf.SetTitle(title, false)
	pdf.SetCreator("formsketch "+version.Version, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pw, Ht: ph})

	setFillColor(pdf, pal.Canvas)
	pdf.Rect(0, 0, pw, ph, "F")
	pdf.SetLineWidth(1)

	t.Walk(func(n *render.Node) bool {
		r := n.Abs
		x, y, w, h := float64(r.X), float64(r.Y), float64(r.W), float64(r.H)
		rad := float64(render.CornerRadius)
		switch n.Kind {
		case form.KindButton:
			setFillColor(pdf, pal.Button)
			pdf.RoundedRect(x, y, w, h, rad, "1234", "F")
		case form.KindCard:
			setFillColor(pdf, pal.Field)
			setDrawColor(pdf, pal.Border)
			pdf.RoundedRect(x, y, w, h, 2*rad, "1234", "FD")
		default:
			setFillColor(pdf, pal.Field)
			setDrawColor(pdf, pal.Border)
			pdf.RoundedRect(x, y, w, h, rad, "1234", "FD")
		}
		for _, l := range render.Labels(n) {
			drawLabel(pdf, l, pal)
		}
		return true
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawLabel(pdf *gofpdf.Fpdf, l render.Label, pal render.Palette) {
	style := ""
	if l.Bold {
		style = "B"
	}
	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", style, float64(l.Size))
	col := pal.Text
	switch {
	case l.Inverse:
		col = pal.ButtonText
	case l.Muted:
		col = pal.Muted
	}
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
	x := float64(l.At.X)
	if l.Centered {
		x -= pdf.GetStringWidth(l.Text) / 2
	}
	pdf.Text(x, float64(l.At.Y), l.Text)
}

func setDrawColor(pdf *gofpdf.Fpdf, c render.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c render.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
