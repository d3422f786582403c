/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export writes a sketch snapshot in one of the supported output formats.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"formsketch/internal/config"
	"formsketch/internal/form"
	"formsketch/internal/render"
	"formsketch/internal/render/pdf"
	"formsketch/internal/render/raster"
	"formsketch/internal/render/svg"
	"formsketch/internal/render/text"
)

// Format names an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatText, FormatJSON}

// ParseFormat accepts a format name case-insensitively. "txt" is an alias for text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatPDF, FormatText, FormatJSON:
		return f, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format: %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// FormatForPath derives the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// Options controls a single export.
//
// DPI semantics:
//   - DPI > 0 wins.
//   - Otherwise the preset decides: web renders at 96 dpi, print at 300 dpi.
//
// Width/Height are the minimum canvas in sketch units; drawings grow to fit.
type Options struct {
	Format  Format
	Preset  PresetName
	DPI     int
	Width   float32
	Height  float32
	Title   string
	NoColor bool
}

// OptionsFromConfig maps the canvas and export sections of cfg. On an unknown
// export.format the error is returned with every other field still filled in.
func OptionsFromConfig(cfg config.AppConfig) (Options, error) {
	opts := Options{
		DPI:    cfg.Export.DPI,
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
	}
	f, err := ParseFormat(cfg.Export.Format)
	if err != nil {
		return opts, err
	}
	opts.Format = f
	return opts, nil
}

func (o Options) dpi() int {
	if o.DPI > 0 {
		return o.DPI
	}
	if o.Preset == PresetPrint {
		return 300
	}
	return 96
}

// Write renders elements to w in opt.Format.
func Write(w io.Writer, elements []form.Element, opt Options) error {
	t := render.Build(elements)
	t.FitOrigin()
	switch opt.Format {
	case FormatSVG:
		return svg.Write(w, t, svg.Options{Width: opt.Width, Height: opt.Height, DPI: opt.dpi()})
	case FormatPNG:
		return raster.Encode(w, t, raster.Options{Width: opt.Width, Height: opt.Height, DPI: opt.dpi()})
	case FormatPDF:
		return pdf.Write(w, t, pdf.Options{Width: opt.Width, Height: opt.Height, Title: opt.Title})
	case FormatText:
		_, err := io.WriteString(w, text.Render(t, text.Options{NoColor: opt.NoColor})+"\n")
		return err
	case FormatJSON:
		b, err := form.MarshalJSON(elements)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case "":
		return fmt.Errorf("export format not set")
	}
	return fmt.Errorf("unknown format: %q", opt.Format)
}

// WriteFile renders elements to path. An empty opt.Format is derived from the extension.
// The parent directory is created when missing.
func WriteFile(path string, elements []form.Element, opt Options) (err error) {
	if opt.Format == "" {
		f, ok := FormatForPath(path)
		if !ok {
			return fmt.Errorf("cannot infer export format from %q", path)
		}
		opt.Format = f
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := Write(f, elements, opt); err != nil {
		return fmt.Errorf("export %s: %w", opt.Format, err)
	}
	return nil
}
