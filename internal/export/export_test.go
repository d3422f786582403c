/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsketch/internal/config"
	"formsketch/internal/form"
	"formsketch/internal/geom"
)

func sample() []form.Element {
	card := form.New(form.KindCard, "card-1", "", geom.R(10, 10, 300, 250)).(form.Card)
	card = card.WithChild(form.New(form.KindButton, "btn-1", "card-1", geom.R(0, 0, 100, 40)))
	return []form.Element{card, form.New(form.KindTextInput, "in-1", "", geom.R(400, 20, 200, 35))}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": FormatSVG, " PNG ": FormatPNG, "pdf": FormatPDF, "txt": FormatText, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("bmp")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("/tmp/out/Sketch.PDF")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)
	f, ok = FormatForPath("notes.txt")
	assert.True(t, ok)
	assert.Equal(t, FormatText, f)
	_, ok = FormatForPath("noext")
	assert.False(t, ok)
	assert.Equal(t, ".txt", FormatText.Ext())
	assert.Equal(t, ".svg", FormatSVG.Ext())
}

func TestWriteEveryFormat(t *testing.T) {
	signatures := map[Format][]byte{
		FormatSVG:  []byte("<svg"),
		FormatPNG:  []byte("\x89PNG"),
		FormatPDF:  []byte("%PDF"),
		FormatText: []byte("Sketch"),
	}
	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sample(), Options{Format: f, NoColor: true}), f)
		if sig, ok := signatures[f]; ok {
			assert.True(t, bytes.Contains(buf.Bytes(), sig), "format %s missing %q", f, sig)
		}
	}
}

func TestWriteJSONKeepsNesting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), Options{Format: FormatJSON}))
	var docs []form.Doc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	back, err := form.FromDocs(docs)
	require.NoError(t, err)
	assert.Equal(t, 3, form.Count(back))
}

func TestWriteRejectsMissingFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sample(), Options{}))
	assert.Error(t, Write(&buf, sample(), Options{Format: "gif"}))
}

func TestPresetDPI(t *testing.T) {
	assert.Equal(t, 96, Options{Preset: PresetWeb}.dpi())
	assert.Equal(t, 300, Options{Preset: PresetPrint}.dpi())
	assert.Equal(t, 150, Options{Preset: PresetPrint, DPI: 150}.dpi())
}

func TestWriteFileInfersFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sketch.svg")
	require.NoError(t, WriteFile(path, sample(), Options{}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "sketch"), sample(), Options{}))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	opt, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, opt.Format)
	assert.Equal(t, 96, opt.DPI)
	assert.Equal(t, float32(1100), opt.Width)

	cfg.Export.Format = "tiff"
	opt, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
	assert.Equal(t, 96, opt.DPI, "other fields survive a bad format")
	assert.Equal(t, float32(700), opt.Height)
}

func TestConfigFormatsAreParseable(t *testing.T) {
	for _, name := range config.ExportFormats {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}
}

func TestWriteSVGKeepsElementsPastTopLeftEdge(t *testing.T) {
	btn := form.New(form.KindButton, "btn-1", "", geom.R(-50, -30, 100, 40))
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []form.Element{btn}, Options{Format: FormatSVG}))
	s := buf.String()
	// shifted to (24,24): the canvas covers 24+100+24 by 24+40+24
	assert.Contains(t, s, `viewBox="0 0 148 88"`)
	assert.NotContains(t, s, `x="-`)
}
