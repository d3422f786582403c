/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/render"
)

func TestRenderOutline(t *testing.T) {
	child := form.New(form.KindTextInput, "0190aaaa-child", "0190bbbb-card", geom.R(0, 0, 200, 40))
	card := form.New(form.KindCard, "0190bbbb-card", "", geom.R(10, 10, 300, 250)).(form.Card).WithChild(child)
	btn := form.New(form.KindButton, "0190cccc-btn", "", geom.R(400, 300, 100, 40))

	out := Render(render.Build([]form.Element{card, btn}), Options{NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "Sketch (3 elements)", lines[0])
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], "Card 0190bbbb @10,10 300x250")
	assert.Contains(t, lines[2], "Input 0190aaaa @0,0 200x40")
	assert.Contains(t, lines[3], "Button 0190cccc @400,300 100x40")
	assert.True(t, strings.HasPrefix(lines[2], "│"), "child is indented under the card: %q", lines[2])
}

func TestRenderFullIDs(t *testing.T) {
	btn := form.New(form.KindButton, "0190cccc-btn", "", geom.R(0, 0, 100, 40))
	out := Render(render.Build([]form.Element{btn}), Options{NoColor: true, FullIDs: true})
	assert.Contains(t, out, "0190cccc-btn")
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "Sketch (0 elements)", strings.TrimSpace(Render(render.Build(nil), Options{NoColor: true})))
	assert.Empty(t, Render(nil, Options{}))
}

func TestRenderRoundsCoordinates(t *testing.T) {
	in := form.New(form.KindTextInput, "in-1", "", geom.R(10.123456, 20.999, 200.5, 40))
	out := Render(render.Build([]form.Element{in}), Options{NoColor: true})
	assert.Contains(t, out, "@10.12,21 200.5x40")
}
