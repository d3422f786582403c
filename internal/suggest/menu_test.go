/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsketch/internal/form"
	"formsketch/internal/geom"
)

func kinds(ts []Template) []form.Kind {
	out := make([]form.Kind, len(ts))
	for i, t := range ts {
		out[i] = t.Kind
	}
	return out
}

func TestOfferedByHeight(t *testing.T) {
	assert.Equal(t, []form.Kind{form.KindCard, form.KindTextArea}, kinds(Offered(geom.R(0, 0, 200, 80))))
	assert.Equal(t, []form.Kind{form.KindButton, form.KindTextInput}, kinds(Offered(geom.R(0, 0, 200, 30))))
	assert.Equal(t, []form.Kind{form.KindButton, form.KindTextInput}, kinds(Offered(geom.R(0, 0, 200, 50))), "50 is not tall")
}

func TestTemplateCarriesDefaultSize(t *testing.T) {
	ts := Offered(geom.R(0, 0, 100, 30))
	assert.Equal(t, Template{Kind: form.KindButton, Label: "Button", Size: geom.Size{W: 100, H: 40}}, ts[0])
}

func TestMenuOpenRespectsThreshold(t *testing.T) {
	m := NewMenu(20)
	assert.False(t, m.Open(geom.P(0, 0), geom.R(0, 0, 10, 100)))
	assert.False(t, m.Visible())

	box := geom.R(10, 10, 200, 80)
	require.True(t, m.Open(AnchorFor(box), box))
	assert.True(t, m.Visible())
	assert.Equal(t, geom.P(218, 10), m.Anchor())
	assert.Equal(t, box, m.Box())
	assert.Len(t, m.Templates(), 2)

	m.Close()
	assert.False(t, m.Visible())
	assert.Empty(t, m.Templates())
}

func TestPayloadRoundTrip(t *testing.T) {
	for _, k := range form.Kinds {
		got, err := ParsePayload(templateOf(k).Payload())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParsePayload("button")
	assert.Error(t, err)
	_, err = ParsePayload(payloadPrefix + "slider")
	assert.Error(t, err)
}
