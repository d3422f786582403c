/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package placement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsketch/internal/form"
	"formsketch/internal/geom"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("el-%d", n)
	}
}

func newStore() *Store { return New(WithIDFunc(seqIDs())) }

func TestCommitClassifiesByHeight(t *testing.T) {
	s := newStore()

	e, ok := s.Commit(geom.R(10, 10, 200, 35), "")
	require.True(t, ok)
	assert.Equal(t, form.TextInput{Base: form.Base{ID: "el-1", Geometry: geom.R(10, 10, 200, 35)}}, e)

	e, ok = s.Commit(geom.R(10, 10, 300, 250), "")
	require.True(t, ok)
	card, isCard := e.(form.Card)
	require.True(t, isCard)
	assert.Equal(t, geom.R(10, 10, 300, 250), card.Geometry)
	assert.Empty(t, card.Children)
	assert.Equal(t, 2, s.Len())
}

func TestClassifyBoundary(t *testing.T) {
	s := newStore()
	assert.Equal(t, form.KindTextInput, s.Classify(geom.R(0, 0, 100, 40)))
	assert.Equal(t, form.KindCard, s.Classify(geom.R(0, 0, 100, 41)))
}

func TestCommitRejectsShortDrags(t *testing.T) {
	s := newStore()
	for _, box := range []geom.Rect{
		geom.R(0, 0, 19, 100),
		geom.R(0, 0, 100, 19),
		geom.R(0, 0, 0, 0),
	} {
		_, ok := s.Commit(box, "")
		assert.False(t, ok, "box %+v", box)
	}
	assert.Zero(t, s.Len())

	_, ok := s.Commit(geom.R(0, 0, 20, 20), "")
	assert.True(t, ok, "threshold is inclusive")
}

func TestWithMinDrag(t *testing.T) {
	s := New(WithMinDrag(50), WithIDFunc(seqIDs()))
	assert.Equal(t, float32(50), s.MinDrag())
	_, ok := s.Commit(geom.R(0, 0, 40, 60), "")
	assert.False(t, ok)

	assert.Equal(t, DefaultMinDrag, New(WithMinDrag(-1)).MinDrag())
}

func TestCommitNestsIntoCard(t *testing.T) {
	s := newStore()
	parent, _ := s.Commit(geom.R(0, 0, 300, 250), "")
	before := s.Elements()

	child, ok := s.Commit(geom.R(5, 5, 100, 30), parent.Info().ID)
	require.True(t, ok)
	assert.Equal(t, parent.Info().ID, child.Info().ParentID)

	top := s.TopLevel()
	require.Len(t, top, 1, "children never appear at top level")
	assert.Equal(t, []form.Element{child}, form.Children(top[0]))
	assert.Empty(t, form.Children(before[0]), "earlier snapshot is untouched")
}

func TestCommitNestedTwoLevels(t *testing.T) {
	s := newStore()
	outer, _ := s.Commit(geom.R(0, 0, 400, 300), "")
	inner, ok := s.Commit(geom.R(10, 10, 200, 150), outer.Info().ID)
	require.True(t, ok)

	leaf, ok := s.Commit(geom.R(5, 5, 50, 30), inner.Info().ID)
	require.True(t, ok)

	found, ok := s.Find(leaf.Info().ID)
	require.True(t, ok)
	assert.Equal(t, inner.Info().ID, found.Info().ParentID)
	assert.Equal(t, 3, s.Len())
}

func TestCommitIntoUnknownOrLeafContainerFails(t *testing.T) {
	s := newStore()
	leaf, _ := s.Commit(geom.R(0, 0, 100, 30), "")
	snap := s.Elements()

	_, ok := s.Commit(geom.R(0, 0, 100, 30), "missing")
	assert.False(t, ok)
	_, ok = s.Commit(geom.R(0, 0, 100, 30), leaf.Info().ID)
	assert.False(t, ok)
	assert.Equal(t, snap, s.Elements())
}

func TestSpawnUsesDefaultSizes(t *testing.T) {
	s := newStore()
	e, ok := s.Spawn(form.KindButton, geom.P(400, 300), "")
	require.True(t, ok)
	assert.Equal(t, form.Button{Base: form.Base{ID: "el-1", Geometry: geom.R(400, 300, 100, 40)}}, e)

	cases := map[form.Kind]geom.Size{
		form.KindTextInput: {W: 200, H: 40},
		form.KindTextArea:  {W: 300, H: 200},
		form.KindCard:      {W: 300, H: 200},
	}
	for k, want := range cases {
		e, ok := s.Spawn(k, geom.P(0, 0), "")
		require.True(t, ok)
		assert.Equal(t, want, e.Info().Geometry.Size(), string(k))
	}
}

func TestSpawnIntoCard(t *testing.T) {
	s := newStore()
	card, _ := s.Spawn(form.KindCard, geom.P(0, 0), "")
	e, ok := s.Spawn(form.KindTextArea, geom.P(12, 8), card.Info().ID)
	require.True(t, ok)
	assert.Equal(t, card.Info().ID, e.Info().ParentID)
	assert.Len(t, s.TopLevel(), 1)

	_, ok = s.Spawn(form.KindButton, geom.P(0, 0), e.Info().ID)
	assert.False(t, ok, "textarea cannot hold children")
	_, ok = s.Spawn(form.Kind("slider"), geom.P(0, 0), "")
	assert.False(t, ok)
}

func TestRelocateKeepsEverythingButOrigin(t *testing.T) {
	s := newStore()
	card, _ := s.Commit(geom.R(0, 0, 300, 250), "")
	child, _ := s.Commit(geom.R(5, 5, 100, 30), card.Info().ID)

	require.True(t, s.Relocate(card.Info().ID, 50, 60))
	moved, _ := s.Find(card.Info().ID)
	assert.Equal(t, geom.R(50, 60, 300, 250), moved.Info().Geometry)
	assert.Equal(t, []form.Element{child}, form.Children(moved))
}

func TestRelocateNested(t *testing.T) {
	s := newStore()
	card, _ := s.Commit(geom.R(0, 0, 300, 250), "")
	child, _ := s.Commit(geom.R(5, 5, 100, 30), card.Info().ID)
	before := s.Elements()

	require.True(t, s.Relocate(child.Info().ID, 20, 40))
	moved, _ := s.Find(child.Info().ID)
	assert.Equal(t, geom.R(20, 40, 100, 30), moved.Info().Geometry)
	assert.Equal(t, card.Info().ID, moved.Info().ParentID)
	assert.Equal(t, geom.R(5, 5, 100, 30), form.Children(before[0])[0].Info().Geometry)
}

func TestRelocateNoChange(t *testing.T) {
	s := newStore()
	e, _ := s.Commit(geom.R(10, 10, 100, 30), "")
	assert.False(t, s.Relocate("nope", 1, 1))
	assert.False(t, s.Relocate(e.Info().ID, 10, 10))
}

func TestRestore(t *testing.T) {
	s := newStore()
	s.Commit(geom.R(0, 0, 100, 30), "")
	snap := s.Elements()
	s.Commit(geom.R(0, 0, 100, 30), "")
	require.Equal(t, 2, s.Len())

	s.Restore(snap)
	assert.Equal(t, 1, s.Len())
	s.Restore(nil)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.TopLevel())
}
