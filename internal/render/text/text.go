/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package text prints a render tree as an outline for terminals.
package text

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"formsketch/internal/geom"
	"formsketch/internal/render"
)

// Options controls the outline.
type Options struct {
	// NoColor disables lipgloss styling.
	NoColor bool
	// FullIDs prints complete element ids instead of the first eight characters.
	FullIDs bool
}

var (
	rootStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8A2BE2"))
	enumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	kindStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// coordPlaces is the precision of coordinates in the outline.
const coordPlaces = 2

func round(v float32) float32 { return geom.FloatRound(v, coordPlaces) }

// Render returns the outline of t.
func Render(t *render.Tree, opt Options) string {
	if t == nil {
		return ""
	}
	style := func(s lipgloss.Style, v string) string {
		if opt.NoColor {
			return v
		}
		return s.Render(v)
	}
	line := func(n *render.Node) string {
		id := n.ID
		if !opt.FullIDs && len(id) > 8 {
			id = id[:8]
		}
		r := n.Local
		return fmt.Sprintf("%s %s %s", style(kindStyle, n.Kind.Label()), style(mutedStyle, id),
			fmt.Sprintf("@%g,%g %gx%g", round(r.X), round(r.Y), round(r.W), round(r.H)))
	}

	var attach func(parent *tree.Tree, nodes []*render.Node)
	attach = func(parent *tree.Tree, nodes []*render.Node) {
		for _, n := range nodes {
			if len(n.Children) == 0 {
				parent.Child(line(n))
				continue
			}
			sub := tree.Root(line(n))
			attach(sub, n.Children)
			parent.Child(sub)
		}
	}

	root := tree.Root(fmt.Sprintf("Sketch (%d elements)", t.Len()))
	if !opt.NoColor {
		root.RootStyle(rootStyle).EnumeratorStyle(enumStyle)
	}
	attach(root, t.Roots)
	return root.String()
}
