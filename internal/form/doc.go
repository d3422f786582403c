/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package form

import (
	"encoding/json"
	"fmt"

	"formsketch/internal/geom"
)

// Doc is the JSON shape of an element, used by the json exporter and crash reports.
type Doc struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Geometry Rect   `json:"geometry"`
	ParentID string `json:"parentId,omitempty"`
	Children []Doc  `json:"children"`
}

// Rect mirrors geom.Rect with explicit JSON names.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ToDocs converts a list of elements into their JSON shape. Leaves get an empty children array.
func ToDocs(list []Element) []Doc {
	out := make([]Doc, 0, len(list))
	for _, e := range list {
		b := e.Info()
		out = append(out, Doc{
			ID:       b.ID,
			Kind:     e.Kind(),
			Geometry: Rect{X: b.Geometry.X, Y: b.Geometry.Y, Width: b.Geometry.W, Height: b.Geometry.H},
			ParentID: b.ParentID,
			Children: ToDocs(Children(e)),
		})
	}
	return out
}

// FromDocs rebuilds elements from their JSON shape. Children of leaf kinds are rejected.
func FromDocs(docs []Doc) ([]Element, error) {
	out := make([]Element, 0, len(docs))
	for _, d := range docs {
		r := geom.R(d.Geometry.X, d.Geometry.Y, d.Geometry.Width, d.Geometry.Height)
		e := New(d.Kind, d.ID, d.ParentID, r)
		if e == nil {
			return nil, fmt.Errorf("element %s: unknown kind %q", d.ID, d.Kind)
		}
		if len(d.Children) > 0 {
			c, ok := e.(Card)
			if !ok {
				return nil, fmt.Errorf("element %s: kind %s cannot hold children", d.ID, d.Kind)
			}
			kids, err := FromDocs(d.Children)
			if err != nil {
				return nil, err
			}
			e = c.WithChildren(kids)
		}
		out = append(out, e)
	}
	return out, nil
}

// MarshalJSON renders the list as indented JSON.
func MarshalJSON(list []Element) ([]byte, error) {
	return json.MarshalIndent(ToDocs(list), "", "  ")
}
