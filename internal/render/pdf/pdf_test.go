/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package pdf

import (
	"bytes"
	"testing"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/render"
)

func TestWriteProducesPDF(t *testing.T) {
	child := form.New(form.KindTextArea, "ta", "c", geom.R(0, 0, 300, 200))
	card := form.New(form.KindCard, "c", "", geom.R(10, 10, 400, 320)).(form.Card).WithChild(child)
	btn := form.New(form.KindButton, "b", "", geom.R(500, 20, 100, 40))

	var buf bytes.Buffer
	if err := Write(&buf, render.Build([]form.Element{card, btn}), Options{Width: 1100, Height: 700, Title: "demo"}); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("missing PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
		t.Fatalf("missing PDF trailer")
	}
}

func TestWriteEmptyTree(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, render.Build(nil), Options{}); err != nil {
		t.Fatalf("empty sketch should still export: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output")
	}
}

func TestWriteNilTree(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, Options{}); err == nil {
		t.Fatalf("expected error for nil tree")
	}
}
