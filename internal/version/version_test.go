/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringContainsParts(t *testing.T) {
	oldV, oldC := Version, Commit
	Version, Commit = "9.9.9", "deadbeef"
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	s := String()
	if !strings.Contains(s, "9.9.9") || !strings.Contains(s, "deadbeef") {
		t.Fatalf("unexpected version string: %q", s)
	}
}
