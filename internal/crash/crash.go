/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"formsketch/internal/form"
	applog "formsketch/internal/log"
	"formsketch/internal/placement"
	"formsketch/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Sketch is anything that can hand over the current element list (a session).
type Sketch interface {
	Elements() placement.Snapshot
}

// EnvCrashDir overrides where reports are written (default: the OS temp dir).
const EnvCrashDir = "FSK_CRASH_DIR"

var (
	mu      sync.Mutex
	current Sketch
)

// Register makes s the sketch dumped next to a crash report. Pass nil to clear it.
func Register(s Sketch) {
	mu.Lock()
	defer mu.Unlock()
	current = s
}

func registered() Sketch {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file and a JSON dump of the registered sketch, then exits with code 2.
//
// Usage: defer crash.Recover()
func Recover() {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		dir := reportDir()
		stamp := time.Now().Format("20060102-150405")
		reportPath, err := writeReport(dir, stamp, r, stack)
		if err != nil {
			l.Error("crash report failed", slog.Any("err", err))
		}
		if s := registered(); s != nil {
			if path, err := writeSketch(dir, stamp, s); err != nil {
				l.Error("sketch dump failed", slog.Any("err", err))
			} else {
				l.Info("sketch dump written", slog.String("path", path))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

func reportDir() string {
	if d := strings.TrimSpace(os.Getenv(EnvCrashDir)); d != "" {
		if err := os.MkdirAll(d, 0o755); err == nil {
			return d
		}
	}
	return os.TempDir()
}

func writeReport(dir, stamp string, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("formsketch-crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Form Sketch Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s := registered(); s != nil {
		_, _ = fmt.Fprintf(&buf, "Elements: %d\n", form.Count(s.Elements()))
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

func writeSketch(dir, stamp string, s Sketch) (string, error) {
	data, err := form.MarshalJSON(s.Elements())
	if err != nil {
		return "", fmt.Errorf("encode sketch: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("formsketch-crash-%s.json", stamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write sketch dump: %w", err)
	}
	return path, nil
}
