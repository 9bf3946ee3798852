// Copyright 2025 The Unilog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import "sync"

// ErrorReporter is invoked when a SourceError is encountered. An error
// surfaces to the nearest file-level driver and stops that file;
// reporters do not get a "keep going, accumulate more errors" option,
// since a failed statement leaves the stream in a failed state the
// caller must treat as terminal for that file.
type ErrorReporter func(*SourceError)

// Handler centralizes "have we already failed for this file"
// bookkeeping.
type Handler struct {
	mu       sync.Mutex
	reporter ErrorReporter
	err      *SourceError
}

// NewHandler builds a Handler that forwards errors to fn. fn may be
// nil, in which case errors are recorded but not otherwise reported.
func NewHandler(fn ErrorReporter) *Handler {
	return &Handler{reporter: fn}
}

// Report records err as the first error seen by this handler and
// forwards it to the configured ErrorReporter, if any.
func (h *Handler) Report(err *SourceError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err == nil {
		h.err = err
	}
	if h.reporter != nil {
		h.reporter(err)
	}
}

// Err returns the first error reported, or nil if none was.
func (h *Handler) Err() *SourceError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Failed reports whether this handler has seen an error.
func (h *Handler) Failed() bool {
	return h.Err() != nil
}
