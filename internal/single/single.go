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

// Package single turns the single-threaded execution model into a
// runtime-checked invariant instead of a comment: the executor, the
// fact store, and the process-global working directory are all
// mutated without synchronization, which is only sound if every call
// into them comes from the same goroutine.
package single

import (
	"fmt"
	"sync"

	"github.com/petermattis/goid"
)

// Guard records the goroutine that first called Check and panics if a
// later call arrives from a different one. The zero Guard is ready to
// use.
type Guard struct {
	mu  sync.Mutex
	id  int64
	set bool
}

// Check asserts that the calling goroutine is the same one that made
// the first call to Check on g. It is meant to be called at the top
// of every exported entry point into the executor.
func (g *Guard) Check() {
	g.mu.Lock()
	defer g.mu.Unlock()

	current := goid.Get()
	if !g.set {
		g.id = current
		g.set = true
		return
	}
	if current != g.id {
		panic(fmt.Sprintf("single: called from goroutine %d, expected %d — unilog's executor, "+
			"fact store, and working directory are not safe for concurrent use", current, g.id))
	}
}
