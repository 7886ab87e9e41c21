// Copyright 2024, alexa2anylist contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package primary

// PushChannel is a single-slot "invalidated since last observed" signal.
// A background task (websocket listener, webhook handler) calls Signal
// whenever it learns the remote list changed; Snapshot implementations
// call Drain to decide whether to bypass a cache. Signal never blocks and
// coalesces bursts into one pending invalidation, matching the single-
// producer/single-consumer semantics the core relies on.
type PushChannel struct {
	ch chan struct{}
}

// NewPushChannel returns a ready-to-use PushChannel with no invalidation
// pending.
func NewPushChannel() *PushChannel {
	return &PushChannel{ch: make(chan struct{}, 1)}
}

// Signal marks an invalidation as pending. If one is already pending, this
// is a no-op: the core only needs to know "something changed since I last
// looked", not how many times.
func (p *PushChannel) Signal() {
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

// Drain reports whether an invalidation is pending and clears it.
func (p *PushChannel) Drain() bool {
	select {
	case <-p.ch:
		return true
	default:
		return false
	}
}
