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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushChannel_DrainWithNoSignalIsFalse(t *testing.T) {
	p := NewPushChannel()
	assert.False(t, p.Drain())
}

func TestPushChannel_SignalThenDrainIsTrueOnce(t *testing.T) {
	p := NewPushChannel()
	p.Signal()

	assert.True(t, p.Drain())
	assert.False(t, p.Drain())
}

func TestPushChannel_RepeatedSignalsCoalesce(t *testing.T) {
	p := NewPushChannel()
	p.Signal()
	p.Signal()
	p.Signal()

	assert.True(t, p.Drain())
	assert.False(t, p.Drain(), "bursts of Signal must coalesce into a single pending invalidation")
}
