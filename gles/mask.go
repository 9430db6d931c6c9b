// Copyright (C) 2026 The GLBridge Authors.
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

package gles

import "math/bits"

// MaxVertexAttribs is the number of vertex attribute slots (and vertex buffer
// binding slots) the client API exposes.
const MaxVertexAttribs = 16

// AttributesMask is a bitset over attribute slot indices [0, MaxVertexAttribs).
type AttributesMask uint32

// Set sets the bit for slot i.
func (m *AttributesMask) Set(i int) { *m |= 1 << uint(i) }

// Clear clears the bit for slot i.
func (m *AttributesMask) Clear(i int) { *m &^= 1 << uint(i) }

// Test reports whether the bit for slot i is set.
func (m AttributesMask) Test(i int) bool { return m&(1<<uint(i)) != 0 }

// Any reports whether any bit is set.
func (m AttributesMask) Any() bool { return m != 0 }

// Count returns the number of set bits.
func (m AttributesMask) Count() int { return bits.OnesCount32(uint32(m)) }
