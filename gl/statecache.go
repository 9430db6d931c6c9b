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

package gl

// StateCache tracks the device's current binding state and drops calls that
// would re-bind an object that is already bound. There is exactly one
// StateCache per device context, shared by everything that talks to the
// device through it.
type StateCache struct {
	funcs Functions

	boundBuffers map[BufferTarget]BufferID
	vertexArray  VertexArrayID
}

// NewStateCache returns a StateCache for a freshly initialized context, where
// nothing is bound.
func NewStateCache(f Functions) *StateCache {
	return &StateCache{
		funcs:        f,
		boundBuffers: map[BufferTarget]BufferID{},
	}
}

// BindBuffer binds id to target, unless it is already bound there.
func (c *StateCache) BindBuffer(target BufferTarget, id BufferID) {
	if c.boundBuffers[target] == id {
		return
	}
	c.funcs.BindBuffer(target, id)
	c.boundBuffers[target] = id
}

// BindVertexArray binds the vertex array object, unless it is already bound.
// elementArrayBuffer is the element array buffer binding the vertex array
// object carries with it; the device switches to it as a side effect of the
// bind, so the cache has to as well.
func (c *StateCache) BindVertexArray(id VertexArrayID, elementArrayBuffer BufferID) {
	if c.vertexArray == id {
		return
	}
	c.funcs.BindVertexArray(id)
	c.vertexArray = id
	c.boundBuffers[ElementArrayBuffer] = elementArrayBuffer
}

// VertexArrayID returns the name of the currently bound vertex array object.
func (c *StateCache) VertexArrayID() VertexArrayID {
	return c.vertexArray
}

// DeleteBuffer destroys the buffer and scrubs it from the cached bindings.
// The device implicitly unbinds a deleted buffer, so a stale cache entry here
// would suppress a bind that is actually needed.
func (c *StateCache) DeleteBuffer(id BufferID) {
	if id == 0 {
		return
	}
	for target, bound := range c.boundBuffers {
		if bound == id {
			c.boundBuffers[target] = 0
		}
	}
	c.funcs.DeleteBuffer(id)
}

// DeleteVertexArray destroys the vertex array object, unbinding it first if
// it is the one currently bound.
func (c *StateCache) DeleteVertexArray(id VertexArrayID) {
	if id == 0 {
		return
	}
	if c.vertexArray == id {
		c.funcs.BindVertexArray(0)
		c.vertexArray = 0
		c.boundBuffers[ElementArrayBuffer] = 0
	}
	c.funcs.DeleteVertexArray(id)
}
