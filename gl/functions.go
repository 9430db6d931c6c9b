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

// Functions is the table of native device entry points the translation layer
// drives. Implementations wrap a real GL driver; tests substitute fakes.
//
// With the exception of UnmapBuffer, every call is assumed to succeed: the
// synchronization engine validates its own preconditions and does not check
// per-call device errors.
type Functions interface {
	// GenBuffer creates a new buffer object and returns its name.
	GenBuffer() BufferID

	// DeleteBuffer destroys the buffer object with the given name.
	// Deleting buffer 0 is silently ignored.
	DeleteBuffer(id BufferID)

	// BindBuffer binds the buffer to the given target. Binding to
	// ElementArrayBuffer modifies the currently bound vertex array object.
	BindBuffer(target BufferTarget, id BufferID)

	// BufferData allocates size bytes of storage for the buffer bound to
	// target, replacing any previous storage, and fills it with data when
	// data is non-nil. len(data) must be either 0 or size.
	BufferData(target BufferTarget, size int, data []byte, usage BufferUsage)

	// BufferSubData overwrites len(data) bytes of the buffer bound to target,
	// starting at offset. The range must lie inside the buffer's storage.
	BufferSubData(target BufferTarget, offset int, data []byte)

	// MapBufferRange maps length bytes of the buffer bound to target,
	// starting at offset, and returns the mapped memory as a slice of exactly
	// length bytes.
	MapBufferRange(target BufferTarget, offset, length int, access MapAccess) []byte

	// UnmapBuffer releases the mapping of the buffer bound to target.
	// It returns false if the device lost the buffer contents while mapped
	// (a transient driver condition, typically caused by a display event);
	// the data must then be re-written.
	UnmapBuffer(target BufferTarget) bool

	// GenVertexArray creates a new vertex array object and returns its name.
	GenVertexArray() VertexArrayID

	// DeleteVertexArray destroys the vertex array object with the given name.
	DeleteVertexArray(id VertexArrayID)

	// BindVertexArray binds the vertex array object.
	BindVertexArray(id VertexArrayID)

	// EnableVertexAttribArray enables the vertex attribute at index.
	EnableVertexAttribArray(index int)

	// DisableVertexAttribArray disables the vertex attribute at index.
	DisableVertexAttribArray(index int)

	// VertexAttribPointer sets the float-converting data source of the
	// attribute at index from the buffer bound to ArrayBuffer: channels
	// components of type ty starting offset bytes into the buffer, advancing
	// stride bytes per element.
	VertexAttribPointer(index, channels int, ty AttribType, normalized bool, stride, offset int)

	// VertexAttribIPointer is the pure-integer variant of
	// VertexAttribPointer.
	VertexAttribIPointer(index, channels int, ty AttribType, stride, offset int)

	// VertexAttribFormat sets the format of the attribute at index without
	// touching its data source. Requires Capabilities.VertexAttribBinding.
	VertexAttribFormat(index, channels int, ty AttribType, normalized bool, relativeOffset int)

	// VertexAttribIFormat is the pure-integer variant of VertexAttribFormat.
	// Requires Capabilities.VertexAttribBinding.
	VertexAttribIFormat(index, channels int, ty AttribType, relativeOffset int)

	// VertexAttribBinding selects the vertex buffer binding the attribute at
	// index reads from. Requires Capabilities.VertexAttribBinding.
	VertexAttribBinding(index, binding int)

	// BindVertexBuffer attaches a buffer to the vertex buffer binding slot.
	// Requires Capabilities.VertexAttribBinding.
	BindVertexBuffer(binding int, id BufferID, offset, stride int)

	// VertexBindingDivisor sets the instancing divisor of the vertex buffer
	// binding slot. Requires Capabilities.VertexAttribBinding.
	VertexBindingDivisor(binding, divisor int)

	// VertexAttribDivisor sets the instancing divisor of the attribute at
	// index. It is the only divisor entry point on devices without the
	// VertexAttribBinding capability.
	VertexAttribDivisor(index, divisor int)

	// GetInteger returns the current value of the device state p.
	GetInteger(p Pname) int

	// GetVertexAttrib returns the current value of the per-attribute device
	// state p for the attribute at index.
	GetVertexAttrib(index int, p Pname) int
}
