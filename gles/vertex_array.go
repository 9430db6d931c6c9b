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

// DirtyAttribBits records which pieces of one attribute's state changed since
// the last device synchronization.
type DirtyAttribBits uint8

const (
	DirtyAttribEnabled DirtyAttribBits = 1 << iota
	DirtyAttribPointer
	DirtyAttribPointerBuffer
	DirtyAttribFormat
	DirtyAttribBinding
)

// DirtyBindingBits records which pieces of one vertex buffer binding's state
// changed since the last device synchronization.
type DirtyBindingBits uint8

const (
	DirtyBindingBuffer DirtyBindingBits = 1 << iota
	DirtyBindingDivisor
)

// DirtyState is the full dirty-bit set of a vertex array. The object-state
// layer accumulates bits as the client mutates state; the synchronization
// engine consumes and clears them.
type DirtyState struct {
	ElementArrayBuffer     bool
	ElementArrayBufferData bool
	Attribs                [MaxVertexAttribs]DirtyAttribBits
	Bindings               [MaxVertexAttribs]DirtyBindingBits
	// BufferData marks attributes whose backing buffer had its contents
	// replaced. The bindings are unaffected, so there is nothing for the
	// vertex state engine to push; the bits exist so the caller can notice
	// dependent state (cached index ranges) going stale.
	BufferData AttributesMask
}

// Any reports whether any dirty bit is set.
func (d *DirtyState) Any() bool {
	if d.ElementArrayBuffer || d.ElementArrayBufferData || d.BufferData.Any() {
		return true
	}
	for i := range d.Attribs {
		if d.Attribs[i] != 0 || d.Bindings[i] != 0 {
			return true
		}
	}
	return false
}

// VertexAttribute is the requested state of one vertex attribute slot.
type VertexAttribute struct {
	// Enabled gates whether the attribute is fetched at all.
	Enabled bool
	// Format describes the element layout.
	Format VertexFormat
	// RelativeOffset is the byte offset of this attribute's data within one
	// element of the binding it reads from.
	RelativeOffset int
	// BindingIndex selects the vertex buffer binding the attribute reads
	// from.
	BindingIndex int
	// Pointer is the client memory holding the attribute data when the
	// binding has no buffer attached. The device cannot read client memory;
	// attributes with a Pointer are streamed into a device buffer at draw
	// time.
	Pointer []byte
}

// VertexBinding is the requested state of one vertex buffer binding slot.
type VertexBinding struct {
	// Buffer is the attached buffer object, or nil when the binding is
	// client-memory backed.
	Buffer *Buffer
	// Stride is the byte distance between consecutive elements. A stride of
	// zero is never stored here; the object-state layer resolves it to the
	// tightly packed element size when the pointer is specified.
	Stride int
	// Offset is the byte offset of the first element within the buffer.
	Offset int
	// Divisor is the instancing step rate: 0 advances per vertex, N > 0
	// advances once per N instances.
	Divisor int
}

// VertexArray is the requested state of one vertex array object, owned by
// the object-state layer. The synchronization engine reads it and never
// writes it.
type VertexArray struct {
	Attributes         [MaxVertexAttribs]VertexAttribute
	Bindings           [MaxVertexAttribs]VertexBinding
	ElementArrayBuffer *Buffer

	// Dirty accumulates the state changes made through the mutators below.
	Dirty DirtyState
}

// NewVertexArray returns a vertex array in the client API's default state:
// every attribute disabled with the default format, reading from its own
// binding slot, and every binding detached with a stride of 16.
func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	for i := range va.Attributes {
		va.Attributes[i].Format = DefaultVertexFormat
		va.Attributes[i].BindingIndex = i
		va.Bindings[i].Stride = 16
	}
	return va
}

// EnableAttrib sets the enabled flag of attribute i.
func (va *VertexArray) EnableAttrib(i int, enabled bool) {
	if va.Attributes[i].Enabled == enabled {
		return
	}
	va.Attributes[i].Enabled = enabled
	va.Dirty.Attribs[i] |= DirtyAttribEnabled
}

// SetAttribPointer specifies attribute i the combined way: format, source
// buffer (or client memory when buf is nil) and layout in one call. As in
// the client API, it rebinds the attribute to binding slot i and resets its
// relative offset.
func (va *VertexArray) SetAttribPointer(i int, format VertexFormat, buf *Buffer, offset, stride int, pointer []byte) {
	if stride == 0 {
		stride = format.ByteSize()
	}

	attrib := &va.Attributes[i]
	binding := &va.Bindings[i]

	bufferChanged := binding.Buffer != buf

	attrib.Format = format
	attrib.RelativeOffset = 0
	attrib.BindingIndex = i
	if buf != nil {
		attrib.Pointer = nil
	} else {
		attrib.Pointer = pointer
	}
	binding.Buffer = buf
	binding.Offset = offset
	binding.Stride = stride

	va.Dirty.Attribs[i] |= DirtyAttribPointer
	if bufferChanged {
		va.Dirty.Attribs[i] |= DirtyAttribPointerBuffer
	}
}

// SetAttribFormat specifies the format of attribute i without touching its
// data source. Only meaningful on devices with the attribute-binding
// capability.
func (va *VertexArray) SetAttribFormat(i int, format VertexFormat, relativeOffset int) {
	attrib := &va.Attributes[i]
	if attrib.Format == format && attrib.RelativeOffset == relativeOffset {
		return
	}
	attrib.Format = format
	attrib.RelativeOffset = relativeOffset
	va.Dirty.Attribs[i] |= DirtyAttribFormat
}

// SetAttribBinding selects the binding slot attribute i reads from.
func (va *VertexArray) SetAttribBinding(i, binding int) {
	if va.Attributes[i].BindingIndex == binding {
		return
	}
	va.Attributes[i].BindingIndex = binding
	va.Dirty.Attribs[i] |= DirtyAttribBinding
}

// BindVertexBuffer attaches buf to binding slot i with the given layout.
func (va *VertexArray) BindVertexBuffer(i int, buf *Buffer, offset, stride int) {
	binding := &va.Bindings[i]
	if binding.Buffer == buf && binding.Offset == offset && binding.Stride == stride {
		return
	}
	binding.Buffer = buf
	binding.Offset = offset
	binding.Stride = stride
	va.Dirty.Bindings[i] |= DirtyBindingBuffer
}

// SetBindingDivisor sets the instancing divisor of binding slot i.
func (va *VertexArray) SetBindingDivisor(i, divisor int) {
	if va.Bindings[i].Divisor == divisor {
		return
	}
	va.Bindings[i].Divisor = divisor
	va.Dirty.Bindings[i] |= DirtyBindingDivisor
}

// SetElementArrayBuffer attaches buf as the index buffer, or detaches it
// when buf is nil (index data then comes from client memory per draw).
func (va *VertexArray) SetElementArrayBuffer(buf *Buffer) {
	if va.ElementArrayBuffer == buf {
		return
	}
	va.ElementArrayBuffer = buf
	va.Dirty.ElementArrayBuffer = true
}

// NotifyBufferData marks attribute i's backing buffer contents as replaced.
func (va *VertexArray) NotifyBufferData(i int) {
	va.Dirty.BufferData.Set(i)
}
