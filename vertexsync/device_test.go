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

package vertexsync_test

import (
	"fmt"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

// fakeDevice is an in-memory device that mirrors the vertex state the
// entry points would set on a real driver, so tests can check both what was
// called and what state it produced.
type fakeDevice struct {
	calls map[string]int

	nextBuffer      gl.BufferID
	nextVertexArray gl.VertexArrayID
	lastBuffer      gl.BufferID

	buffers map[gl.BufferID][]byte
	bound   map[gl.BufferTarget]gl.BufferID
	vao     gl.VertexArrayID

	attribs  [gles.MaxVertexAttribs]fakeAttrib
	bindings [gles.MaxVertexAttribs]fakeBinding

	mappedTarget gl.BufferTarget
	mappedSlice  []byte

	// failUnmaps makes the next N UnmapBuffer calls report corruption.
	failUnmaps int
}

type fakeAttrib struct {
	enabled        bool
	size           int
	ty             gl.AttribType
	normalized     bool
	pureInt        bool
	relativeOffset int
	binding        int
}

type fakeBinding struct {
	buffer  gl.BufferID
	offset  int
	stride  int
	divisor int
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{
		calls:   map[string]int{},
		buffers: map[gl.BufferID][]byte{},
		bound:   map[gl.BufferTarget]gl.BufferID{},
	}
	for i := range d.attribs {
		d.attribs[i] = fakeAttrib{size: 4, ty: gl.Float, binding: i}
		d.bindings[i] = fakeBinding{stride: 16}
	}
	return d
}

func (d *fakeDevice) totalCalls() int {
	n := 0
	for _, c := range d.calls {
		n += c
	}
	return n
}

func (d *fakeDevice) GenBuffer() gl.BufferID {
	d.calls["GenBuffer"]++
	d.nextBuffer++
	d.buffers[d.nextBuffer] = nil
	d.lastBuffer = d.nextBuffer
	return d.nextBuffer
}

func (d *fakeDevice) DeleteBuffer(id gl.BufferID) {
	d.calls["DeleteBuffer"]++
	delete(d.buffers, id)
}

func (d *fakeDevice) BindBuffer(target gl.BufferTarget, id gl.BufferID) {
	d.calls["BindBuffer"]++
	d.bound[target] = id
}

func (d *fakeDevice) BufferData(target gl.BufferTarget, size int, data []byte, usage gl.BufferUsage) {
	d.calls["BufferData"]++
	store := make([]byte, size)
	copy(store, data)
	d.buffers[d.bound[target]] = store
}

func (d *fakeDevice) BufferSubData(target gl.BufferTarget, offset int, data []byte) {
	d.calls["BufferSubData"]++
	copy(d.buffers[d.bound[target]][offset:], data)
}

func (d *fakeDevice) MapBufferRange(target gl.BufferTarget, offset, length int, access gl.MapAccess) []byte {
	d.calls["MapBufferRange"]++
	store := d.buffers[d.bound[target]]
	if offset+length > len(store) {
		panic(fmt.Errorf("Mapping [%d, %d) of a %d byte buffer", offset, offset+length, len(store)))
	}
	d.mappedTarget = target
	d.mappedSlice = store[offset : offset+length]
	return d.mappedSlice
}

func (d *fakeDevice) UnmapBuffer(target gl.BufferTarget) bool {
	d.calls["UnmapBuffer"]++
	d.mappedSlice = nil
	if d.failUnmaps > 0 {
		d.failUnmaps--
		return false
	}
	return true
}

func (d *fakeDevice) GenVertexArray() gl.VertexArrayID {
	d.calls["GenVertexArray"]++
	d.nextVertexArray++
	return d.nextVertexArray
}

func (d *fakeDevice) DeleteVertexArray(id gl.VertexArrayID) {
	d.calls["DeleteVertexArray"]++
}

func (d *fakeDevice) BindVertexArray(id gl.VertexArrayID) {
	d.calls["BindVertexArray"]++
	d.vao = id
}

func (d *fakeDevice) EnableVertexAttribArray(index int) {
	d.calls["EnableVertexAttribArray"]++
	d.attribs[index].enabled = true
}

func (d *fakeDevice) DisableVertexAttribArray(index int) {
	d.calls["DisableVertexAttribArray"]++
	d.attribs[index].enabled = false
}

func (d *fakeDevice) VertexAttribPointer(index, channels int, ty gl.AttribType, normalized bool, stride, offset int) {
	d.calls["VertexAttribPointer"]++
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, normalized, false
	a.relativeOffset, a.binding = 0, index
	b := &d.bindings[index]
	b.buffer, b.offset, b.stride = d.bound[gl.ArrayBuffer], offset, stride
}

func (d *fakeDevice) VertexAttribIPointer(index, channels int, ty gl.AttribType, stride, offset int) {
	d.calls["VertexAttribIPointer"]++
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, false, true
	a.relativeOffset, a.binding = 0, index
	b := &d.bindings[index]
	b.buffer, b.offset, b.stride = d.bound[gl.ArrayBuffer], offset, stride
}

func (d *fakeDevice) VertexAttribFormat(index, channels int, ty gl.AttribType, normalized bool, relativeOffset int) {
	d.calls["VertexAttribFormat"]++
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, normalized, false
	a.relativeOffset = relativeOffset
}

func (d *fakeDevice) VertexAttribIFormat(index, channels int, ty gl.AttribType, relativeOffset int) {
	d.calls["VertexAttribIFormat"]++
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, false, true
	a.relativeOffset = relativeOffset
}

func (d *fakeDevice) VertexAttribBinding(index, binding int) {
	d.calls["VertexAttribBinding"]++
	d.attribs[index].binding = binding
}

func (d *fakeDevice) BindVertexBuffer(binding int, id gl.BufferID, offset, stride int) {
	d.calls["BindVertexBuffer"]++
	b := &d.bindings[binding]
	b.buffer, b.offset, b.stride = id, offset, stride
}

func (d *fakeDevice) VertexBindingDivisor(binding, divisor int) {
	d.calls["VertexBindingDivisor"]++
	d.bindings[binding].divisor = divisor
}

func (d *fakeDevice) VertexAttribDivisor(index, divisor int) {
	d.calls["VertexAttribDivisor"]++
	d.bindings[index].divisor = divisor
}

func (d *fakeDevice) GetInteger(p gl.Pname) int {
	d.calls["GetInteger"]++
	switch p {
	case gl.VertexArrayBinding:
		return int(d.vao)
	case gl.ElementArrayBufferBinding:
		return int(d.bound[gl.ElementArrayBuffer])
	case gl.MaxVertexAttribs:
		return gles.MaxVertexAttribs
	default:
		panic(fmt.Errorf("Unknown integer query %v", int(p)))
	}
}

func (d *fakeDevice) GetVertexAttrib(index int, p gl.Pname) int {
	d.calls["GetVertexAttrib"]++
	a := &d.attribs[index]
	b := &d.bindings[a.binding]
	switch p {
	case gl.VertexAttribArrayEnabled:
		return boolToInt(a.enabled)
	case gl.VertexAttribArraySize:
		return a.size
	case gl.VertexAttribArrayType:
		return int(a.ty)
	case gl.VertexAttribArrayNormalized:
		return boolToInt(a.normalized)
	case gl.VertexAttribArrayInteger:
		return boolToInt(a.pureInt)
	case gl.VertexAttribArrayStride:
		return b.stride
	case gl.VertexAttribArrayDivisor:
		return b.divisor
	case gl.VertexAttribArrayBufferBinding:
		return int(b.buffer)
	case gl.VertexAttribRelativeOffset:
		return a.relativeOffset
	case gl.VertexAttribBindingIndex:
		return a.binding
	default:
		panic(fmt.Errorf("Unknown vertex attribute query %v", int(p)))
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
