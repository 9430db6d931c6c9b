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

package main

import (
	"context"
	"fmt"

	"github.com/google/gapid/core/log"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

// traceDevice is a simulated device that logs every native call and keeps
// just enough state (buffer storage and vertex attribute mirrors) for the
// synchronization engine to run against.
type traceDevice struct {
	ctx context.Context

	nextBuffer      gl.BufferID
	nextVertexArray gl.VertexArrayID

	buffers map[gl.BufferID][]byte
	bound   map[gl.BufferTarget]gl.BufferID
	vao     gl.VertexArrayID

	attribs  [gles.MaxVertexAttribs]deviceAttrib
	bindings [gles.MaxVertexAttribs]deviceBinding
}

type deviceAttrib struct {
	enabled        bool
	size           int
	ty             gl.AttribType
	normalized     bool
	pureInt        bool
	relativeOffset int
	binding        int
}

type deviceBinding struct {
	buffer  gl.BufferID
	offset  int
	stride  int
	divisor int
}

func newTraceDevice(ctx context.Context) *traceDevice {
	d := &traceDevice{
		ctx:     ctx,
		buffers: map[gl.BufferID][]byte{},
		bound:   map[gl.BufferTarget]gl.BufferID{},
	}
	for i := range d.attribs {
		d.attribs[i] = deviceAttrib{size: 4, ty: gl.Float, binding: i}
		d.bindings[i] = deviceBinding{stride: 16}
	}
	return d
}

func (d *traceDevice) trace(format string, args ...interface{}) {
	log.I(d.ctx, "gl%s", fmt.Sprintf(format, args...))
}

func (d *traceDevice) GenBuffer() gl.BufferID {
	d.nextBuffer++
	d.buffers[d.nextBuffer] = nil
	d.trace("GenBuffers() = %d", d.nextBuffer)
	return d.nextBuffer
}

func (d *traceDevice) DeleteBuffer(id gl.BufferID) {
	d.trace("DeleteBuffers(%d)", id)
	delete(d.buffers, id)
}

func (d *traceDevice) BindBuffer(target gl.BufferTarget, id gl.BufferID) {
	d.trace("BindBuffer(%v, %d)", target, id)
	d.bound[target] = id
}

func (d *traceDevice) BufferData(target gl.BufferTarget, size int, data []byte, usage gl.BufferUsage) {
	d.trace("BufferData(%v, %d, %v)", target, size, usage)
	store := make([]byte, size)
	copy(store, data)
	d.buffers[d.bound[target]] = store
}

func (d *traceDevice) BufferSubData(target gl.BufferTarget, offset int, data []byte) {
	d.trace("BufferSubData(%v, %d, %d bytes)", target, offset, len(data))
	copy(d.buffers[d.bound[target]][offset:], data)
}

func (d *traceDevice) MapBufferRange(target gl.BufferTarget, offset, length int, access gl.MapAccess) []byte {
	d.trace("MapBufferRange(%v, %d, %d)", target, offset, length)
	store := d.buffers[d.bound[target]]
	if offset+length > len(store) {
		panic(fmt.Errorf("Mapping [%d, %d) of a %d byte buffer", offset, offset+length, len(store)))
	}
	return store[offset : offset+length]
}

func (d *traceDevice) UnmapBuffer(target gl.BufferTarget) bool {
	d.trace("UnmapBuffer(%v)", target)
	return true
}

func (d *traceDevice) GenVertexArray() gl.VertexArrayID {
	d.nextVertexArray++
	d.trace("GenVertexArrays() = %d", d.nextVertexArray)
	return d.nextVertexArray
}

func (d *traceDevice) DeleteVertexArray(id gl.VertexArrayID) {
	d.trace("DeleteVertexArrays(%d)", id)
}

func (d *traceDevice) BindVertexArray(id gl.VertexArrayID) {
	d.trace("BindVertexArray(%d)", id)
	d.vao = id
}

func (d *traceDevice) EnableVertexAttribArray(index int) {
	d.trace("EnableVertexAttribArray(%d)", index)
	d.attribs[index].enabled = true
}

func (d *traceDevice) DisableVertexAttribArray(index int) {
	d.trace("DisableVertexAttribArray(%d)", index)
	d.attribs[index].enabled = false
}

func (d *traceDevice) VertexAttribPointer(index, channels int, ty gl.AttribType, normalized bool, stride, offset int) {
	d.trace("VertexAttribPointer(%d, %d, %v, %v, %d, %d)", index, channels, ty, normalized, stride, offset)
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, normalized, false
	a.relativeOffset, a.binding = 0, index
	b := &d.bindings[index]
	b.buffer, b.offset, b.stride = d.bound[gl.ArrayBuffer], offset, stride
}

func (d *traceDevice) VertexAttribIPointer(index, channels int, ty gl.AttribType, stride, offset int) {
	d.trace("VertexAttribIPointer(%d, %d, %v, %d, %d)", index, channels, ty, stride, offset)
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, false, true
	a.relativeOffset, a.binding = 0, index
	b := &d.bindings[index]
	b.buffer, b.offset, b.stride = d.bound[gl.ArrayBuffer], offset, stride
}

func (d *traceDevice) VertexAttribFormat(index, channels int, ty gl.AttribType, normalized bool, relativeOffset int) {
	d.trace("VertexAttribFormat(%d, %d, %v, %v, %d)", index, channels, ty, normalized, relativeOffset)
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, normalized, false
	a.relativeOffset = relativeOffset
}

func (d *traceDevice) VertexAttribIFormat(index, channels int, ty gl.AttribType, relativeOffset int) {
	d.trace("VertexAttribIFormat(%d, %d, %v, %d)", index, channels, ty, relativeOffset)
	a := &d.attribs[index]
	a.size, a.ty, a.normalized, a.pureInt = channels, ty, false, true
	a.relativeOffset = relativeOffset
}

func (d *traceDevice) VertexAttribBinding(index, binding int) {
	d.trace("VertexAttribBinding(%d, %d)", index, binding)
	d.attribs[index].binding = binding
}

func (d *traceDevice) BindVertexBuffer(binding int, id gl.BufferID, offset, stride int) {
	d.trace("BindVertexBuffer(%d, %d, %d, %d)", binding, id, offset, stride)
	b := &d.bindings[binding]
	b.buffer, b.offset, b.stride = id, offset, stride
}

func (d *traceDevice) VertexBindingDivisor(binding, divisor int) {
	d.trace("VertexBindingDivisor(%d, %d)", binding, divisor)
	d.bindings[binding].divisor = divisor
}

func (d *traceDevice) VertexAttribDivisor(index, divisor int) {
	d.trace("VertexAttribDivisor(%d, %d)", index, divisor)
	d.bindings[index].divisor = divisor
}

func (d *traceDevice) GetInteger(p gl.Pname) int {
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

func (d *traceDevice) GetVertexAttrib(index int, p gl.Pname) int {
	a := &d.attribs[index]
	b := &d.bindings[a.binding]
	switch p {
	case gl.VertexAttribArrayEnabled:
		if a.enabled {
			return 1
		}
		return 0
	case gl.VertexAttribArraySize:
		return a.size
	case gl.VertexAttribArrayType:
		return int(a.ty)
	case gl.VertexAttribArrayNormalized:
		if a.normalized {
			return 1
		}
		return 0
	case gl.VertexAttribArrayInteger:
		if a.pureInt {
			return 1
		}
		return 0
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
