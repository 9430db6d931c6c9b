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

package vertexsync

import (
	"context"

	"github.com/google/gapid/core/fault"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

// ErrOutOfMemory is returned when the device repeatedly corrupts the
// streaming buffer contents while they are mapped and the data cannot be
// delivered. It surfaces to the application as the API's out-of-memory
// error.
const ErrOutOfMemory = fault.Const("Failed to unmap the client data streaming buffer")

// unmapRetryAttempts bounds how many times a fill-and-unmap cycle is retried
// before giving up with ErrOutOfMemory.
const unmapRetryAttempts = 5

// appliedAttribute is the last attribute state known to have reached the
// device.
type appliedAttribute struct {
	enabled        bool
	format         gles.VertexFormat
	relativeOffset int
	bindingIndex   int
}

// appliedBinding is the last vertex buffer binding state known to have
// reached the device. buffer is compared by identity; nil means the binding
// does not source a client API buffer (detached, or pointed at a streaming
// buffer), which always forces the next pointer update through.
type appliedBinding struct {
	buffer  *gles.Buffer
	stride  int
	offset  int
	divisor int
}

// Array synchronizes one client vertex array object with the device.
//
// The requested state is read from the gles.VertexArray it is constructed
// with and never modified. All mutable state here is device-side cache:
// what has been applied, the streaming buffers, and the workaround
// bookkeeping.
type Array struct {
	funcs    gl.Functions
	state    *gl.StateCache
	caps     gl.Capabilities
	features gl.Features

	id   gl.VertexArrayID
	data *gles.VertexArray

	appliedNumViews           int
	appliedElementArrayBuffer *gles.Buffer
	appliedAttributes         [gles.MaxVertexAttribs]appliedAttribute
	appliedBindings           [gles.MaxVertexAttribs]appliedBinding

	streamingElementArrayBuffer     gl.BufferID
	streamingElementArrayBufferSize int
	streamingArrayBuffer            gl.BufferID
	streamingArrayBufferSize        int

	programActiveAttribLocationsMask gles.AttributesMask
	instancedAttributesMask          gles.AttributesMask

	// Bookkeeping for the instanced-offset workaround: which attributes are
	// currently forced onto the streaming buffer, and the draw's first
	// vertex they were last streamed for.
	forcedStreamingAttributesMask         gles.AttributesMask
	forcedStreamingAttributesFirstOffsets [gles.MaxVertexAttribs]int
}

// New creates the device vertex array object for data and returns the Array
// that keeps it synchronized. The applied caches start out mirroring the
// device's default vertex array state, which matches the client API's
// default state.
func New(f gl.Functions, sc *gl.StateCache, caps gl.Capabilities, features gl.Features, data *gles.VertexArray) *Array {
	a := &Array{
		funcs:           f,
		state:           sc,
		caps:            caps,
		features:        features,
		id:              f.GenVertexArray(),
		data:            data,
		appliedNumViews: 1,
	}
	for i := range a.appliedAttributes {
		a.appliedAttributes[i].format = gles.DefaultVertexFormat
		a.appliedAttributes[i].bindingIndex = i
		a.appliedBindings[i].stride = 16
	}
	return a
}

// ID returns the name of the device vertex array object.
func (a *Array) ID() gl.VertexArrayID {
	return a.id
}

// Destroy deletes the device vertex array object and the streaming buffers,
// and resets the applied caches.
func (a *Array) Destroy(ctx context.Context) {
	a.state.DeleteVertexArray(a.id)
	a.id = 0
	a.appliedNumViews = 1

	a.state.DeleteBuffer(a.streamingElementArrayBuffer)
	a.streamingElementArrayBuffer = 0
	a.streamingElementArrayBufferSize = 0

	a.state.DeleteBuffer(a.streamingArrayBuffer)
	a.streamingArrayBuffer = 0
	a.streamingArrayBufferSize = 0

	a.appliedElementArrayBuffer = nil
	for i := range a.appliedBindings {
		a.appliedBindings[i].buffer = nil
	}
}

// appliedElementArrayBufferID returns the element array buffer the device
// vertex array object currently carries: the applied client buffer, or the
// streaming index buffer when index data was last streamed.
func (a *Array) appliedElementArrayBufferID() gl.BufferID {
	if a.appliedElementArrayBuffer == nil {
		return a.streamingElementArrayBuffer
	}
	return a.appliedElementArrayBuffer.ID()
}

// clientAttribsMask returns the attributes that will have to be streamed for
// the next draw: enabled, consumed by the active program, and sourcing
// client memory instead of a buffer.
func (a *Array) clientAttribsMask() gles.AttributesMask {
	var mask gles.AttributesMask
	for i := 0; i < gles.MaxVertexAttribs; i++ {
		attrib := &a.data.Attributes[i]
		if !attrib.Enabled || !a.programActiveAttribLocationsMask.Test(i) {
			continue
		}
		if a.data.Bindings[attrib.BindingIndex].Buffer == nil && attrib.Pointer != nil {
			mask.Set(i)
		}
	}
	return mask
}
