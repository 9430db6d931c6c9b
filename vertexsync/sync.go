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
	"fmt"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

func sameVertexAttribFormat(a appliedAttribute, b *gles.VertexAttribute) bool {
	return a.format == b.Format && a.relativeOffset == b.RelativeOffset
}

func sameVertexBuffer(a appliedBinding, b *gles.VertexBinding) bool {
	return a.stride == b.Stride && a.offset == b.Offset && a.buffer == b.Buffer
}

// SyncState pushes every state change recorded in dirty to the device,
// clearing the bits it consumes. Updates whose target state already matches
// the applied cache are skipped without touching the device.
func (a *Array) SyncState(ctx context.Context, dirty *gles.DirtyState) error {
	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())

	if dirty.ElementArrayBuffer {
		a.updateElementArrayBufferBinding(ctx)
		dirty.ElementArrayBuffer = false
	}
	// Index data uploads are handled by the buffer layer; the binding is
	// unaffected.
	dirty.ElementArrayBufferData = false

	for i := range dirty.Attribs {
		if bits := dirty.Attribs[i]; bits != 0 {
			a.syncDirtyAttrib(ctx, i, bits)
			dirty.Attribs[i] = 0
		}
	}
	for i := range dirty.Bindings {
		if bits := dirty.Bindings[i]; bits != 0 {
			a.syncDirtyBinding(ctx, i, bits)
			dirty.Bindings[i] = 0
		}
	}
	// Buffer contents changes need no vertex state update.
	dirty.BufferData = 0

	return nil
}

func (a *Array) syncDirtyAttrib(ctx context.Context, attribIndex int, bits gles.DirtyAttribBits) {
	for bits != 0 {
		bit := bits & (^bits + 1) // lowest set bit
		bits &^= bit
		switch bit {
		case gles.DirtyAttribEnabled:
			a.updateAttribEnabled(ctx, attribIndex)
		case gles.DirtyAttribPointer, gles.DirtyAttribPointerBuffer:
			a.updateAttribPointer(ctx, attribIndex)
		case gles.DirtyAttribFormat:
			a.mustSupportVertexAttribBinding()
			a.updateAttribFormat(ctx, attribIndex)
		case gles.DirtyAttribBinding:
			a.mustSupportVertexAttribBinding()
			a.updateAttribBinding(ctx, attribIndex)
		default:
			panic(fmt.Errorf("Unknown dirty attribute bit 0x%x", uint8(bit)))
		}
	}
}

func (a *Array) syncDirtyBinding(ctx context.Context, bindingIndex int, bits gles.DirtyBindingBits) {
	for bits != 0 {
		bit := bits & (^bits + 1)
		bits &^= bit
		switch bit {
		case gles.DirtyBindingBuffer:
			a.mustSupportVertexAttribBinding()
			a.updateBindingBuffer(ctx, bindingIndex)
		case gles.DirtyBindingDivisor:
			a.updateBindingDivisor(ctx, bindingIndex)
		default:
			panic(fmt.Errorf("Unknown dirty binding bit 0x%x", uint8(bit)))
		}
	}
}

func (a *Array) mustSupportVertexAttribBinding() {
	if !a.caps.VertexAttribBinding {
		panic("Vertex attribute binding state set on a device without the capability")
	}
}

func (a *Array) updateElementArrayBufferBinding(ctx context.Context) {
	if eab := a.data.ElementArrayBuffer; eab != nil && eab != a.appliedElementArrayBuffer {
		a.state.BindBuffer(gl.ElementArrayBuffer, eab.ID())
		a.appliedElementArrayBuffer = eab
	}
}

func (a *Array) updateAttribEnabled(ctx context.Context, attribIndex int) {
	enabled := a.data.Attributes[attribIndex].Enabled &&
		a.programActiveAttribLocationsMask.Test(attribIndex)
	if a.appliedAttributes[attribIndex].enabled == enabled {
		return
	}
	if enabled {
		a.funcs.EnableVertexAttribArray(attribIndex)
	} else {
		a.funcs.DisableVertexAttribArray(attribIndex)
	}
	a.appliedAttributes[attribIndex].enabled = enabled
}

func (a *Array) updateAttribPointer(ctx context.Context, attribIndex int) {
	attrib := &a.data.Attributes[attribIndex]

	// The combined pointer update always writes through binding slot
	// attribIndex on the device, whatever binding the attribute currently
	// reads from.
	binding := &a.data.Bindings[attribIndex]

	// Skip attributes that aren't sourcing a buffer object:
	// - client memory attributes are streamed at draw time instead;
	// - a detached binding cannot be fetched, so the attribute must be
	//   disabled and won't affect the draw.
	// Clearing the applied buffer here keeps a later switch back to a
	// buffer from being skipped by the diff.
	if binding.Buffer == nil {
		a.appliedBindings[attribIndex].buffer = nil
		return
	}

	if sameVertexAttribFormat(a.appliedAttributes[attribIndex], attrib) &&
		a.appliedAttributes[attribIndex].bindingIndex == attrib.BindingIndex &&
		sameVertexBuffer(a.appliedBindings[attribIndex], binding) {
		return
	}

	a.state.BindBuffer(gl.ArrayBuffer, binding.Buffer.ID())
	a.callVertexAttribPointer(ctx, attribIndex, attrib, binding.Stride, binding.Offset)

	a.appliedAttributes[attribIndex].format = attrib.Format

	// The device resets the relative offset to 0 and rebinds the attribute
	// to binding slot attribIndex as part of the pointer call. Record those
	// values, not the requested ones, so the cache stays consistent with
	// the device; any difference is applied by the format and binding
	// updates.
	a.appliedAttributes[attribIndex].relativeOffset = 0
	a.appliedAttributes[attribIndex].bindingIndex = attribIndex

	a.appliedBindings[attribIndex].stride = binding.Stride
	a.appliedBindings[attribIndex].offset = binding.Offset
	a.appliedBindings[attribIndex].buffer = binding.Buffer
}

func (a *Array) callVertexAttribPointer(ctx context.Context, attribIndex int, attrib *gles.VertexAttribute, stride, offset int) {
	f := attrib.Format
	if f.PureInt {
		if f.Normalized {
			panic("Pure integer vertex format marked as normalized")
		}
		a.funcs.VertexAttribIPointer(attribIndex, f.Count, f.Type, stride, offset)
	} else {
		a.funcs.VertexAttribPointer(attribIndex, f.Count, f.Type, f.Normalized, stride, offset)
	}
}

func (a *Array) updateAttribFormat(ctx context.Context, attribIndex int) {
	attrib := &a.data.Attributes[attribIndex]
	if sameVertexAttribFormat(a.appliedAttributes[attribIndex], attrib) {
		return
	}

	f := attrib.Format
	if f.PureInt {
		if f.Normalized {
			panic("Pure integer vertex format marked as normalized")
		}
		a.funcs.VertexAttribIFormat(attribIndex, f.Count, f.Type, attrib.RelativeOffset)
	} else {
		a.funcs.VertexAttribFormat(attribIndex, f.Count, f.Type, f.Normalized, attrib.RelativeOffset)
	}

	a.appliedAttributes[attribIndex].format = f
	a.appliedAttributes[attribIndex].relativeOffset = attrib.RelativeOffset
}

func (a *Array) updateAttribBinding(ctx context.Context, attribIndex int) {
	bindingIndex := a.data.Attributes[attribIndex].BindingIndex
	if a.appliedAttributes[attribIndex].bindingIndex == bindingIndex {
		return
	}
	a.funcs.VertexAttribBinding(attribIndex, bindingIndex)
	a.appliedAttributes[attribIndex].bindingIndex = bindingIndex
}

func (a *Array) updateBindingBuffer(ctx context.Context, bindingIndex int) {
	binding := &a.data.Bindings[bindingIndex]
	if sameVertexBuffer(a.appliedBindings[bindingIndex], binding) {
		return
	}

	var id gl.BufferID
	if binding.Buffer != nil {
		id = binding.Buffer.ID()
	}
	a.funcs.BindVertexBuffer(bindingIndex, id, binding.Offset, binding.Stride)

	a.appliedBindings[bindingIndex].stride = binding.Stride
	a.appliedBindings[bindingIndex].offset = binding.Offset
	a.appliedBindings[bindingIndex].buffer = binding.Buffer
}

func (a *Array) updateBindingDivisor(ctx context.Context, bindingIndex int) {
	// Multiview rendering multiplies every divisor by the view count, so
	// each view advances the instanced data as if it were its own draw.
	adjustedDivisor := a.appliedNumViews * a.data.Bindings[bindingIndex].Divisor
	if a.appliedBindings[bindingIndex].divisor == adjustedDivisor {
		return
	}

	if a.caps.VertexAttribBinding {
		a.funcs.VertexBindingDivisor(bindingIndex, adjustedDivisor)
	} else {
		// Without attribute-binding separation the divisor can only be set
		// through the per-attribute entry point.
		a.funcs.VertexAttribDivisor(bindingIndex, adjustedDivisor)
	}

	a.appliedBindings[bindingIndex].divisor = adjustedDivisor

	if adjustedDivisor > 0 {
		a.instancedAttributesMask.Set(bindingIndex)
	} else if a.instancedAttributesMask.Test(bindingIndex) {
		a.instancedAttributesMask.Clear(bindingIndex)
	}
}

// ApplyNumViews sets the active multiview view count. Changing it
// invalidates every binding's effective divisor, so they are all
// recomputed.
func (a *Array) ApplyNumViews(ctx context.Context, numViews int) {
	if numViews == a.appliedNumViews {
		return
	}
	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())
	a.appliedNumViews = numViews
	for i := range a.appliedBindings {
		a.updateBindingDivisor(ctx, i)
	}
}

// ApplyActiveAttribLocationsMask records which attribute locations the
// active program consumes and re-evaluates the enables of every attribute
// whose active state flipped.
func (a *Array) ApplyActiveAttribLocationsMask(ctx context.Context, active gles.AttributesMask) {
	updateMask := a.programActiveAttribLocationsMask ^ active
	if !updateMask.Any() {
		return
	}

	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())
	a.programActiveAttribLocationsMask = active

	for i := 0; i < gles.MaxVertexAttribs; i++ {
		if updateMask.Test(i) {
			a.updateAttribEnabled(ctx, i)
		}
	}
}
