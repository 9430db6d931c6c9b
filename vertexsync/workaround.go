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

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

// RecoverForcedStreamingAttributes restores every attribute the
// instanced-offset workaround forced onto the streaming buffer back to its
// real buffer binding. Called when the forced set becomes invalid wholesale,
// for example on a program change.
func (a *Array) RecoverForcedStreamingAttributes(ctx context.Context) {
	mask := a.forcedStreamingAttributesMask
	a.recoverForcedStreamingAttributes(ctx, &mask)
	a.forcedStreamingAttributesMask = 0
}

// recoverForcedStreamingAttributes rebinds the attributes in mask to their
// requested buffers through the normal pointer path and clears their
// recorded forced offsets. mask is reset.
func (a *Array) recoverForcedStreamingAttributes(ctx context.Context, mask *gles.AttributesMask) {
	if !mask.Any() {
		return
	}

	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())

	for idx := 0; idx < gles.MaxVertexAttribs; idx++ {
		if !mask.Test(idx) {
			continue
		}
		attrib := &a.data.Attributes[idx]
		if attrib.BindingIndex != idx || attrib.RelativeOffset != 0 {
			panic("Recovering an attribute that isn't expressible through the pointer entry points")
		}
		binding := &a.data.Bindings[attrib.BindingIndex]

		// Client-memory attributes have no buffer binding to restore; the
		// next draw that needs them streams them through the normal path.
		if binding.Buffer == nil {
			continue
		}

		a.state.BindBuffer(gl.ArrayBuffer, binding.Buffer.ID())
		a.callVertexAttribPointer(ctx, idx, attrib, binding.Stride, binding.Offset)

		// The attribute tracks its original buffer again.
		a.appliedAttributes[idx].format = attrib.Format
		a.appliedAttributes[idx].relativeOffset = 0
		a.appliedAttributes[idx].bindingIndex = attrib.BindingIndex

		a.appliedBindings[idx].stride = binding.Stride
		a.appliedBindings[idx].offset = binding.Offset
		a.appliedBindings[idx].buffer = binding.Buffer
	}

	*mask = 0
	a.forcedStreamingAttributesFirstOffsets = [gles.MaxVertexAttribs]int{}
}
