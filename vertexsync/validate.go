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

	"github.com/google/gapid/core/log"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Validate compares the applied state caches against the device's live
// state and logs every mismatch it finds, returning how many there were.
// It is a diagnostic path: it queries the device but never changes any
// state, and a mismatch never fails a draw.
func (a *Array) Validate(ctx context.Context) int {
	mismatches := 0

	check := func(local int, p gl.Pname, localName, driverName string) {
		if query := a.funcs.GetInteger(p); local != query {
			log.W(ctx, "%s (%d) != %s (%d)", localName, local, driverName, query)
			mismatches++
		}
	}
	checkAttrib := func(index, local int, p gl.Pname, localName, driverName string) {
		if query := a.funcs.GetVertexAttrib(index, p); local != query {
			log.W(ctx, "%s[%d] (%d) != %s[%d] (%d)", localName, index, local, driverName, index, query)
			mismatches++
		}
	}

	// This vertex array must be the one currently bound.
	check(int(a.id), gl.VertexArrayBinding, "id", "VERTEX_ARRAY_BINDING")

	check(int(a.appliedElementArrayBufferID()), gl.ElementArrayBufferBinding,
		"appliedElementArrayBuffer", "ELEMENT_ARRAY_BUFFER_BINDING")

	if max := a.funcs.GetInteger(gl.MaxVertexAttribs); gles.MaxVertexAttribs > max {
		log.W(ctx, "MaxVertexAttribs (%d) > MAX_VERTEX_ATTRIBS (%d)", gles.MaxVertexAttribs, max)
		mismatches++
	}

	for index := range a.appliedAttributes {
		attribute := &a.appliedAttributes[index]
		binding := &a.appliedBindings[attribute.bindingIndex]

		checkAttrib(index, boolToInt(attribute.enabled), gl.VertexAttribArrayEnabled,
			"appliedAttributes.enabled", "VERTEX_ATTRIB_ARRAY_ENABLED")

		if !attribute.enabled {
			continue
		}

		checkAttrib(index, int(attribute.format.Type), gl.VertexAttribArrayType,
			"appliedAttributes.format.Type", "VERTEX_ATTRIB_ARRAY_TYPE")
		checkAttrib(index, attribute.format.Count, gl.VertexAttribArraySize,
			"appliedAttributes.format.Count", "VERTEX_ATTRIB_ARRAY_SIZE")
		checkAttrib(index, boolToInt(attribute.format.Normalized), gl.VertexAttribArrayNormalized,
			"appliedAttributes.format.Normalized", "VERTEX_ATTRIB_ARRAY_NORMALIZED")
		checkAttrib(index, boolToInt(attribute.format.PureInt), gl.VertexAttribArrayInteger,
			"appliedAttributes.format.PureInt", "VERTEX_ATTRIB_ARRAY_INTEGER")
		if a.caps.VertexAttribBinding {
			checkAttrib(index, attribute.relativeOffset, gl.VertexAttribRelativeOffset,
				"appliedAttributes.relativeOffset", "VERTEX_ATTRIB_RELATIVE_OFFSET")
			checkAttrib(index, attribute.bindingIndex, gl.VertexAttribBindingIndex,
				"appliedAttributes.bindingIndex", "VERTEX_ATTRIB_BINDING")
		}

		if binding.buffer == nil {
			// A nil applied buffer means the attribute was last pointed at
			// the streaming buffer.
			checkAttrib(index, int(a.streamingArrayBuffer), gl.VertexAttribArrayBufferBinding,
				"appliedBindings.buffer", "VERTEX_ATTRIB_ARRAY_BUFFER_BINDING")
		} else {
			checkAttrib(index, int(binding.buffer.ID()), gl.VertexAttribArrayBufferBinding,
				"appliedBindings.buffer", "VERTEX_ATTRIB_ARRAY_BUFFER_BINDING")
			checkAttrib(index, binding.stride, gl.VertexAttribArrayStride,
				"appliedBindings.stride", "VERTEX_ATTRIB_ARRAY_STRIDE")
			checkAttrib(index, binding.divisor, gl.VertexAttribArrayDivisor,
				"appliedBindings.divisor", "VERTEX_ATTRIB_ARRAY_DIVISOR")
		}
	}

	return mismatches
}
