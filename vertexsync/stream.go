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
	"github.com/google/gapid/core/math/sint"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
)

// DrawCall holds the parameters of a pending draw that matter to vertex
// state synchronization.
type DrawCall struct {
	// First is the first vertex for non-indexed draws.
	First int
	// Count is the vertex count (non-indexed) or index count (indexed).
	Count int
	// InstanceCount is the number of instances; 1 for non-instanced draws.
	InstanceCount int
	// IndexType is the element type of the index data, or IndexNone for a
	// non-indexed draw.
	IndexType gles.IndexType
	// IndexOffset is the byte offset of the first index inside the bound
	// element array buffer. Ignored when IndexData is set.
	IndexOffset int
	// IndexData is the client memory holding the indices when no element
	// array buffer is bound.
	IndexData []byte
	// PrimitiveRestart excludes the restart index value from index range
	// computations.
	PrimitiveRestart bool
}

// SyncClientSideData streams whatever attribute data the next non-indexed
// draw needs from client memory into the streaming buffer. It is the
// non-indexed entry point to the per-draw synchronization.
func (a *Array) SyncClientSideData(ctx context.Context, first, count, instanceCount int) error {
	_, err := a.SyncDrawState(ctx, &DrawCall{
		First:         first,
		Count:         count,
		InstanceCount: instanceCount,
		IndexType:     gles.IndexNone,
	})
	return err
}

// SyncDrawState prepares the vertex array for one draw call: it decides
// which attributes have to be streamed, computes the index range the draw
// touches, streams index and attribute data into the streaming buffers, and
// applies the instanced-offset workaround when the device needs it.
//
// It returns the byte offset at which the draw call should read its indices
// from the element array buffer that is bound when it returns. For draws
// whose index data was streamed the offset is zero; for buffer-backed
// indices it is the caller's offset unchanged.
func (a *Array) SyncDrawState(ctx context.Context, draw *DrawCall) (int, error) {
	// Attributes sourcing client memory decide whether the index range is
	// needed at all; computing it means scanning the index data.
	needsStreamingAttribs := a.clientAttribsMask()

	var indexRange gles.IndexRange
	indexOffset := draw.IndexOffset
	if draw.IndexType != gles.IndexNone {
		var err error
		indexRange, indexOffset, err = a.syncIndexData(ctx, draw, needsStreamingAttribs.Any())
		if err != nil {
			return 0, err
		}
	} else {
		indexRange = gles.IndexRange{
			Start: uint32(draw.First),
			End:   uint32(draw.First + draw.Count - 1),
		}

		if a.features.ShiftInstancedArrayDataWithExtraOffset && draw.First > 0 {
			updatedStreamingAttribsMask := needsStreamingAttribs
			candidateAttributesMask := a.instancedAttributesMask & a.programActiveAttribLocationsMask
			for i := 0; i < gles.MaxVertexAttribs; i++ {
				if !candidateAttributesMask.Test(i) {
					continue
				}
				if a.forcedStreamingAttributesFirstOffsets[i] != draw.First {
					updatedStreamingAttribsMask.Set(i)
					a.forcedStreamingAttributesMask.Set(i)
					a.forcedStreamingAttributesFirstOffsets[i] = draw.First
				}
			}

			// Attributes that were forced onto the streaming buffer but have
			// since left the instanced-and-active set get their real buffer
			// binding back before the draw.
			needRecoverMask := candidateAttributesMask ^ a.forcedStreamingAttributesMask
			if needRecoverMask.Any() {
				a.recoverForcedStreamingAttributes(ctx, &needRecoverMask)
				a.forcedStreamingAttributesMask = candidateAttributesMask
			}

			if updatedStreamingAttribsMask.Any() {
				if err := a.streamAttributes(ctx, updatedStreamingAttribsMask, draw.InstanceCount, indexRange, true); err != nil {
					return 0, err
				}
			}
			// The workaround path has streamed everything it needs to;
			// falling through would stream the client attributes a second
			// time.
			return indexOffset, nil
		}
	}

	if needsStreamingAttribs.Any() {
		if err := a.streamAttributes(ctx, needsStreamingAttribs, draw.InstanceCount, indexRange, false); err != nil {
			return 0, err
		}
	}

	return indexOffset, nil
}

// syncIndexData resolves where the draw's indices live. Buffer-backed
// indices stay where they are; client-memory indices are copied into the
// streaming element array buffer. The index range is only computed when
// attributes need streaming, since that is its only consumer and computing
// it is not free.
func (a *Array) syncIndexData(ctx context.Context, draw *DrawCall, attributesNeedStreaming bool) (gles.IndexRange, int, error) {
	var indexRange gles.IndexRange

	if eab := a.data.ElementArrayBuffer; eab != nil {
		if eab != a.appliedElementArrayBuffer {
			panic("Element array buffer was not applied before the draw")
		}
		if attributesNeedStreaming {
			r, err := eab.IndexRange(ctx, draw.IndexType, draw.IndexOffset, draw.Count, draw.PrimitiveRestart)
			if err != nil {
				return gles.IndexRange{}, 0, err
			}
			indexRange = r
		}
		// The indices stay in the bound buffer; the draw reads them at the
		// caller's offset.
		return indexRange, draw.IndexOffset, nil
	}

	if attributesNeedStreaming {
		indexRange = gles.ComputeIndexRange(draw.IndexType, draw.IndexData, draw.Count, draw.PrimitiveRestart)
	}

	if a.streamingElementArrayBuffer == 0 {
		a.streamingElementArrayBuffer = a.funcs.GenBuffer()
		a.streamingElementArrayBufferSize = 0
	}

	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())

	a.state.BindBuffer(gl.ElementArrayBuffer, a.streamingElementArrayBuffer)
	a.appliedElementArrayBuffer = nil

	requiredSize := draw.IndexType.Size() * draw.Count
	data := draw.IndexData[:requiredSize]
	if requiredSize > a.streamingElementArrayBufferSize {
		// Copy the indices in while growing the buffer.
		a.funcs.BufferData(gl.ElementArrayBuffer, requiredSize, data, gl.DynamicDraw)
		a.streamingElementArrayBufferSize = requiredSize
	} else {
		// The buffer is large enough; put the indices at its start.
		a.funcs.BufferSubData(gl.ElementArrayBuffer, 0, data)
	}

	// The index data now lives at the start of the streaming buffer.
	return indexRange, 0, nil
}

// computeStreamingAttributeSizes returns the total byte size the streaming
// buffer needs for the attributes in attribsToStream, and the largest single
// element size among them. The latter determines the slack reserved per
// attribute so a nonzero range start stays expressible as a byte offset.
func (a *Array) computeStreamingAttributeSizes(attribsToStream gles.AttributesMask, instanceCount int, indexRange gles.IndexRange, applyExtraOffsetWorkaround bool) (streamingDataSize, maxAttributeDataSize int) {
	if !attribsToStream.Any() {
		panic("Computing streaming sizes with nothing to stream")
	}

	for i := 0; i < gles.MaxVertexAttribs; i++ {
		if !attribsToStream.Test(i) {
			continue
		}
		attrib := &a.data.Attributes[i]
		binding := &a.data.Bindings[attrib.BindingIndex]

		typeSize := attrib.Format.ByteSize()
		adjustedDivisor := a.appliedNumViews * binding.Divisor
		elementCount := gles.ComputeBindingElementCount(adjustedDivisor, indexRange.VertexCount(), instanceCount)
		if applyExtraOffsetWorkaround && adjustedDivisor > 0 {
			// The workaround streams instanced data shifted by the range
			// start, so the buffer must hold the shifted element count.
			elementCount = (instanceCount + int(indexRange.Start) + adjustedDivisor - 1) / adjustedDivisor
		}
		streamingDataSize += typeSize * elementCount
		maxAttributeDataSize = sint.Max(maxAttributeDataSize, typeSize)
	}
	return streamingDataSize, maxAttributeDataSize
}

// streamAttributes copies the client-memory data of every attribute in
// attribsToStream into the streaming array buffer and repoints the
// attributes at it. With applyExtraOffsetWorkaround set, instanced
// attributes are streamed shifted by the index range start so drivers that
// ignore the draw's first vertex for instanced fetches still read the right
// elements.
func (a *Array) streamAttributes(ctx context.Context, attribsToStream gles.AttributesMask, instanceCount int, indexRange gles.IndexRange, applyExtraOffsetWorkaround bool) error {
	streamingDataSize, maxAttributeDataSize := a.computeStreamingAttributeSizes(attribsToStream, instanceCount, indexRange, applyExtraOffsetWorkaround)
	if streamingDataSize == 0 {
		return nil
	}

	if a.streamingArrayBuffer == 0 {
		a.streamingArrayBuffer = a.funcs.GenBuffer()
		a.streamingArrayBufferSize = 0
	}

	// When the range doesn't start at zero, slack is left at the head of
	// the buffer for each attribute so the draw can still pass the same
	// first vertex.
	bufferEmptySpace := attribsToStream.Count() * maxAttributeDataSize * int(indexRange.Start)
	requiredBufferSize := streamingDataSize + bufferEmptySpace

	a.state.BindBuffer(gl.ArrayBuffer, a.streamingArrayBuffer)
	if requiredBufferSize > a.streamingArrayBufferSize {
		a.funcs.BufferData(gl.ArrayBuffer, requiredBufferSize, nil, gl.DynamicDraw)
		a.streamingArrayBufferSize = requiredBufferSize
	}

	a.state.BindVertexArray(a.id, a.appliedElementArrayBufferID())

	// Unmapping can report that the device corrupted the written data (for
	// example on a display change). Retry the whole fill-and-unmap cycle a
	// few times before giving up.
	unmapOK := false
	for attempt := 0; attempt < unmapRetryAttempts && !unmapOK; attempt++ {
		if err := a.fillStreamingArrayBuffer(ctx, attribsToStream, instanceCount, indexRange,
			maxAttributeDataSize, requiredBufferSize, applyExtraOffsetWorkaround); err != nil {
			return err
		}
		unmapOK = a.funcs.UnmapBuffer(gl.ArrayBuffer)
	}
	if !unmapOK {
		return log.Err(ctx, ErrOutOfMemory, "Streaming vertex attribute data")
	}
	return nil
}

// fillStreamingArrayBuffer maps the streaming array buffer, copies one
// attempt's worth of attribute data into it and updates the attribute
// pointers and applied state. The caller unmaps and decides whether to
// retry.
func (a *Array) fillStreamingArrayBuffer(ctx context.Context, attribsToStream gles.AttributesMask, instanceCount int, indexRange gles.IndexRange, maxAttributeDataSize, requiredBufferSize int, applyExtraOffsetWorkaround bool) error {
	mapped := a.funcs.MapBufferRange(gl.ArrayBuffer, 0, requiredBufferSize, gl.MapWrite)
	curBufferOffset := maxAttributeDataSize * int(indexRange.Start)

	for idx := 0; idx < gles.MaxVertexAttribs; idx++ {
		if !attribsToStream.Test(idx) {
			continue
		}
		attrib := &a.data.Attributes[idx]
		if attrib.BindingIndex != idx || attrib.RelativeOffset != 0 {
			panic("Streaming an attribute that isn't expressible through the pointer entry points")
		}
		binding := &a.data.Bindings[attrib.BindingIndex]

		adjustedDivisor := a.appliedNumViews * binding.Divisor
		streamedVertexCount := gles.ComputeBindingElementCount(adjustedDivisor, indexRange.VertexCount(), instanceCount)

		destStride := attrib.Format.ByteSize()
		sourceStride := binding.Stride
		if sourceStride == 0 {
			sourceStride = destStride
		}

		// Instanced attributes do not apply the range start even on
		// non-instanced draws; only the workaround shifts them.
		firstIndex := 0
		if adjustedDivisor == 0 || applyExtraOffsetWorkaround {
			firstIndex = int(indexRange.Start)
		}

		input := attrib.Pointer
		// The batch copy size is fixed before the workaround below enlarges
		// the streamed element count.
		batchCopySize := destStride * streamedVertexCount
		batchInputOffset := sourceStride * firstIndex
		firstIndexForSeparateCopy := firstIndex
		needsUnmapAndRebind := false

		if applyExtraOffsetWorkaround && adjustedDivisor > 0 {
			originalStreamedVertexCount := streamedVertexCount
			// Shift the data so the buggy fetch of instance i at element
			// (i + first)/divisor lands on the right element.
			streamedVertexCount = (instanceCount + int(indexRange.Start) + adjustedDivisor - 1) / adjustedDivisor

			copySize := sourceStride * originalStreamedVertexCount

			if binding.Buffer == nil {
				if input == nil {
					continue
				}
			} else {
				// The attribute being forced here sources a real buffer:
				// map it for reading to fetch the data being shifted.
				needsUnmapAndRebind = true
				a.state.BindBuffer(gl.ArrayBuffer, binding.Buffer.ID())
				in := a.funcs.MapBufferRange(gl.ArrayBuffer, binding.Offset, copySize, gl.MapRead)
				if in == nil {
					panic("Mapping the source attribute buffer for reading failed")
				}
				input = in
			}

			batchInputOffset = 0
			firstIndexForSeparateCopy = 0
		}

		// Pack the data while copying: the source stride can be far larger
		// than the element size, and the padding must not be carried into
		// the streaming buffer.
		if destStride == sourceStride {
			copy(mapped[curBufferOffset:curBufferOffset+batchCopySize], input[batchInputOffset:batchInputOffset+batchCopySize])
		} else {
			for v := 0; v < streamedVertexCount; v++ {
				in := sourceStride * (v + firstIndexForSeparateCopy)
				if in+destStride > len(input) {
					// The shifted tail past the end of the source data is
					// left unwritten; the buggy fetch never dereferences it
					// meaningfully.
					break
				}
				out := curBufferOffset + destStride*v
				copy(mapped[out:out+destStride], input[in:in+destStride])
			}
		}

		if needsUnmapAndRebind {
			if !a.funcs.UnmapBuffer(gl.ArrayBuffer) {
				return log.Err(ctx, ErrOutOfMemory, "Unmapping the source attribute buffer")
			}
			a.state.BindBuffer(gl.ArrayBuffer, a.streamingArrayBuffer)
		}

		// Where the 0-index vertex would be, so the draw's first vertex
		// still resolves correctly.
		vertexStartOffset := curBufferOffset - firstIndex*destStride

		a.callVertexAttribPointer(ctx, idx, attrib, destStride, vertexStartOffset)

		// Track the streamed attribute like any other applied pointer
		// update, with a nil buffer so a later switch back to a real buffer
		// is never skipped by the diff.
		a.appliedAttributes[idx].format = attrib.Format
		a.appliedAttributes[idx].relativeOffset = 0
		a.appliedAttributes[idx].bindingIndex = idx

		a.appliedBindings[idx].stride = destStride
		a.appliedBindings[idx].offset = vertexStartOffset
		a.appliedBindings[idx].buffer = nil

		// Each streamed attribute carries its own slack region.
		curBufferOffset += destStride*streamedVertexCount + maxAttributeDataSize*int(indexRange.Start)
	}

	return nil
}
