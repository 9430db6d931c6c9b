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

import (
	"context"

	"github.com/pkg/errors"

	"github.com/glbridge/glbridge/gl"
)

// Buffer is a client API buffer object. It records the name of the backing
// native buffer, keeps a shadow copy of the buffer contents for index range
// queries, and caches the ranges it has already computed. Computing an index
// range means scanning every index in the queried interval, so draws that
// reuse an index buffer must not pay for the scan twice.
type Buffer struct {
	id     gl.BufferID
	data   []byte
	ranges map[rangeKey]IndexRange
}

type rangeKey struct {
	ty               IndexType
	offset           int
	count            int
	primitiveRestart bool
}

// NewBuffer returns a Buffer backed by the native buffer id.
func NewBuffer(id gl.BufferID) *Buffer {
	return &Buffer{id: id}
}

// ID returns the name of the backing native buffer.
func (b *Buffer) ID() gl.BufferID {
	return b.id
}

// Size returns the size of the buffer's storage in bytes.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Data returns the shadow copy of the buffer contents.
func (b *Buffer) Data() []byte {
	return b.data
}

// SetData replaces the shadow copy of the buffer contents and drops the
// cached index ranges.
func (b *Buffer) SetData(data []byte) {
	b.data = append(b.data[:0:0], data...)
	b.ranges = nil
}

// Upload allocates storage for the backing native buffer, fills it with
// data, and updates the shadow copy. The buffer must already be bound to
// target.
func (b *Buffer) Upload(f gl.Functions, target gl.BufferTarget, data []byte, usage gl.BufferUsage) {
	f.BufferData(target, len(data), data, usage)
	b.SetData(data)
}

// IndexRange returns the range of vertex indices referenced by count indices
// of type ty starting offset bytes into the buffer, answering from the cache
// when the same interval was queried before.
func (b *Buffer) IndexRange(ctx context.Context, ty IndexType, offset, count int, primitiveRestart bool) (IndexRange, error) {
	if offset < 0 || count < 0 || offset+count*ty.Size() > len(b.data) {
		return IndexRange{}, errors.Errorf(
			"index range [%d, %d) of %v indices lies outside the %d byte buffer",
			offset, offset+count*ty.Size(), ty, len(b.data))
	}
	key := rangeKey{ty, offset, count, primitiveRestart}
	if r, ok := b.ranges[key]; ok {
		return r, nil
	}
	r := ComputeIndexRange(ty, b.data[offset:], count, primitiveRestart)
	if b.ranges == nil {
		b.ranges = map[rangeKey]IndexRange{}
	}
	b.ranges[key] = r
	return r, nil
}
