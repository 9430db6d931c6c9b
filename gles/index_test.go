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

package gles_test

import (
	"encoding/binary"
	"testing"

	"github.com/google/gapid/core/assert"
	"github.com/google/gapid/core/log"

	"github.com/glbridge/glbridge/gles"
)

func u16Bytes(vals ...uint16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func u32Bytes(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}

func TestComputeIndexRange(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name    string
		ty      gles.IndexType
		data    []byte
		count   int
		restart bool
		want    gles.IndexRange
	}{
		{"bytes", gles.IndexUnsignedByte, []byte{3, 1, 4, 1, 5}, 5, false, gles.IndexRange{Start: 1, End: 5}},
		{"shorts", gles.IndexUnsignedShort, u16Bytes(300, 100, 400), 3, false, gles.IndexRange{Start: 100, End: 400}},
		{"ints", gles.IndexUnsignedInt, u32Bytes(70000, 5, 70001), 3, false, gles.IndexRange{Start: 5, End: 70001}},
		{"prefix only", gles.IndexUnsignedShort, u16Bytes(9, 2, 500), 2, false, gles.IndexRange{Start: 2, End: 9}},
		{"single", gles.IndexUnsignedByte, []byte{7}, 1, false, gles.IndexRange{Start: 7, End: 7}},
		{"restart skipped", gles.IndexUnsignedByte, []byte{2, 0xff, 6}, 3, true, gles.IndexRange{Start: 2, End: 6}},
		{"restart kept", gles.IndexUnsignedByte, []byte{2, 0xff, 6}, 3, false, gles.IndexRange{Start: 2, End: 0xff}},
		{"restart shorts", gles.IndexUnsignedShort, u16Bytes(8, 0xffff, 3), 3, true, gles.IndexRange{Start: 3, End: 8}},
	} {
		got := gles.ComputeIndexRange(test.ty, test.data, test.count, test.restart)
		assert.For(ctx, "%s", test.name).That(got).Equals(test.want)
	}
}

func TestIndexRangeVertexCount(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "single").That(gles.IndexRange{Start: 4, End: 4}.VertexCount()).Equals(1)
	assert.For(ctx, "span").That(gles.IndexRange{Start: 2, End: 7}.VertexCount()).Equals(6)
}

func TestComputeBindingElementCount(t *testing.T) {
	ctx := log.Testing(t)
	// Per-vertex bindings fetch one element per vertex; instanced bindings
	// fetch ceil(instances / divisor) elements.
	assert.For(ctx, "per vertex").That(gles.ComputeBindingElementCount(0, 7, 100)).Equals(7)
	assert.For(ctx, "exact").That(gles.ComputeBindingElementCount(2, 3, 10)).Equals(5)
	assert.For(ctx, "rounded up").That(gles.ComputeBindingElementCount(4, 3, 10)).Equals(3)
	assert.For(ctx, "one instance").That(gles.ComputeBindingElementCount(3, 9, 1)).Equals(1)
}
