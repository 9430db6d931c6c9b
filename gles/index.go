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
	"encoding/binary"
	"fmt"
)

// IndexType is the element type of an index buffer.
type IndexType int

const (
	// IndexNone marks a non-indexed draw.
	IndexNone IndexType = iota
	IndexUnsignedByte
	IndexUnsignedShort
	IndexUnsignedInt
)

// Size returns the size in bytes of one index of type t.
func (t IndexType) Size() int {
	switch t {
	case IndexUnsignedByte:
		return 1
	case IndexUnsignedShort:
		return 2
	case IndexUnsignedInt:
		return 4
	default:
		panic(fmt.Errorf("Unknown index type %v", int(t)))
	}
}

// RestartValue returns the primitive restart index for type t: the all-ones
// index value.
func (t IndexType) RestartValue() uint32 {
	switch t {
	case IndexUnsignedByte:
		return 0xff
	case IndexUnsignedShort:
		return 0xffff
	case IndexUnsignedInt:
		return 0xffffffff
	default:
		panic(fmt.Errorf("Unknown index type %v", int(t)))
	}
}

func (t IndexType) String() string {
	switch t {
	case IndexNone:
		return "NONE"
	case IndexUnsignedByte:
		return "UNSIGNED_BYTE"
	case IndexUnsignedShort:
		return "UNSIGNED_SHORT"
	case IndexUnsignedInt:
		return "UNSIGNED_INT"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// IndexRange is the inclusive interval of vertex indices referenced by a
// draw call. It is computed per draw and never persisted on the device.
type IndexRange struct {
	Start uint32
	End   uint32
}

// VertexCount returns the number of vertices the range covers.
func (r IndexRange) VertexCount() int {
	return int(r.End-r.Start) + 1
}

// ComputeIndexRange scans count indices of type ty from data and returns the
// range of vertex indices they reference. When primitiveRestart is set, the
// type's restart value is excluded from the range. Index data is read
// little-endian.
func ComputeIndexRange(ty IndexType, data []byte, count int, primitiveRestart bool) IndexRange {
	size := ty.Size()
	restart := ty.RestartValue()
	var lo, hi uint32
	found := false
	for i := 0; i < count; i++ {
		var v uint32
		switch size {
		case 1:
			v = uint32(data[i])
		case 2:
			v = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		case 4:
			v = binary.LittleEndian.Uint32(data[i*4:])
		}
		if primitiveRestart && v == restart {
			continue
		}
		if !found || v < lo {
			lo = v
		}
		if !found || v > hi {
			hi = v
		}
		found = true
	}
	return IndexRange{Start: lo, End: hi}
}
