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

package gl

import "fmt"

// BufferID is the name of a native buffer object. 0 is never a valid buffer.
type BufferID uint32

// VertexArrayID is the name of a native vertex array object.
type VertexArrayID uint32

// BufferTarget identifies a buffer binding point on the device.
type BufferTarget int

const (
	// ArrayBuffer is the vertex attribute data binding point.
	ArrayBuffer BufferTarget = iota
	// ElementArrayBuffer is the index data binding point. This binding is
	// owned by the currently bound vertex array object.
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("BufferTarget(%d)", int(t))
	}
}

// BufferUsage is the usage hint passed to BufferData.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "STATIC_DRAW"
	case DynamicDraw:
		return "DYNAMIC_DRAW"
	case StreamDraw:
		return "STREAM_DRAW"
	default:
		return fmt.Sprintf("BufferUsage(%d)", int(u))
	}
}

// MapAccess is the access bitfield passed to MapBufferRange.
type MapAccess int

const (
	MapRead MapAccess = 1 << iota
	MapWrite
)

// AttribType is the component type of a vertex attribute.
type AttribType int

const (
	Byte AttribType = iota
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
	HalfFloat
	Float
	Fixed
)

// Size returns the size in bytes of a single component of type t.
func (t AttribType) Size() int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort, HalfFloat:
		return 2
	case Int, UnsignedInt, Float, Fixed:
		return 4
	default:
		panic(fmt.Errorf("Unknown attribute type %v", int(t)))
	}
}

func (t AttribType) String() string {
	switch t {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case Int:
		return "INT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case HalfFloat:
		return "HALF_FLOAT"
	case Float:
		return "FLOAT"
	case Fixed:
		return "FIXED"
	default:
		return fmt.Sprintf("AttribType(%d)", int(t))
	}
}

// Pname identifies a piece of device state readable through GetInteger or
// GetVertexAttrib. These are only used by the diagnostic state validation
// path.
type Pname int

const (
	VertexArrayBinding Pname = iota
	ElementArrayBufferBinding
	MaxVertexAttribs
	VertexAttribArrayEnabled
	VertexAttribArraySize
	VertexAttribArrayType
	VertexAttribArrayNormalized
	VertexAttribArrayInteger
	VertexAttribArrayStride
	VertexAttribArrayDivisor
	VertexAttribArrayBufferBinding
	VertexAttribRelativeOffset
	VertexAttribBindingIndex
)
