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
	"fmt"

	"github.com/glbridge/glbridge/gl"
)

// VertexFormat describes how the components of one vertex attribute element
// are laid out and interpreted.
type VertexFormat struct {
	// Count is the number of components per element (1 to 4).
	Count int
	// Type is the component type.
	Type gl.AttribType
	// Normalized converts integer components to [0,1] or [-1,1] floats.
	// Never set together with PureInt.
	Normalized bool
	// PureInt delivers the components to the shader as integers.
	PureInt bool
}

// DefaultVertexFormat is the format of a vertex attribute that has never been
// specified: four floats.
var DefaultVertexFormat = VertexFormat{Count: 4, Type: gl.Float}

// ByteSize returns the tightly packed size in bytes of one element.
func (f VertexFormat) ByteSize() int {
	return f.Count * f.Type.Size()
}

func (f VertexFormat) String() string {
	s := fmt.Sprintf("%dx%v", f.Count, f.Type)
	if f.Normalized {
		s += " normalized"
	}
	if f.PureInt {
		s += " integer"
	}
	return s
}

// ComputeBindingElementCount returns the number of elements a binding with
// the given divisor supplies to a draw covering vertexCount vertices and
// instanceCount instances. A divisor of zero advances per vertex; a divisor
// of N advances once every N instances.
func ComputeBindingElementCount(divisor, vertexCount, instanceCount int) int {
	if divisor > 0 {
		return (instanceCount + divisor - 1) / divisor
	}
	return vertexCount
}
