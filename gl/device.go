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

// Capabilities describes what the native device can do. It is filled in once
// when the device is initialized and never changes afterwards.
type Capabilities struct {
	// MaxVertexAttribs is the number of vertex attribute slots the device
	// exposes.
	MaxVertexAttribs int

	// VertexAttribBinding is true when the device supports the explicit
	// separation of attribute formats from vertex buffer bindings
	// (VertexAttribFormat / VertexAttribBinding / BindVertexBuffer /
	// VertexBindingDivisor). Without it, all attribute state is set through
	// the combined VertexAttribPointer entry points.
	VertexAttribBinding bool
}

// Features is the table of driver workarounds enabled for the native device.
// Workarounds are selected from the driver vendor and version when the device
// is initialized, and consulted at synchronization time.
type Features struct {
	// ShiftInstancedArrayDataWithExtraOffset works around drivers that
	// ignore the draw call's first-vertex argument when fetching instanced
	// (divisor > 0) attributes. When enabled, draws with first > 0 stream
	// the affected attribute data shifted so the buggy fetch still reads
	// the right elements.
	ShiftInstancedArrayDataWithExtraOffset bool
}
