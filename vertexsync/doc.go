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

// Package vertexsync reconciles the requested vertex array state of the
// client API with the actual bound state of the native device.
//
// One Array exists per client vertex array object. It owns a cache of the
// state it has pushed to the device so far, and on each synchronization
// applies only the differences the dirty bits point at. At draw time it
// streams attribute and index data that still lives in client memory into
// device buffers, growing them monotonically across draws, and applies
// driver-specific workarounds from the device's feature table.
//
// Everything here runs on the thread that owns the device context.
// Synchronization is a cache refresh, not a semantic state change: callers
// may sync an object they otherwise treat as read-only for the draw.
package vertexsync
