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

// Package gles models the client-facing vertex array state of the GLES-like
// API: attributes, vertex buffer bindings, index buffers and the dirty bits
// that record which of them changed since the device was last synchronized.
//
// The types here are the requested state; what has actually reached the
// device is tracked separately by package vertexsync.
package gles
