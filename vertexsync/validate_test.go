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

package vertexsync_test

import (
	"testing"

	"github.com/google/gapid/core/assert"
	"github.com/google/gapid/core/log"

	"github.com/glbridge/glbridge/gl"
)

func TestValidateCleanState(t *testing.T) {
	ctx := log.Testing(t)
	e := newTestEnv(pointerCaps(), gl.Features{})

	buf := e.newBuffer(floatBytes(0, 0, 0, 1, 1, 1))
	e.va.EnableAttrib(0, true)
	e.va.SetAttribPointer(0, float3, buf, 0, 12, nil)
	e.arr.ApplyActiveAttribLocationsMask(ctx, 1)
	sync(ctx, t, e)

	assert.For(ctx, "mismatches").That(e.arr.Validate(ctx)).Equals(0)
}

func TestValidateWithBindingCapability(t *testing.T) {
	ctx := log.Testing(t)
	e := newTestEnv(bindingCaps(), gl.Features{})

	buf := e.newBuffer(floatBytes(0, 0, 1, 1))
	e.va.EnableAttrib(0, true)
	e.va.SetAttribFormat(0, float2, 0)
	e.va.SetAttribBinding(0, 1)
	e.va.BindVertexBuffer(1, buf, 0, 8)
	e.arr.ApplyActiveAttribLocationsMask(ctx, 1)
	sync(ctx, t, e)

	assert.For(ctx, "mismatches").That(e.arr.Validate(ctx)).Equals(0)
}

func TestValidateAfterStreaming(t *testing.T) {
	ctx := log.Testing(t)
	e := newTestEnv(pointerCaps(), gl.Features{})

	data := floatBytes(0, 0, 0, 1, 1, 1)
	e.va.EnableAttrib(0, true)
	e.va.SetAttribPointer(0, float3, nil, 0, 12, data)
	e.arr.ApplyActiveAttribLocationsMask(ctx, 1)
	sync(ctx, t, e)
	if err := e.arr.SyncClientSideData(ctx, 0, 2, 1); err != nil {
		t.Fatalf("SyncClientSideData returned %v", err)
	}

	assert.For(ctx, "mismatches").That(e.arr.Validate(ctx)).Equals(0)
}

func TestValidateCountsDivergence(t *testing.T) {
	ctx := log.Testing(t)
	e := newTestEnv(pointerCaps(), gl.Features{})

	buf := e.newBuffer(floatBytes(0, 0, 0, 1, 1, 1))
	e.va.EnableAttrib(0, true)
	e.va.SetAttribPointer(0, float3, buf, 0, 12, nil)
	e.arr.ApplyActiveAttribLocationsMask(ctx, 1)
	sync(ctx, t, e)

	// State changed behind the cache's back.
	e.device.bindings[0].stride = 99
	assert.For(ctx, "mismatches").That(e.arr.Validate(ctx)).Equals(1)

	e.device.attribs[0].enabled = false
	assert.For(ctx, "mismatches").That(e.arr.Validate(ctx)).Equals(2)
}
