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

// The vstrace command runs a scripted sequence of vertex state changes and
// draw calls against a simulated device, printing the stream of native calls
// the synchronization engine emits. It makes the effect of the state diffing,
// client data streaming and driver workarounds visible without a GPU.
package main

import (
	"context"
	"flag"

	"github.com/google/gapid/core/app"
	"github.com/google/gapid/core/log"

	"github.com/glbridge/glbridge/gl"
	"github.com/glbridge/glbridge/gles"
	"github.com/glbridge/glbridge/vertexsync"
)

var (
	binding = flag.Bool("binding", false, "Simulate a device with the vertex attribute binding capability")
	shift   = flag.Bool("shift-instanced", false, "Simulate a device that needs instanced array data shifted by the draw's first vertex")
	check   = flag.Bool("check", true, "Validate the applied state against the device after each draw")
)

func main() {
	app.Name = "vstrace"
	app.ShortHelp = "Traces the native calls emitted by vertex state synchronization"
	app.Run(run)
}

func run(ctx context.Context) error {
	device := newTraceDevice(ctx)
	cache := gl.NewStateCache(device)
	caps := gl.Capabilities{
		MaxVertexAttribs:    gles.MaxVertexAttribs,
		VertexAttribBinding: *binding,
	}
	features := gl.Features{ShiftInstancedArrayDataWithExtraOffset: *shift}

	va := gles.NewVertexArray()
	arr := vertexsync.New(device, cache, caps, features, va)
	defer arr.Destroy(ctx)
	arr.ApplyActiveAttribLocationsMask(ctx, 1<<0|1<<1)

	positions := gles.NewBuffer(device.GenBuffer())
	cache.BindBuffer(gl.ArrayBuffer, positions.ID())
	positions.Upload(device, gl.ArrayBuffer, make([]byte, 12*64), gl.StaticDraw)

	float3 := gles.VertexFormat{Count: 3, Type: gl.Float}
	float2 := gles.VertexFormat{Count: 2, Type: gl.Float}

	log.I(ctx, "-- draw 1: buffer-backed positions, client-memory texcoords --")
	va.EnableAttrib(0, true)
	va.SetAttribPointer(0, float3, positions, 0, 12, nil)
	va.EnableAttrib(1, true)
	va.SetAttribPointer(1, float2, nil, 0, 8, make([]byte, 8*64))
	if err := draw(ctx, arr, va, &vertexsync.DrawCall{Count: 3, InstanceCount: 1}); err != nil {
		return err
	}

	log.I(ctx, "-- draw 2: identical state, expecting silence --")
	va.EnableAttrib(0, true)
	va.SetAttribPointer(0, float3, positions, 0, 12, nil)
	if err := draw(ctx, arr, va, &vertexsync.DrawCall{Count: 3, InstanceCount: 1}); err != nil {
		return err
	}

	log.I(ctx, "-- draw 3: client-memory indices --")
	indices := []byte{0, 1, 2, 2, 1, 3}
	if err := draw(ctx, arr, va, &vertexsync.DrawCall{
		Count:         6,
		InstanceCount: 1,
		IndexType:     gles.IndexUnsignedByte,
		IndexData:     indices,
	}); err != nil {
		return err
	}

	log.I(ctx, "-- draw 4: instanced, non-zero first vertex --")
	va.SetBindingDivisor(0, 1)
	if err := draw(ctx, arr, va, &vertexsync.DrawCall{First: 4, Count: 3, InstanceCount: 8}); err != nil {
		return err
	}

	return nil
}

func draw(ctx context.Context, arr *vertexsync.Array, va *gles.VertexArray, dc *vertexsync.DrawCall) error {
	if err := arr.SyncState(ctx, &va.Dirty); err != nil {
		return err
	}
	offset, err := arr.SyncDrawState(ctx, dc)
	if err != nil {
		return err
	}
	if dc.IndexType != gles.IndexNone {
		log.I(ctx, "draw would read indices at byte offset %d", offset)
	}
	if *check {
		if n := arr.Validate(ctx); n > 0 {
			log.E(ctx, "%d state mismatches after sync", n)
		}
	}
	return nil
}
