// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package atlas

import (
	"math"
	"testing"
)

func TestInterpolateFillsFromDonor(t *testing.T) {
	shape := [3]int{8, 8, 8}
	annotation := MakeIntVolume(shape)
	for i := range annotation.Data {
		annotation.Data[i] = 1
	}

	vol := MakeVolume(shape, ValueInside)
	vol.Set(4, 4, 4, 10)

	// radius = 8 / 2 = 4
	out, err := Interpolate(annotation, vol, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Single donor, so every voxel it reaches takes its value exactly
	if got := out.At(4, 4, 0); got != 10 {
		t.Errorf("voxel at distance 4 = %v, want 10", got)
	}
	if got := out.At(2, 3, 4); got != 10 {
		t.Errorf("voxel at distance sqrt(5) = %v, want 10", got)
	}
	if got := out.At(4, 4, 4); got != 10 {
		t.Errorf("donor itself = %v, want 10", got)
	}
	// Out of the donor's radius, left unfilled
	if got := out.At(0, 0, 0); got != ValueInside {
		t.Errorf("voxel out of range = %v, want %v", got, ValueInside)
	}

	// The input volume is untouched
	if got := vol.At(4, 4, 0); got != ValueInside {
		t.Errorf("input volume modified: %v", got)
	}
}

func TestInterpolateWeighsByDistance(t *testing.T) {
	shape := [3]int{8, 8, 8}
	annotation := MakeIntVolume(shape)
	for i := range annotation.Data {
		annotation.Data[i] = 1
	}

	vol := MakeVolume(shape, ValueInside)
	vol.Set(2, 4, 4, 2)
	vol.Set(6, 4, 4, 10)

	out, err := Interpolate(annotation, vol, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equidistant from both donors, so the weights cancel
	got := float64(out.At(4, 4, 4))
	if math.Abs(got-6) > 1e-4 {
		t.Errorf("midpoint = %v, want 6", got)
	}

	// Near the low donor the high one contributes much less
	got = float64(out.At(3, 4, 4))
	if got <= 2 || got >= 4 {
		t.Errorf("voxel near low donor = %v, want between 2 and 4", got)
	}
}

func TestInterpolateRespectsStructures(t *testing.T) {
	shape := [3]int{8, 8, 8}
	annotation := MakeIntVolume(shape)
	for i := range annotation.Data {
		annotation.Data[i] = 1
	}
	annotation.Set(4, 4, 6, 2)

	vol := MakeVolume(shape, ValueInside)
	vol.Set(4, 4, 4, 10)

	out, err := Interpolate(annotation, vol, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// In range of the donor but in another structure, so no donor applies
	if got := out.At(4, 4, 6); got != ValueInside {
		t.Errorf("other-structure voxel = %v, want %v", got, ValueInside)
	}
	// Exterior sentinels are never touched
	volB := FillBorders(annotation, BorderOptions{})
	outB, err := Interpolate(annotation, volB, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := outB.At(0, 0, 0); got != ValueOutside {
		t.Errorf("exterior voxel = %v, want %v", got, ValueOutside)
	}
}

func TestFillSliceValuesAveragesCollisions(t *testing.T) {
	shape := [3]int{5, 5, 5}
	annotation := MakeIntVolume(shape)
	for x := 1; x < 4; x++ {
		for y := 1; y < 4; y++ {
			for z := 1; z < 4; z++ {
				annotation.Set(x, y, z, 1)
			}
		}
	}
	vol := FillBorders(annotation, BorderOptions{})
	counts := MakeIntVolume(shape)

	// Two points on voxel (2,2,2), one on (1,1,1), one on the exterior. The
	// buffers hold the (z,x,y) display permutation.
	buf := MakePointBuffers(8)
	points := [][4]float32{
		{2, 2, 2, 4},
		{2, 2, 2, 8},
		{1, 1, 1, 3},
		{0, 0, 0, 99},
	}
	for i, p := range points {
		buf.X[i], buf.Y[i], buf.Z[i], buf.C[i] = p[0], p[1], p[2], p[3]
	}

	if err := FillSliceValues(buf, len(points), vol, counts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := AverageSliceValues(vol, counts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := vol.At(2, 2, 2); got != 6 {
		t.Errorf("collided voxel = %v, want the average 6", got)
	}
	if got := vol.At(1, 1, 1); got != 3 {
		t.Errorf("single-sample voxel = %v, want 3", got)
	}
	if got := vol.At(0, 0, 0); got != ValueOutside {
		t.Errorf("exterior voxel = %v, want %v", got, ValueOutside)
	}
}
