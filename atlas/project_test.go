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
	"testing"
)

const testResolutionUm = 25.0

// physical metre coordinate that lands on the given voxel index
func voxelCoord(i int) float32 {
	return float32(float64(i) * testResolutionUm / 1e6)
}

func TestProjectVoxels(t *testing.T) {
	annotation := MakeIntVolume([3]int{10, 10, 10})
	annotation.Set(2, 3, 4, 7)
	annotation.Set(5, 5, 5, 7)

	values := []float32{1.5, 2.5, 3.5, 4.5, 0.1}
	coords := [][3]float32{
		{voxelCoord(2), voxelCoord(3), voxelCoord(4)},  // kept
		{voxelCoord(5), voxelCoord(5), voxelCoord(5)},  // kept
		{voxelCoord(12), voxelCoord(3), voxelCoord(4)}, // outside the grid
		{voxelCoord(0), voxelCoord(0), voxelCoord(0)},  // annotation 0
		{voxelCoord(5), voxelCoord(5), voxelCoord(5)},  // below minValue
	}

	buf := MakePointBuffers(8)
	cursor, err := ProjectVoxels(values, coords, annotation, testResolutionUm, 0.5, buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != 2 {
		t.Fatalf("cursor = %v, want 2", cursor)
	}

	// (z, x, y) display permutation
	if buf.X[0] != 4 || buf.Y[0] != 2 || buf.Z[0] != 3 || buf.C[0] != 1.5 {
		t.Errorf("first point = (%v,%v,%v,%v), want (4,2,3,1.5)", buf.X[0], buf.Y[0], buf.Z[0], buf.C[0])
	}
	if buf.X[1] != 5 || buf.Y[1] != 5 || buf.Z[1] != 5 || buf.C[1] != 2.5 {
		t.Errorf("second point = (%v,%v,%v,%v), want (5,5,5,2.5)", buf.X[1], buf.Y[1], buf.Z[1], buf.C[1])
	}

	// A second slice appends after the first
	cursor, err = ProjectVoxels(values[:1], coords[:1], annotation, testResolutionUm, 0, buf, cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != 3 || buf.C[2] != 1.5 {
		t.Errorf("append: cursor = %v, C[2] = %v", cursor, buf.C[2])
	}
}

func TestProjectVoxelsBufferFull(t *testing.T) {
	annotation := MakeIntVolume([3]int{4, 4, 4})
	annotation.Set(1, 1, 1, 3)

	coord := [3]float32{voxelCoord(1), voxelCoord(1), voxelCoord(1)}
	buf := MakePointBuffers(1)

	cursor, err := ProjectVoxels([]float32{1}, [][3]float32{coord}, annotation, testResolutionUm, 0, buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = ProjectVoxels([]float32{1}, [][3]float32{coord}, annotation, testResolutionUm, 0, buf, cursor)
	if err == nil {
		t.Error("expected an error when the buffers are full")
	}
}

func TestProjectVoxelsLengthMismatch(t *testing.T) {
	annotation := MakeIntVolume([3]int{4, 4, 4})
	buf := MakePointBuffers(1)
	_, err := ProjectVoxels([]float32{1, 2}, [][3]float32{{0, 0, 0}}, annotation, testResolutionUm, 0, buf, 0)
	if err == nil {
		t.Error("expected an error on mismatched inputs")
	}
}
