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
	"fmt"
	"math"
)

// PointBuffers - pre-allocated output arrays for projected voxels, shared
// across the per-slice projection calls of one volume build. X/Y/Z hold voxel
// grid indices permuted to the display convention, C holds the expression
// value.
type PointBuffers struct {
	X []float32
	Y []float32
	Z []float32
	C []float32
}

func MakePointBuffers(capacity int) *PointBuffers {
	return &PointBuffers{
		X: make([]float32, capacity),
		Y: make([]float32, capacity),
		Z: make([]float32, capacity),
		C: make([]float32, capacity),
	}
}

func (b *PointBuffers) Capacity() int {
	return len(b.C)
}

// ProjectVoxels - converts one slice's stripped expression samples into atlas
// voxels, appending into buf starting at cursor and returning the advanced
// cursor. Coordinates are physical metres, already registered to the atlas;
// the voxel index per axis is round(coord * 1e6 / resolutionUm). Samples are
// dropped when any axis leaves the reference grid, when the annotation volume
// is 0 at the voxel (no structure assigned) or when the value is below
// minValue.
//
// The X/Y/Z buffers receive the (z, x, y) permutation of the voxel index,
// which is the axis order the display layer expects. Callers must not share
// one buffer set across concurrent slice projections.
func ProjectVoxels(values []float32, coords [][3]float32, annotation *IntVolume, resolutionUm float64, minValue float32, buf *PointBuffers, cursor int) (int, error) {
	if len(values) != len(coords) {
		return cursor, fmt.Errorf("got %v values but %v coordinates", len(values), len(coords))
	}

	shape := annotation.Shape
	for i, c := range coords {
		x := int(math.Round(float64(c[0]) * 1e6 / resolutionUm))
		y := int(math.Round(float64(c[1]) * 1e6 / resolutionUm))
		z := int(math.Round(float64(c[2]) * 1e6 / resolutionUm))

		if x < 0 || x >= shape[0] || y < 0 || y >= shape[1] || z < 0 || z >= shape[2] {
			continue
		}
		if annotation.At(x, y, z) == 0 {
			continue
		}
		if values[i] < minValue {
			continue
		}

		if cursor >= buf.Capacity() {
			return cursor, fmt.Errorf("point buffers full at %v voxels", buf.Capacity())
		}
		buf.X[cursor] = float32(z)
		buf.Y[cursor] = float32(x)
		buf.Z[cursor] = float32(y)
		buf.C[cursor] = values[i]
		cursor++
	}

	return cursor, nil
}
