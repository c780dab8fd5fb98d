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

// limitValueInside - anything above this in a border-filled volume is a voxel
// that slice values may be written into
const limitValueInside = float32(-0.05)

// FillSliceValues - writes the projected points of one volume build (the
// first n entries of buf) into a border-filled volume. Values accumulate per
// voxel, counts tracks how many samples landed on each so AverageSliceValues
// can turn the sums into means. Points landing on exterior or border voxels
// are dropped.
func FillSliceValues(buf *PointBuffers, n int, vol *Volume, counts *IntVolume) error {
	if err := checkSameShape(vol.Shape, counts.Shape); err != nil {
		return err
	}
	if n > buf.Capacity() {
		return fmt.Errorf("asked to fill %v points from buffers of capacity %v", n, buf.Capacity())
	}

	for i := 0; i < n; i++ {
		// Undo the display permutation written by ProjectVoxels
		x := int(math.Round(float64(buf.Y[i])))
		y := int(math.Round(float64(buf.Z[i])))
		z := int(math.Round(float64(buf.X[i])))

		v := vol.At(x, y, z)
		if v <= limitValueInside {
			continue
		}
		if v < 0 {
			vol.Set(x, y, z, buf.C[i])
			counts.Set(x, y, z, 1)
		} else {
			vol.Set(x, y, z, v+buf.C[i])
			counts.Set(x, y, z, counts.At(x, y, z)+1)
		}
	}

	return nil
}

// AverageSliceValues - divides every voxel hit more than once by its hit
// count, completing the accumulation done in FillSliceValues
func AverageSliceValues(vol *Volume, counts *IntVolume) error {
	if err := checkSameShape(vol.Shape, counts.Shape); err != nil {
		return err
	}
	for i, c := range counts.Data {
		if c > 1 {
			vol.Data[i] /= float32(c)
		}
	}
	return nil
}

// Interpolate - fills the gaps between slices of a sparse volume field with
// distance-weighted averages. Every voxel that is unfilled-interior
// (ValueInside) or already carries data gets the exp(-d)-weighted mean of
// all data-carrying voxels within a sphere of radius shape[0]/dividerRadius
// that share its annotation structure. Voxels with no donor in range are
// left as they are. Returns a new volume, the input is not modified.
//
// This is the most expensive kernel, O(voxels * radius^3).
func Interpolate(annotation *IntVolume, vol *Volume, dividerRadius int) (*Volume, error) {
	if err := checkSameShape(annotation.Shape, vol.Shape); err != nil {
		return nil, err
	}
	if dividerRadius <= 0 {
		return nil, fmt.Errorf("divider radius must be positive, got %v", dividerRadius)
	}

	out := vol.Clone()
	shape := vol.Shape
	radius := shape[0] / dividerRadius

	for x := 0; x < shape[0]; x++ {
		for y := 0; y < shape[1]; y++ {
			for z := 0; z < shape[2]; z++ {
				v := vol.At(x, y, z)
				if !(v >= 0 || math.Abs(float64(v-ValueInside)) < 1e-4) {
					continue
				}

				structure := annotation.At(x, y, z)
				var valueSum, weightSum float64

				for xt := max(0, x-radius); xt < min(shape[0], x+radius+1); xt++ {
					for yt := max(0, y-radius); yt < min(shape[1], y+radius+1); yt++ {
						for zt := max(0, z-radius); zt < min(shape[2], z+radius+1); zt++ {
							if vol.At(xt, yt, zt) < 0 {
								continue
							}
							if annotation.At(xt, yt, zt) != structure {
								continue
							}
							dx, dy, dz := x-xt, y-yt, z-zt
							d2 := dx*dx + dy*dy + dz*dz
							if d2 > radius*radius {
								continue
							}
							d := math.Sqrt(float64(d2))
							w := math.Exp(-d)
							valueSum += w * float64(vol.At(xt, yt, zt))
							weightSum += w
						}
					}
				}

				if weightSum > 0 {
					out.Set(x, y, z, float32(valueSum/weightSum))
				}
			}
		}
	}

	return out, nil
}
