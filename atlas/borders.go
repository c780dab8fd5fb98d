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

// BorderOptions - controls voxel classification in FillBorders
type BorderOptions struct {
	// DifferentiateBorders marks structure voxels touching the outside (or a
	// non-kept structure) with ValueBorder instead of ValueInside
	DifferentiateBorders bool

	// ColorNearBorders additionally marks the voxels adjacent to a border
	// with ValueNearBorder
	ColorNearBorders bool

	// KeepStructureIDs, when non-empty, restricts processing to voxels whose
	// annotation is in the list. Everything else stays outside.
	KeepStructureIDs []int32
}

// FillBorders - classifies every voxel of the annotation volume into a float
// field: exterior voxels keep ValueOutside, structure voxels become
// ValueInside or, when differentiating, ValueBorder if any of their 26
// neighbors is exterior. The outermost layer of the grid is never processed,
// so it stays exterior.
//
// The neighbor scan exits as soon as a border is found, which keeps the pass
// tractable on full-resolution annotation volumes.
func FillBorders(annotation *IntVolume, opts BorderOptions) *Volume {
	out := MakeVolume(annotation.Shape, ValueOutside)

	var keep map[int32]bool
	if len(opts.KeepStructureIDs) > 0 {
		keep = map[int32]bool{}
		for _, id := range opts.KeepStructureIDs {
			keep[id] = true
		}
	}

	shape := annotation.Shape
	for x := 1; x < shape[0]-1; x++ {
		for y := 1; y < shape[1]-1; y++ {
			for z := 1; z < shape[2]-1; z++ {
				id := annotation.At(x, y, z)
				if id <= 0 {
					continue
				}
				if keep != nil && !keep[id] {
					continue
				}

				if !opts.DifferentiateBorders {
					out.Set(x, y, z, ValueInside)
					continue
				}

				if hasExteriorNeighbor(annotation, keep, x, y, z) {
					out.Set(x, y, z, ValueBorder)
				} else {
					out.Set(x, y, z, ValueInside)
				}
			}
		}
	}

	if opts.ColorNearBorders {
		markNearBorders(out)
	}

	return out
}

func hasExteriorNeighbor(annotation *IntVolume, keep map[int32]bool, x, y, z int) bool {
	for xt := x - 1; xt <= x+1; xt++ {
		for yt := y - 1; yt <= y+1; yt++ {
			for zt := z - 1; zt <= z+1; zt++ {
				id := annotation.At(xt, yt, zt)
				if keep == nil {
					if id == 0 {
						return true
					}
				} else if !keep[id] {
					return true
				}
			}
		}
	}
	return false
}

func markNearBorders(vol *Volume) {
	shape := vol.Shape
	borders := [][3]int{}
	for x := 1; x < shape[0]-1; x++ {
		for y := 1; y < shape[1]-1; y++ {
			for z := 1; z < shape[2]-1; z++ {
				if vol.At(x, y, z) == ValueBorder {
					borders = append(borders, [3]int{x, y, z})
				}
			}
		}
	}

	for _, b := range borders {
		for xt := b[0] - 1; xt <= b[0]+1; xt++ {
			for yt := b[1] - 1; yt <= b[1]+1; yt++ {
				for zt := b[2] - 1; zt <= b[2]+1; zt++ {
					if vol.At(xt, yt, zt) != ValueBorder {
						vol.Set(xt, yt, zt, ValueNearBorder)
					}
				}
			}
		}
	}
}
