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

// Package atlas implements the volumetric side of the pipeline: projecting
// per-slice expression values into the reference atlas grid, classifying
// voxels against the annotation volume and interpolating sparse slice data
// into dense 3D fields.
package atlas

import (
	"fmt"
)

// Sentinel values of a volume field. Anything >= 0 is an assigned expression
// value.
const (
	// ValueOutside - voxel outside the brain (or outside the kept structures)
	ValueOutside = float32(-2.0)
	// ValueBorder - voxel on a structure border
	ValueBorder = float32(-0.1)
	// ValueInside - voxel inside a structure, not yet assigned
	ValueInside = float32(-0.01)
	// ValueNearBorder - voxel adjacent to a border, only set when requested
	ValueNearBorder = float32(0.2)
)

// Volume - dense 3D float32 field over the atlas voxel grid, flat backing in
// x-major order
type Volume struct {
	Shape [3]int
	Data  []float32
}

func MakeVolume(shape [3]int, fill float32) *Volume {
	v := &Volume{
		Shape: shape,
		Data:  make([]float32, shape[0]*shape[1]*shape[2]),
	}
	if fill != 0 {
		for i := range v.Data {
			v.Data[i] = fill
		}
	}
	return v
}

func (v *Volume) index(x, y, z int) int {
	return (x*v.Shape[1]+y)*v.Shape[2] + z
}

func (v *Volume) At(x, y, z int) float32 {
	return v.Data[v.index(x, y, z)]
}

func (v *Volume) Set(x, y, z int, value float32) {
	v.Data[v.index(x, y, z)] = value
}

// Clone - deep copy, used where a kernel reads the original while writing
func (v *Volume) Clone() *Volume {
	out := &Volume{Shape: v.Shape, Data: make([]float32, len(v.Data))}
	copy(out.Data, v.Data)
	return out
}

// IntVolume - dense 3D int32 field, the shape the annotation atlas comes in.
// 0 means outside the brain, >0 is a structure id.
type IntVolume struct {
	Shape [3]int
	Data  []int32
}

func MakeIntVolume(shape [3]int) *IntVolume {
	return &IntVolume{
		Shape: shape,
		Data:  make([]int32, shape[0]*shape[1]*shape[2]),
	}
}

func (v *IntVolume) index(x, y, z int) int {
	return (x*v.Shape[1]+y)*v.Shape[2] + z
}

func (v *IntVolume) At(x, y, z int) int32 {
	return v.Data[v.index(x, y, z)]
}

func (v *IntVolume) Set(x, y, z int, value int32) {
	v.Data[v.index(x, y, z)] = value
}

func checkSameShape(a [3]int, b [3]int) error {
	if a != b {
		return fmt.Errorf("volume shapes differ: %v vs %v", a, b)
	}
	return nil
}
