package irradiance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Field holds one value per sample, laid out row-major over Shape. Samples
// whose value is NaN or ±Inf are masked: they keep their position and raw
// value but are left out of statistics.
type Field struct {
	shape  []int
	values []float64
	mask   []bool
	units  string
}

// NewField wraps values in a field of the given shape. The product of shape
// must equal len(values).
func NewField(values []float64, shape []int, units string) (*Field, error) {
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("negative dimension in shape %v", shape)
		}
		n *= s
	}
	if len(shape) == 0 || n != len(values) {
		return nil, fmt.Errorf("cannot reshape %d values into %v", len(values), shape)
	}

	f := &Field{
		shape:  append([]int(nil), shape...),
		values: append([]float64(nil), values...),
		mask:   make([]bool, len(values)),
		units:  units,
	}
	for i, v := range f.values {
		f.mask[i] = math.IsNaN(v) || math.IsInf(v, 0)
	}
	return f, nil
}

// Shape returns the per-axis sample counts.
func (f *Field) Shape() []int { return append([]int(nil), f.shape...) }

// Units returns the unit tag of the values.
func (f *Field) Units() string { return f.units }

// Len returns the total number of samples, masked or not.
func (f *Field) Len() int { return len(f.values) }

// Values returns a copy of the flat values, masked entries included.
func (f *Field) Values() []float64 { return append([]float64(nil), f.values...) }

// Mask returns a copy of the mask; true marks an excluded sample.
func (f *Field) Mask() []bool { return append([]bool(nil), f.mask...) }

// Masked reports whether flat sample i is excluded.
func (f *Field) Masked(i int) bool { return f.mask[i] }

// Index converts per-axis indices into a flat offset. It panics when the
// number of indices or any index is out of range.
func (f *Field) Index(idx ...int) int {
	if len(idx) != len(f.shape) {
		panic(fmt.Sprintf("irradiance: %d indices for shape %v", len(idx), f.shape))
	}
	flat := 0
	for axis, i := range idx {
		if i < 0 || i >= f.shape[axis] {
			panic(fmt.Sprintf("irradiance: index %d out of range for axis %d of shape %v", i, axis, f.shape))
		}
		flat = flat*f.shape[axis] + i
	}
	return flat
}

// At returns the value at the given per-axis indices and whether it is
// unmasked.
func (f *Field) At(idx ...int) (float64, bool) {
	i := f.Index(idx...)
	return f.values[i], !f.mask[i]
}

// Valid returns the unmasked values in flat order.
func (f *Field) Valid() []float64 {
	out := make([]float64, 0, len(f.values))
	for i, v := range f.values {
		if !f.mask[i] {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of unmasked samples.
func (f *Field) Count() int {
	n := 0
	for _, m := range f.mask {
		if !m {
			n++
		}
	}
	return n
}

// Mean returns the mean of the unmasked values, or NaN if there are none.
func (f *Field) Mean() float64 {
	valid := f.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}

// Max returns the largest unmasked value, or NaN if there are none.
func (f *Field) Max() float64 {
	valid := f.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Max(valid)
}

// Min returns the smallest unmasked value, or NaN if there are none.
func (f *Field) Min() float64 {
	valid := f.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	return floats.Min(valid)
}

// Scale returns a copy with every value multiplied by k and tagged with
// units. Masked samples stay masked.
func (f *Field) Scale(k float64, units string) *Field {
	out := &Field{
		shape:  append([]int(nil), f.shape...),
		values: append([]float64(nil), f.values...),
		mask:   make([]bool, len(f.mask)),
		units:  units,
	}
	floats.Scale(k, out.values)
	for i, v := range out.values {
		out.mask[i] = f.mask[i] || math.IsNaN(v) || math.IsInf(v, 0)
	}
	return out
}
