package model

import "github.com/samcharles93/skipwalk/internal/tensor"

// View is a mutable window onto one embedding row.
type View []float32

// Scale returns a read-only view of v multiplied by f. Nothing is copied; the
// factor is applied when the view is consumed.
func (v View) Scale(f float32) ConstView {
	return ConstView{data: v, scale: f}
}

// Const returns v as a read-only view.
func (v View) Const() ConstView {
	return ConstView{data: v, scale: 1}
}

// Add accumulates c into v element-wise.
func (v View) Add(c ConstView) {
	tensor.Axpy(v, c.scale, c.data)
}

// Dot returns the inner product of v and o.
func (v View) Dot(o View) float32 {
	return tensor.Dot(v, o)
}

// Zero resets every element of v.
func (v View) Zero() {
	clear(v)
}

// ConstView is a read-only, lazily scaled row.
type ConstView struct {
	data  []float32
	scale float32
}

// At returns element i with the scale applied.
func (c ConstView) At(i int) float32 {
	return c.data[i] * c.scale
}

// Len returns the number of elements.
func (c ConstView) Len() int {
	return len(c.data)
}

// Scale multiplies the pending factor by f.
func (c ConstView) Scale(f float32) ConstView {
	return ConstView{data: c.data, scale: c.scale * f}
}

// AppendTo appends the scaled elements to dst.
func (c ConstView) AppendTo(dst []float32) []float32 {
	for _, x := range c.data {
		dst = append(dst, x*c.scale)
	}
	return dst
}
