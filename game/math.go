package game

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/internal"
)

// Clamp32 clamps v into [lo, hi].
func Clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign32 returns -1, 0 or 1 depending on the sign of v.
func Sign32(v float32) float32 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// Lerp32 linearly interpolates between a and b by t.
func Lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smootherstep is the 5th-order smoothstep of t in [0, 1]. It has zero first
// and second derivatives at both endpoints.
func Smootherstep(t float32) float32 {
	t = Clamp32(t, 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// SineEaseInOut eases t in [0, 1] along a half sine wave.
func SineEaseInOut(t float32) float32 {
	t = Clamp32(t, 0, 1)
	return 0.5 - 0.5*math32.Cos(t*math32.Pi)
}

// SineEaseOut eases t in [0, 1] along a quarter sine wave, steep at the start.
func SineEaseOut(t float32) float32 {
	t = Clamp32(t, 0, 1)
	return math32.Sin(t * math32.Pi / 2)
}

// Median32 returns the median of vals. The input slice is not modified.
func Median32(vals []float32) float32 {
	switch len(vals) {
	case 0:
		return 0
	case 1:
		return vals[0]
	}
	scratchPtr := internal.Float32SlicePool.Get().(*[]float32)
	scratch := append((*scratchPtr)[:0], vals...)
	sort.Slice(scratch, func(i, j int) bool { return scratch[i] < scratch[j] })
	med := scratch[len(scratch)/2]
	*scratchPtr = scratch[:0]
	internal.Float32SlicePool.Put(scratchPtr)
	return med
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are close enough
// to each other by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3HzDist returns the horizontal (XZ plane) length of vec3.
func Vec3HzDist(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(vec3.X()*vec3.X() + vec3.Z()*vec3.Z())
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// IsFiniteVec reports whether every component of vec is finite.
func IsFiniteVec(vec mgl32.Vec3) bool {
	return IsFinite(vec.X()) && IsFinite(vec.Y()) && IsFinite(vec.Z())
}
