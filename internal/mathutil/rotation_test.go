package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "component %d", i)
	}
}

func TestRotX_LiftsLocalZToWorldY(t *testing.T) {
	r := RotX(-math.Pi / 2)
	assertVec(t, Vec3{0, 1, 0}, r.MulVec3(Vec3{0, 0, 1}))
	assertVec(t, Vec3{0, 0, -1}, r.MulVec3(Vec3{0, 1, 0}))
	assertVec(t, Vec3{1, 0, 0}, r.MulVec3(Vec3{1, 0, 0}))
}

func TestEulerXYZ(t *testing.T) {
	assert.Equal(t, Mat3Identity(), EulerXYZ(Vec3{}))

	e := Vec3{0.3, -0.7, 1.1}
	want := RotX(0.3).MulVec3(RotY(-0.7).MulVec3(RotZ(1.1).MulVec3(Vec3{1, 2, 3})))
	assertVec(t, want, EulerXYZ(e).MulVec3(Vec3{1, 2, 3}))
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, a.Cross(b))
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1.0, Vec3{3, 4, 12}.Normalize().Len(), 1e-12)
	assert.True(t, a.IsFinite())
	assert.False(t, Vec3{math.NaN(), 0, 0}.IsFinite())
	assert.False(t, Vec3{0, math.Inf(1), 0}.IsFinite())
}

func TestDeg2Rad(t *testing.T) {
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-15)
}
