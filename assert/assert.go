package assert

import (
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/rerror"
)

func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		fail(message, args...)
	}
}

// Finite panics if v is NaN or infinite. A non-finite value leaking out of an
// integration step means the force model broke an invariant, never a
// recoverable runtime condition.
func Finite(v float32, what string) {
	if !game.IsFinite(v) {
		fail("non-finite %s: %v", what, v)
	}
}

// FiniteVec panics if any component of vec is NaN or infinite.
func FiniteVec(vec mgl32.Vec3, what string) {
	if !game.IsFiniteVec(vec) {
		fail("non-finite %s: %v", what, vec)
	}
}

func fail(message string, args ...interface{}) {
	err := rerror.New(message, args...)
	sentry.CaptureException(err)
	panic(err)
}
