package maskfx

import "fmt"

// globalDebug enables precondition checks that are too costly for release
// rendering (material type agreement in Compare and UpdateState). Set it
// through SetDebug or Renderer.SetDebugMode.
var globalDebug bool

// SetDebug turns debug assertions on or off for the whole package.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// DebugEnabled reports whether debug assertions are on.
func DebugEnabled() bool {
	return globalDebug
}

// debugCheckSameType panics when two materials of different types meet in an
// operation that requires them to match.
func debugCheckSameType(a, b Material, op string) {
	if a.Type() != b.Type() {
		panic(fmt.Sprintf("maskfx debug: %s between material types %s and %s", op, a.Type(), b.Type()))
	}
}

// mustTexture panics when a required texture argument is nil.
func mustTexture(t Texture, op string) {
	if t == nil {
		panic("maskfx: " + op + " requires a non-nil texture")
	}
}
