package common

// KeyCode identifies a physical key independent of the window backend.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Backends that report other codes (DOM keyCode, Ebiten, tcell) translate into these.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode uint32

const (
	KeyW     KeyCode = 87  // W key (ASCII)
	KeyA     KeyCode = 65  // A key (ASCII)
	KeyS     KeyCode = 83  // S key (ASCII)
	KeyD     KeyCode = 68  // D key (ASCII)
	KeyQ     KeyCode = 81  // Q key (ASCII)
	KeySpace KeyCode = 32  // Spacebar (ASCII)
	KeyEsc   KeyCode = 256 // Escape key (GLFW)

	KeyRight KeyCode = 262 // Right arrow (GLFW)
	KeyLeft  KeyCode = 263 // Left arrow (GLFW)
	KeyDown  KeyCode = 264 // Down arrow (GLFW)
	KeyUp    KeyCode = 265 // Up arrow (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  KeyCode = 340 // Left Shift (GLFW)
	KeyRightShift KeyCode = 344 // Right Shift (GLFW)
)

// domKeyCodes maps legacy DOM KeyboardEvent.keyCode values onto engine key codes.
var domKeyCodes = map[uint32]KeyCode{
	16: KeyLeftShift,
	27: KeyEsc,
	32: KeySpace,
	37: KeyLeft,
	38: KeyUp,
	39: KeyRight,
	40: KeyDown,
	65: KeyA,
	68: KeyD,
	81: KeyQ,
	83: KeyS,
	87: KeyW,
}

// KeyCodeFromDOM translates a browser KeyboardEvent.keyCode into a KeyCode.
//
// Parameters:
//   - code: the DOM keyCode (e.g. 37 for ArrowLeft, 16 for Shift)
//
// Returns:
//   - KeyCode: the engine key code
//   - bool: false if the key has no engine equivalent
func KeyCodeFromDOM(code uint32) (KeyCode, bool) {
	k, ok := domKeyCodes[code]
	return k, ok
}

// IsShift reports whether the key is either shift key.
func (k KeyCode) IsShift() bool {
	return k == KeyLeftShift || k == KeyRightShift
}
