package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// namedKeys maps raylib keys without a letter or digit form to key codes.
var namedKeys = map[int32]string{
	rl.KeySpace:        "Space",
	rl.KeyEscape:       "Escape",
	rl.KeyEnter:        "Enter",
	rl.KeyTab:          "Tab",
	rl.KeyBackspace:    "Backspace",
	rl.KeyLeft:         "ArrowLeft",
	rl.KeyRight:        "ArrowRight",
	rl.KeyUp:           "ArrowUp",
	rl.KeyDown:         "ArrowDown",
	rl.KeyLeftShift:    "ShiftLeft",
	rl.KeyRightShift:   "ShiftRight",
	rl.KeyLeftControl:  "ControlLeft",
	rl.KeyRightControl: "ControlRight",
	rl.KeyLeftAlt:      "AltLeft",
	rl.KeyRightAlt:     "AltRight",
	rl.KeyF1:           "F1",
	rl.KeyF2:           "F2",
	rl.KeyF3:           "F3",
	rl.KeyF4:           "F4",
	rl.KeyF5:           "F5",
	rl.KeyF6:           "F6",
	rl.KeyF7:           "F7",
	rl.KeyF8:           "F8",
	rl.KeyF9:           "F9",
	rl.KeyF10:          "F10",
	rl.KeyF11:          "F11",
	rl.KeyF12:          "F12",
}

// KeyCode returns the physical key code for a raylib key ("KeyA", "Digit1", "Escape").
// Keys without a code return "".
func KeyCode(key int32) string {
	switch {
	case key >= rl.KeyA && key <= rl.KeyZ:
		return "Key" + string(rune('A'+key-rl.KeyA))
	case key >= rl.KeyZero && key <= rl.KeyNine:
		return "Digit" + string(rune('0'+key-rl.KeyZero))
	}
	return namedKeys[key]
}
