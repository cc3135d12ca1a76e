package interact

import (
	"strings"

	"github.com/npillmayer/glyphedit/geom"
)

// Button is a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Mods is a set of keyboard modifiers held during an event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all modifiers in m are held.
func (mods Mods) Has(m Mods) bool {
	return mods&m == m
}

func (mods Mods) String() string {
	var parts []string
	if mods.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if mods.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if mods.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// PointerEvent is a pointer press, move or release at screen position (X, Y).
type PointerEvent struct {
	X, Y   float64
	Button Button
	Mods   Mods
}

// Pos returns the screen position of ev.
func (ev PointerEvent) Pos() geom.Vec {
	return geom.V(ev.X, ev.Y)
}

// Key is a key the controller reacts to. Letter keys are reported
// independently of the keyboard layout's case.
type Key uint8

const (
	KeyNone Key = iota
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
)

var keyNames = [...]string{"none", "delete", "backspace", "escape", "enter",
	"left", "right", "up", "down", "a", "c", "v", "x", "y", "z"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "key?"
}

// ParseKey maps a key name as returned by Key.String to a Key.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(name)
	for i, n := range keyNames {
		if n == name && i > 0 {
			return Key(i), true
		}
	}
	return KeyNone, false
}
