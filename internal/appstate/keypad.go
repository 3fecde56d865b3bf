package appstate

import (
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/geom"
)

// keypad stands in for a game controller: arrow keys are the stick and
// space is the A button. It only starts reporting once one of those keys
// has been touched so the cursor overlay stays hidden for mouse users.
type keypad struct {
	held map[key.Code]bool
	used bool
}

func newKeypad() *keypad { return &keypad{held: make(map[key.Code]bool)} }

var keypadCodes = map[key.Code]bool{
	key.CodeLeftArrow:  true,
	key.CodeRightArrow: true,
	key.CodeUpArrow:    true,
	key.CodeDownArrow:  true,
	key.CodeSpacebar:   true,
}

// Key records a press or release. It reports whether the key belongs to
// the keypad.
func (k *keypad) Key(e key.Event) bool {
	if !keypadCodes[e.Code] {
		return false
	}
	switch e.Direction {
	case key.DirPress:
		k.held[e.Code] = true
		k.used = true
	case key.DirRelease:
		delete(k.held, e.Code)
	}
	return true
}

// Active reports whether polls should be fed to the canvas.
func (k *keypad) Active() bool { return k.used }

// Release drops every held key, as when the window loses focus.
func (k *keypad) Release() { clear(k.held) }

// Poll samples the held keys as one controller event.
func (k *keypad) Poll(now time.Time) gamepad.Event {
	var stick geom.Point
	if k.held[key.CodeLeftArrow] {
		stick.X--
	}
	if k.held[key.CodeRightArrow] {
		stick.X++
	}
	if k.held[key.CodeUpArrow] {
		stick.Y++
	}
	if k.held[key.CodeDownArrow] {
		stick.Y--
	}
	var buttons gamepad.Buttons
	if k.held[key.CodeSpacebar] {
		buttons = buttons.With(gamepad.ButtonA)
	}
	return gamepad.Event{Time: now, Stick: stick, Buttons: buttons}
}
