//go:build !windows

package action

import (
	"github.com/soocke/note-bot-go/apperr"
)

// Keyboard is unavailable outside Windows; every event fails with an input
// error wrapping apperr.ErrUnsupported.
type Keyboard struct{}

// NewKeyboard returns the platform keyboard.
func NewKeyboard() *Keyboard { return &Keyboard{} }

func (k *Keyboard) KeyDown(key string) error {
	return apperr.Wrapf(apperr.ErrUnsupported, apperr.KindInput, "action.keydown", "key %q", key)
}

func (k *Keyboard) KeyUp(key string) error {
	return apperr.Wrapf(apperr.ErrUnsupported, apperr.KindInput, "action.keyup", "key %q", key)
}

// Pressed always reports false.
func (k *Keyboard) Pressed(string) bool { return false }
