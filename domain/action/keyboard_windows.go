//go:build windows

package action

import (
	"golang.org/x/sys/windows"

	"github.com/soocke/note-bot-go/apperr"
)

const (
	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	mapvkVKToVSC         = 0
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent       = user32.NewProc("keybd_event")
	procMapVirtualKeyW   = user32.NewProc("MapVirtualKeyW")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// Keyboard emits synthetic key events and polls physical key state through
// the Win32 API. The zero value is ready to use.
type Keyboard struct{}

// NewKeyboard returns the platform keyboard.
func NewKeyboard() *Keyboard { return &Keyboard{} }

// KeyDown presses key. The scan code is sent alongside the virtual key so
// games reading DirectInput see the event.
func (k *Keyboard) KeyDown(key string) error {
	return k.send("action.keydown", key, 0)
}

// KeyUp releases key.
func (k *Keyboard) KeyUp(key string) error {
	return k.send("action.keyup", key, keyeventfKeyUp)
}

func (k *Keyboard) send(op, key string, flags uintptr) error {
	vk, ok := ParseVK(key)
	if !ok {
		return apperr.Newf(apperr.KindInput, op, "unknown key %q", key)
	}
	if err := procKeybdEvent.Find(); err != nil {
		return apperr.Wrap(err, apperr.KindInput, op, "keybd_event unavailable")
	}
	scan, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVKToVSC)
	if extendedKey(vk) {
		flags |= keyeventfExtendedKey
	}
	_, _, _ = procKeybdEvent.Call(uintptr(vk), scan&0xFF, flags, 0)
	return nil
}

// Pressed reports whether key is currently held down.
func (k *Keyboard) Pressed(key string) bool {
	vk, ok := ParseVK(key)
	if !ok {
		return false
	}
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}
