package action

import (
	"strings"
)

// namedKeys maps key tokens to Windows virtual-key codes.
var namedKeys = map[string]byte{
	"BACKSPACE": 0x08,
	"TAB":       0x09,
	"ENTER":     0x0D,
	"RETURN":    0x0D,
	"SHIFT":     0x10,
	"CTRL":      0x11,
	"CONTROL":   0x11,
	"ALT":       0x12,
	"PAUSE":     0x13,
	"ESC":       0x1B,
	"ESCAPE":    0x1B,
	"SPACE":     0x20,
	"LEFT":      0x25,
	"UP":        0x26,
	"RIGHT":     0x27,
	"DOWN":      0x28,
}

// ParseVK converts a key token (e.g. "a", "F3", "esc", "left") into a
// Windows virtual-key code. Recognizes letters, digits, F1..F24 and the
// named keys above. Matching is case-insensitive.
func ParseVK(key string) (byte, bool) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if k == "" {
		return 0, false
	}
	if vk, ok := namedKeys[k]; ok {
		return vk, true
	}
	if len(k) == 1 {
		c := k[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return c, true // letters and digits match their VK codes
		}
		return 0, false
	}
	if k[0] == 'F' && len(k) <= 3 {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 24 {
			return byte(0x70 + (n - 1)), true // VK_F1=0x70
		}
	}
	return 0, false
}

// extendedKey reports whether vk needs KEYEVENTF_EXTENDEDKEY.
func extendedKey(vk byte) bool {
	return vk >= 0x25 && vk <= 0x28
}
