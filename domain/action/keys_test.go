package action

import "testing"

func TestParseVK(t *testing.T) {
	cases := []struct {
		in   string
		want byte
	}{
		{"a", 'A'},
		{" D ", 'D'},
		{"7", '7'},
		{"F1", 0x70},
		{"f12", 0x7B},
		{"F24", 0x87},
		{"esc", 0x1B},
		{"Escape", 0x1B},
		{"space", 0x20},
		{"left", 0x25},
		{"DOWN", 0x28},
	}
	for _, c := range cases {
		got, ok := ParseVK(c.in)
		if !ok || got != c.want {
			t.Errorf("ParseVK(%q) = %#x %v, want %#x", c.in, got, ok, c.want)
		}
	}
}

func TestParseVK_Unknown(t *testing.T) {
	for _, in := range []string{"", "F0", "F25", "Fx", "numpad9", "?", "ab"} {
		if _, ok := ParseVK(in); ok {
			t.Errorf("ParseVK(%q) should fail", in)
		}
	}
}

func TestExtendedKey(t *testing.T) {
	if !extendedKey(0x25) || !extendedKey(0x28) || extendedKey('A') {
		t.Fatalf("extended key classification wrong")
	}
}
