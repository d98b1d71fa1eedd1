package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Event{Key: KeyRune, Rune: 'a'}},
		{"Z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModShift}},
		{"+", Event{Key: KeyRune, Rune: '+'}},
		{"=", Event{Key: KeyRune, Rune: '='}},
		{"-", Event{Key: KeyRune, Rune: '-'}},
		{"Space", Event{Key: KeyRune, Rune: ' '}},
		{"Enter", Event{Key: KeyEnter}},
		{"esc", Event{Key: KeyEscape}},
		{"F5", Event{Key: KeyF5}},
		{"Ctrl+Z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
		{"ctrl+z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
		{"Ctrl+Shift+Z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl | ModShift}},
		{"Ctrl+Shift+z", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl | ModShift}},
		{"Shift+Left", Event{Key: KeyLeft, Modifiers: ModShift}},
		{"Alt+Shift+Right", Event{Key: KeyRight, Modifiers: ModAlt | ModShift}},
		{"Ctrl++", Event{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
		{"Shift+=", Event{Key: KeyRune, Rune: '='}},
		{"<C-z>", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
		{"<S-Left>", Event{Key: KeyLeft, Modifiers: ModShift}},
		{"<CR>", Event{Key: KeyEnter}},
		{"<C-->", Event{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"nosuchkey", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	specs := []string{
		"a", "Z", "+", "Space", "Left", "Ctrl+Left", "Ctrl+Shift+Z",
		"Ctrl+Y", "Alt+Shift+Right", "Delete", "Ctrl++", "F12",
	}
	for _, spec := range specs {
		ev := MustParse(spec)
		back, err := Parse(ev.String())
		if err != nil {
			t.Errorf("Parse(%q) error = %v", ev.String(), err)
			continue
		}
		if back != ev {
			t.Errorf("%q -> %q -> %#v, want %#v", spec, ev.String(), back, ev)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('z', ModCtrl|ModShift), "Ctrl+Shift+Z"},
		{NewRuneEvent('Z', ModNone), "Shift+Z"},
		{NewRuneEvent('q', ModNone), "q"},
		{NewSpecialEvent(KeyLeft, ModAlt|ModShift), "Alt+Shift+Left"},
		{NewRuneEvent(' ', ModNone), "Space"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVimString(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Ctrl+Z", "<C-z>"},
		{"Enter", "<CR>"},
		{"Shift+Left", "<S-Left>"},
		{"x", "x"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.spec).VimString(); got != tt.want {
			t.Errorf("VimString(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestPrintableText(t *testing.T) {
	if ev := NewRuneEvent('A', ModNone); !ev.IsPrintable() || ev.Text() != 'A' {
		t.Errorf("'A': printable=%v text=%q", ev.IsPrintable(), ev.Text())
	}
	if ev := NewRuneEvent('s', ModCtrl); ev.IsPrintable() {
		t.Error("Ctrl+s reported printable")
	}
	if ev := NewRuneEvent('ɪ', ModNone); !ev.IsPrintable() || ev.Text() != 'ɪ' {
		t.Errorf("IPA rune: text=%q", ev.Text())
	}
}
