package domain

import (
	"strings"
	"unicode/utf8"
)

// KeyBinding is a keyboard shortcut bound to a chrome command
type KeyBinding struct {
	Command   string
	Modifiers []string
	KeyChar   string // single character, e.g. "R"
	KeyCode   string // virtual key, e.g. "VK_F8"
}

// String renders the binding the way it is written in preferences
func (k KeyBinding) String() string {
	parts := append([]string{}, k.Modifiers...)
	if k.KeyChar != "" {
		parts = append(parts, k.KeyChar)
	} else {
		parts = append(parts, strings.TrimPrefix(k.KeyCode, "VK_"))
	}
	return strings.Join(parts, " ")
}

var keyModifiers = map[string]string{
	"accel":   "accel",
	"ctrl":    "control",
	"control": "control",
	"shift":   "shift",
	"alt":     "alt",
	"meta":    "meta",
}

var virtualKeys = map[string]bool{
	"CANCEL": true, "HELP": true, "BACK_SPACE": true, "TAB": true, "CLEAR": true,
	"RETURN": true, "ENTER": true, "PAUSE": true, "CAPS_LOCK": true, "ESCAPE": true,
	"SPACE": true, "PAGE_UP": true, "PAGE_DOWN": true, "END": true, "HOME": true,
	"LEFT": true, "UP": true, "RIGHT": true, "DOWN": true, "PRINTSCREEN": true,
	"INSERT": true, "DELETE": true, "CONTEXT_MENU": true, "NUM_LOCK": true,
	"SCROLL_LOCK": true, "COMMA": true, "PERIOD": true, "SLASH": true,
	"BACK_QUOTE": true, "OPEN_BRACKET": true, "BACK_SLASH": true,
	"CLOSE_BRACKET": true, "QUOTE": true, "SEMICOLON": true, "EQUALS": true,
	"MULTIPLY": true, "ADD": true, "SEPARATOR": true, "SUBTRACT": true,
	"DECIMAL": true, "DIVIDE": true,
	"F1": true, "F2": true, "F3": true, "F4": true, "F5": true, "F6": true,
	"F7": true, "F8": true, "F9": true, "F10": true, "F11": true, "F12": true,
	"F13": true, "F14": true, "F15": true, "F16": true, "F17": true, "F18": true,
	"F19": true, "F20": true, "F21": true, "F22": true, "F23": true, "F24": true,
}

// ParseKeyBinding parses a whitespace separated key spec such as
// "accel shift R" or "alt F8". Unrecognized tokens are ignored. It reports
// false when the spec names neither a key character nor a virtual key.
func ParseKeyBinding(command, spec string) (KeyBinding, bool) {
	kb := KeyBinding{Command: command}
	for _, part := range strings.Fields(spec) {
		if mod, ok := keyModifiers[strings.ToLower(part)]; ok {
			kb.Modifiers = append(kb.Modifiers, mod)
			continue
		}
		if utf8.RuneCountInString(part) == 1 {
			kb.KeyChar = part
			continue
		}
		if name := strings.ToUpper(part); virtualKeys[name] {
			kb.KeyCode = "VK_" + name
		}
	}
	if kb.KeyChar == "" && kb.KeyCode == "" {
		return KeyBinding{}, false
	}
	return kb, true
}
