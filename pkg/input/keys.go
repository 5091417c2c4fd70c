package input

import (
	"strings"
	"unicode/utf8"

	"lanpad/remotectl/pkg/proto"
)

// specialKeys maps client key names and common aliases onto the backend's
// key identifiers. Anything not listed must be a single character.
var specialKeys = map[string]string{
	// navigation
	"backspace": "backspace",
	"delete":    "delete",
	"enter":     "enter",
	"tab":       "tab",
	"escape":    "esc",
	"esc":       "esc",
	"space":     "space",
	"home":      "home",
	"end":       "end",
	"pageup":    "pageup",
	"pgup":      "pageup",
	"pagedown":  "pagedown",
	"pgdn":      "pagedown",
	"insert":    "insert",
	"ins":       "insert",

	// arrows
	"up":    "up",
	"down":  "down",
	"left":  "left",
	"right": "right",

	// function keys
	"f1": "f1", "f2": "f2", "f3": "f3", "f4": "f4",
	"f5": "f5", "f6": "f6", "f7": "f7", "f8": "f8",
	"f9": "f9", "f10": "f10", "f11": "f11", "f12": "f12",

	// modifiers
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"win":     "cmd",
	"windows": "cmd",
	"cmd":     "cmd",
	"command": "cmd",

	// media
	"volumeup":   "audio_vol_up",
	"volup":      "audio_vol_up",
	"volumedown": "audio_vol_down",
	"voldown":    "audio_vol_down",
	"volumemute": "audio_mute",
	"mute":       "audio_mute",
	"play":       "audio_play",
	"pause":      "audio_pause",
	"next":       "audio_next",
	"previous":   "audio_prev",
}

// mapKey normalizes one key name, resolving aliases. Unknown multi-character
// names are rejected.
func mapKey(name string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(name))
	if v, ok := specialKeys[k]; ok {
		return v, nil
	}
	if utf8.RuneCountInString(k) == 1 {
		return k, nil
	}
	return "", &proto.ValidationError{Reason: "unknown key: " + name}
}

// mapCombo splits a +-joined combination like "ctrl+alt+delete" into
// backend key names, in order.
func mapCombo(combo string) ([]string, error) {
	parts := strings.Split(combo, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, &proto.ValidationError{Reason: "malformed key combination: " + combo}
		}
		k, err := mapKey(p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
