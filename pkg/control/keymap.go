package control

import (
	"fmt"
	"strings"
)

// KeyMap binds raw key names to controls.
type KeyMap map[string]Code

// DefaultKeyMap returns the stock keyboard layout.
// The arrow keys for climbing are inverted, like a flight stick.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w":          Forward,
		"s":          Backward,
		"a":          TurnLeft,
		"arrowleft":  TurnLeft,
		"d":          TurnRight,
		"arrowright": TurnRight,
		"arrowdown":  Ascend,
		"arrowup":    Descend,
	}
}

// Lookup resolves key to a control. Key names are case-insensitive.
func (m KeyMap) Lookup(key string) (Code, bool) {
	code, ok := m[normalizeKey(key)]
	if !ok || !code.Valid() {
		return 0, false
	}
	return code, true
}

// Keys returns every key bound to code.
func (m KeyMap) Keys(code Code) []string {
	var keys []string
	for k, c := range m {
		if c == code {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseKeyMap builds a KeyMap from key name to control name pairs, as found
// in configuration files.
func ParseKeyMap(bindings map[string]string) (KeyMap, error) {
	m := make(KeyMap, len(bindings))
	for key, name := range bindings {
		code, ok := ParseCode(name)
		if !ok {
			return nil, fmt.Errorf("unknown control %q bound to key %q", name, key)
		}
		m[normalizeKey(key)] = code
	}
	return m, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
