package macro

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// defaultKeyDelay is the pause in ms after a key without a configured delay
	defaultKeyDelay = 1
	// typedArgumentDelay is the pause in ms after typing an argument
	typedArgumentDelay = 50
	// holdDelay is how long in ms each key is held down
	holdDelay = 1
)

const scriptHeader = `#NoEnv  ; Recommended for performance and compatibility with future AutoHotkey releases.
; #Warn  ; Enable warnings to assist with detecting common errors.
SendMode Input  ; Recommended for new scripts due to its superior speed and reliability.
SetWorkingDir %A_ScriptDir%  ; Ensures a consistent starting directory.
`

// KeyDelays maps a key, or a key combination such as "Ctrl+d", to the pause
// in ms after it is released
type KeyDelays map[string]int

// DefaultKeyDelays returns the delays the editor's menus need to keep up
func DefaultKeyDelays() KeyDelays {
	return KeyDelays{
		"Enter":  50,
		"Ctrl+d": 50,
		"r":      50,
		"PgUp":   1,
		"PgDn":   1,
		"q":      10,
		"e":      10,
		"w":      1,
		"s":      1,
		"Escape": 50,
	}
}

func (d KeyDelays) delay(key string) int {
	if ms, ok := d[key]; ok && ms > 0 {
		return ms
	}
	return defaultKeyDelay
}

// Script accumulates AutoHotkey commands
type Script struct {
	b strings.Builder
}

// NewScript starts a script with the standard AutoHotkey header
func NewScript() *Script {
	s := &Script{}
	s.b.WriteString(scriptHeader)
	return s
}

func (s *Script) String() string {
	return s.b.String()
}

// Sleep pauses the script
func (s *Script) Sleep(ms int) {
	fmt.Fprintf(&s.b, "\nSleep, %d\n", ms)
}

// WinActivate focuses the window with the given title
func (s *Script) WinActivate(title string) {
	fmt.Fprintf(&s.b, "\nWinActivate, %s\n", title)
}

// PressKey presses and releases key, then pauses for endDelay ms
func (s *Script) PressKey(key string, endDelay int) {
	fmt.Fprintf(&s.b, "Send {%s Down}\nSleep, %d\nSend {%s Up}\nSleep, %d\n", key, holdDelay, key, endDelay)
}

// PressCombination holds all keys down together, releases them in the same
// order and pauses for endDelay ms
func (s *Script) PressCombination(keys []string, endDelay int) {
	for _, key := range keys {
		fmt.Fprintf(&s.b, "Send {%s Down}\n", key)
	}
	fmt.Fprintf(&s.b, "Sleep, %d\n", holdDelay)
	for _, key := range keys {
		fmt.Fprintf(&s.b, "Send {%s Up}\n", key)
	}
	fmt.Fprintf(&s.b, "Sleep, %d\n", endDelay)
}

// Type enters text one character at a time, then pauses for endDelay ms
func (s *Script) Type(text string, endDelay int) {
	for _, r := range text {
		s.PressKey(string(r), holdDelay)
	}
	fmt.Fprintf(&s.b, "Sleep, %d\n", endDelay)
}

// KeySequence presses keys in order. A key of the form "{n}" types args[n];
// "key:ms" overrides the pause after key; "a+b" presses a combination.
func (s *Script) KeySequence(keys []string, delays KeyDelays, args []string) error {
	for _, key := range keys {
		if strings.HasPrefix(key, "{") && strings.HasSuffix(key, "}") {
			n, err := strconv.Atoi(key[1 : len(key)-1])
			if err != nil {
				return fmt.Errorf("invalid argument reference %q: %w", key, err)
			}
			if n < 0 || n >= len(args) {
				return fmt.Errorf("argument reference %q out of range (have %d arguments)", key, len(args))
			}
			s.Type(args[n], typedArgumentDelay)
			continue
		}

		delay := delays.delay(key)
		if name, ms, ok := strings.Cut(key, ":"); ok {
			d, err := strconv.Atoi(ms)
			if err != nil {
				return fmt.Errorf("invalid delay in key %q: %w", key, err)
			}
			key, delay = name, d
		}

		if strings.Contains(key, "+") {
			s.PressCombination(strings.Split(key, "+"), delay)
		} else {
			s.PressKey(key, delay)
		}
	}
	return nil
}
