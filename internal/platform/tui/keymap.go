package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// reservedKeys drive the screens themselves and cannot be bound to a
// movement action.
var reservedKeys = map[string]bool{
	"ctrl+c": true, "q": true, "enter": true, "esc": true, "b": true,
	"p": true, " ": true, "r": true, "tab": true, "shift+tab": true,
	"up": true, "down": true, "left": true, "right": true,
}

// IsReservedKey reports whether key cannot be used as a movement binding.
func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Arrow keys always steer; the configured controls are added on top.
type KeyMapper struct {
	moves map[string]core.Action
}

// NewKeyMapper creates a key mapper for the given movement bindings.
func NewKeyMapper(c config.Controls) *KeyMapper {
	km := &KeyMapper{moves: map[string]core.Action{
		"up":    core.ActionUp,
		"down":  core.ActionDown,
		"left":  core.ActionLeft,
		"right": core.ActionRight,
	}}
	for key, a := range map[string]core.Action{
		c.Up: core.ActionUp, c.Down: core.ActionDown,
		c.Left: core.ActionLeft, c.Right: core.ActionRight,
	} {
		if key != "" && !IsReservedKey(key) {
			km.moves[key] = a
		}
	}
	return km
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	if a, ok := km.moves[key]; ok {
		return a, false
	}

	switch key {
	case "q":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p", " ":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
