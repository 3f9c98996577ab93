package ui

// VKey is a device independent key action. Keymaps translate raw terminal
// keys into VKeys; widgets only ever interpret VKeys.
type VKey int

const (
	VKNone VKey = iota

	VKMoveUp
	VKMoveDown
	VKMovePageUp
	VKMovePageDown
	VKMoveHome
	VKMoveEnd
	VKMoveNext
	VKMovePrev

	VKActionSpace
	VKActionEnter
	VKActionErase
	VKActionKillLine
	VKActionKillChar
	VKActionKillWindow

	VKFocusNext
	VKFocusPrev
	VKOpenMenu

	VKTabCompleteNext
	VKTabCompletePrev

	VKToggleMark

	// VKSentinel bounds the built-in vocabulary. Application defined keys
	// must be greater than VKSentinel.
	VKSentinel
)

var vkeyNames = [...]string{
	VKNone:             "none",
	VKMoveUp:           "move_up",
	VKMoveDown:         "move_down",
	VKMovePageUp:       "move_page_up",
	VKMovePageDown:     "move_page_down",
	VKMoveHome:         "move_home",
	VKMoveEnd:          "move_end",
	VKMoveNext:         "move_next",
	VKMovePrev:         "move_prev",
	VKActionSpace:      "action_space",
	VKActionEnter:      "action_enter",
	VKActionErase:      "action_erase",
	VKActionKillLine:   "action_kill_line",
	VKActionKillChar:   "action_kill_char",
	VKActionKillWindow: "action_kill_window",
	VKFocusNext:        "focus_next",
	VKFocusPrev:        "focus_prev",
	VKOpenMenu:         "open_menu",
	VKTabCompleteNext:  "tab_complete_next",
	VKTabCompletePrev:  "tab_complete_prev",
	VKToggleMark:       "toggle_mark",
	VKSentinel:         "sentinel",
}

func (k VKey) String() string {
	if k >= 0 && int(k) < len(vkeyNames) {
		return vkeyNames[k]
	}
	return "app_key"
}

// IsApp reports whether k is an application defined key.
func (k VKey) IsApp() bool { return k > VKSentinel }

// ParseVKey returns the built-in key with the given name.
func ParseVKey(name string) (VKey, bool) {
	for i, n := range vkeyNames {
		if n == name && VKey(i) != VKSentinel {
			return VKey(i), true
		}
	}
	return VKNone, false
}

func isSelectKey(vk VKey) bool { return vk == VKActionSpace || vk == VKActionEnter }
