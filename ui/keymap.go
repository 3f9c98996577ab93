package ui

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKey        = errors.New("unknown key name")
	ErrUnknownAction     = errors.New("unknown key action")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// chord identifies a raw key press. Rune is set only for tcell.KeyRune.
type chord struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

// Keymap translates raw terminal keys into virtual keys.
type Keymap struct {
	binds   map[chord]VKey
	actions map[string]VKey // application defined actions
}

func NewKeymap() *Keymap {
	return &Keymap{binds: map[chord]VKey{}, actions: map[string]VKey{}}
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	for name, vk := range map[string]VKey{
		"Up":         VKMoveUp,
		"Down":       VKMoveDown,
		"PgUp":       VKMovePageUp,
		"PgDn":       VKMovePageDown,
		"Home":       VKMoveHome,
		"End":        VKMoveEnd,
		"Right":      VKMoveNext,
		"Left":       VKMovePrev,
		"Space":      VKActionSpace,
		"Enter":      VKActionEnter,
		"Backspace":  VKActionErase,
		"Backspace2": VKActionErase,
		"Ctrl-U":     VKActionKillLine,
		"Delete":     VKActionKillChar,
		"Esc":        VKActionKillWindow,
		"Tab":        VKFocusNext,
		"Backtab":    VKFocusPrev,
		"F10":        VKOpenMenu,
		"Ctrl-N":     VKTabCompleteNext,
		"Ctrl-P":     VKTabCompletePrev,
		"Insert":     VKToggleMark,
	} {
		if err := k.Bind(name, vk); err != nil {
			panic(err)
		}
	}
	return k
}

// Clone returns an independent copy of k.
func (k *Keymap) Clone() *Keymap {
	return &Keymap{binds: maps.Clone(k.binds), actions: maps.Clone(k.actions)}
}

// Define names an application key so config files can bind it.
func (k *Keymap) Define(action string, vk VKey) {
	assert(vk.IsApp(), "application key %d not above sentinel", vk)
	k.actions[action] = vk
}

// Action resolves a built-in or defined action name.
func (k *Keymap) Action(name string) (VKey, error) {
	if vk, ok := ParseVKey(name); ok {
		return vk, nil
	}
	if vk, ok := k.actions[name]; ok {
		return vk, nil
	}
	return VKNone, errors.Wrapf(ErrUnknownAction, "%q%s", name, k.suggest(name))
}

// suggest returns a hint naming the known action closest to name, or ""
// when nothing is within two edits.
func (k *Keymap) suggest(name string) string {
	names := append(slices.Clone(vkeyNames[:VKSentinel]), slices.Sorted(maps.Keys(k.actions))...)

	best, dist := "", 3
	for _, n := range names {
		if d := levenshtein.ComputeDistance(name, n); d < dist {
			best, dist = n, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// Bind maps the key called name to vk. Names are tcell key names such as
// "Enter", "PgDn" or "Ctrl-N", "Space", or a single character, optionally
// prefixed with "Alt-". Binding VKNone removes the key.
func (k *Keymap) Bind(name string, vk VKey) error {
	c, err := parseChord(name)
	if err != nil {
		return err
	}
	if vk == VKNone {
		delete(k.binds, c)
		return nil
	}
	k.binds[c] = vk
	return nil
}

// Translate returns the raw rune and virtual key for ev. Unbound keys
// translate to VKNone; printable keys always carry their rune.
func (k *Keymap) Translate(ev *tcell.EventKey) (rune, VKey) {
	c := chord{key: ev.Key(), mods: ev.Modifiers() & tcell.ModAlt}
	var raw rune
	if c.key == tcell.KeyRune {
		raw = ev.Rune()
		c.r = raw
	}
	return raw, k.binds[c]
}

var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for key, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = key
	}
	return m
}()

func parseChord(name string) (chord, error) {
	var c chord
	s := name
	if len(s) > 4 && strings.EqualFold(s[:4], "alt-") {
		c.mods = tcell.ModAlt
		s = s[4:]
	}
	if strings.EqualFold(s, "space") {
		s = " "
	}
	if utf8.RuneCountInString(s) == 1 {
		c.key = tcell.KeyRune
		c.r, _ = utf8.DecodeRuneInString(s)
		return c, nil
	}
	key, ok := keyByName[strings.ToLower(s)]
	if !ok {
		return chord{}, errors.Wrapf(ErrUnknownKey, "%q", name)
	}
	c.key = key
	return c, nil
}

// Config is the user configuration: key bindings and palette overrides.
//
//	[keys]
//	"Ctrl-N" = "move_down"
//	[colors.selection]
//	bg = "#4e5a65"
type Config struct {
	Keys   map[string]string `toml:"keys" yaml:"keys"`
	Colors map[string]Style  `toml:"colors" yaml:"colors"`
}

// LoadConfig reads a TOML or YAML config file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format: ".toml", ".yaml" or ".yml".
func ParseConfig(data []byte, format string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse toml")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return &cfg, nil
}

// Keymap returns base with the configured bindings applied.
func (c *Config) Keymap(base *Keymap) (*Keymap, error) {
	k := base.Clone()
	for name, action := range c.Keys {
		vk := VKNone
		if action != "" && action != "none" {
			var err error
			if vk, err = k.Action(action); err != nil {
				return nil, errors.Wrapf(err, "key %q", name)
			}
		}
		if err := k.Bind(name, vk); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// Theme returns base with the configured colors applied.
func (c *Config) Theme(base ColorTheme) (ColorTheme, error) {
	if len(c.Colors) == 0 {
		return base, nil
	}
	over := make(map[Color]Style, len(c.Colors))
	for name, st := range c.Colors {
		col, ok := parseColorName(name)
		if !ok {
			return base, errors.Errorf("unknown color %q", name)
		}
		over[col] = st
	}
	return base.With(over), nil
}

func parseColorName(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name && Color(i) != ColorSentinel {
			return Color(i), true
		}
	}
	return ColorNone, false
}
