// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/anifetch/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Lua Icon = iota + 1
	RSS
	Success
	Fail
	Progress
	Disabled
	Idle
	Exact
	Fuzzy
)

var icons = map[Icon]*iconDef{
	Lua: {
		emoji:   "🌙",
		nerd:    "\ue620",
		plain:   "Lua",
		kaomoji: "(=^･ω･^=)",
		squares: "🟦",
	},
	RSS: {
		emoji:   "📡",
		nerd:    "\uf09e",
		plain:   "RSS",
		kaomoji: "(・∀・)",
		squares: "🟧",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "✖",
		kaomoji: "(╯°□°)╯︵ ┻━┻",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf254",
		plain:   "…",
		kaomoji: "(o_o)",
		squares: "🟨",
	},
	Disabled: {
		emoji:   "💤",
		nerd:    "\uf05e",
		plain:   "-",
		kaomoji: "(-_-)zzZ",
		squares: "⬛",
	},
	Idle: {
		emoji:   "💭",
		nerd:    "\uf10c",
		plain:   "○",
		kaomoji: "(・_・)",
		squares: "⬜",
	},
	Exact: {
		emoji:   "🎯",
		nerd:    "\uf140",
		plain:   "=",
		kaomoji: "(๑•̀ㅂ•́)و✧",
		squares: "🟩",
	},
	Fuzzy: {
		emoji:   "🤔",
		nerd:    "\uf128",
		plain:   "~",
		kaomoji: "(・・?)",
		squares: "🟨",
	},
}
