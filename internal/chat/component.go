// Package chat models Java Edition text components. Components are
// marshalled to the JSON form understood by every protocol version in
// the supported window; legacy § formatting codes are allowed inside
// Text and render on every version.
package chat

import "encoding/json"

// Legacy formatting codes used in user-facing messages.
const (
	DarkGreen = "§2"
	DarkRed   = "§4"
	Gold      = "§6"
	Aqua      = "§b"
	Green     = "§a"
	Yellow    = "§e"
	Red       = "§c"
	White     = "§f"
	Bold      = "§l"
	Underline = "§n"
	Reset     = "§r"
)

// ClickEvent is an interactive action attached to a component.
type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// Component is a renderable chat message tree.
type Component struct {
	Text      string      `json:"text,omitempty"`
	Translate string      `json:"translate,omitempty"`
	With      []Component `json:"with,omitempty"`
	Keybind   string      `json:"keybind,omitempty"`
	Click     *ClickEvent `json:"clickEvent,omitempty"`
	Extra     []Component `json:"extra,omitempty"`
}

// Text builds a plain text component.
func Text(s string) Component {
	return Component{Text: s}
}

// Keybinding builds a component that renders the player's bound key.
func Keybinding(key string) Component {
	return Component{Keybind: key}
}

// Translate builds a translatable component with substitution arguments.
func Translate(key string, with ...Component) Component {
	return Component{Translate: key, With: with}
}

// Link builds a clickable component opening the given URL.
func Link(label, url string) Component {
	return Component{
		Text:  label,
		Click: &ClickEvent{Action: "open_url", Value: url},
	}
}

// Group concatenates components into one message: the first part
// carries the rest as siblings. Formatting is done with legacy codes
// inside Text, so sibling style inheritance is not a concern here.
func Group(parts ...Component) Component {
	if len(parts) == 0 {
		return Component{}
	}
	root := parts[0]
	root.Extra = append(root.Extra, parts[1:]...)
	return root
}

// JSON renders the component in the wire encoding.
func (c Component) JSON() []byte {
	data, err := json.Marshal(c)
	if err != nil {
		// Component trees are built from literals; marshalling cannot
		// fail with the field types above.
		panic(err)
	}
	return data
}
