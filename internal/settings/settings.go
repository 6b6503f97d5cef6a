// Package settings maps the opaque settings document onto the typed
// preferences the host applies at startup and persists on change.
package settings

import (
	"os"

	"github.com/neight-app/neight/internal/config"
)

// Document keys recognized by this build. The store itself never looks at
// these; any key outside this list rides along untouched.
const (
	KeyDefaultDirectory = "default_directory"
	KeyWindowSize       = "window_size"
	KeyWindowMaximized  = "window_maximized"
	KeyAutosaveInterval = "autosave_interval"
	KeyWordWrap         = "word_wrap"
	KeyFontFamily       = "font_family"
	KeyFontSize         = "font_size"
	KeyLastOpenedFile   = "last_opened_file"
)

// Bounds enforced when preferences are read or stored.
const (
	MinWindowWidth  = 300
	MinWindowHeight = 200
	MinFontSize     = 6
	MaxFontSize     = 100
)

// AutosaveIntervals are the choices the preferences menu offers, in
// minutes; zero disables autosave. Stored values are not restricted to
// this list.
var AutosaveIntervals = []int{0, 2, 5, 15, 30}

// Preferences is the typed view of the settings document.
type Preferences struct {
	DefaultDirectory string
	WindowWidth      int
	WindowHeight     int
	WindowMaximized  bool
	AutosaveInterval int // minutes, 0 disables
	WordWrap         bool
	FontFamily       string
	FontSize         int
	LastOpenedFile   string
}

// Defaults returns the preferences used when no stored value applies.
func Defaults() Preferences {
	return Preferences{
		DefaultDirectory: defaultDirectory(),
		WindowWidth:      1000,
		WindowHeight:     650,
		AutosaveInterval: 5,
		WordWrap:         true,
		FontSize:         12,
	}
}

func defaultDirectory() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "."
}

// FromDocument reads the recognized keys out of a document. Absent or
// mistyped values leave the default untouched. A window size below the
// minimum is ignored whole, and a font size without a font family is
// ignored too: the editor only switches fonts when both are known.
func FromDocument(doc config.Document) Preferences {
	p := Defaults()

	if dir, ok := stringValue(doc[KeyDefaultDirectory]); ok && dir != "" {
		p.DefaultDirectory = dir
	}
	if size, ok := doc[KeyWindowSize].(map[string]any); ok {
		w, wok := intValue(size["width"])
		h, hok := intValue(size["height"])
		if wok && hok && w >= MinWindowWidth && h >= MinWindowHeight {
			p.WindowWidth, p.WindowHeight = w, h
		}
	}
	if maximized, ok := doc[KeyWindowMaximized].(bool); ok {
		p.WindowMaximized = maximized
	}
	if minutes, ok := intValue(doc[KeyAutosaveInterval]); ok {
		if minutes < 0 {
			minutes = 0
		}
		p.AutosaveInterval = minutes
	}
	if wrap, ok := doc[KeyWordWrap].(bool); ok {
		p.WordWrap = wrap
	}

	family, _ := stringValue(doc[KeyFontFamily])
	fontSize, ok := intValue(doc[KeyFontSize])
	if !ok {
		fontSize = p.FontSize
	}
	if family != "" && fontSize > 0 {
		p.FontFamily = family
		p.FontSize = fontSize
	}

	if last, ok := stringValue(doc[KeyLastOpenedFile]); ok {
		p.LastOpenedFile = last
	}
	return p
}

// ApplyTo writes the preferences into a copy of doc, leaving every key it
// does not own untouched. Geometry is stored clamped to the minimum window
// size and the font size to the editor's zoom bounds.
func (p Preferences) ApplyTo(doc config.Document) config.Document {
	out := make(config.Document, len(doc)+8)
	for k, v := range doc {
		out[k] = v
	}

	width := p.WindowWidth
	if width < MinWindowWidth {
		width = MinWindowWidth
	}
	height := p.WindowHeight
	if height < MinWindowHeight {
		height = MinWindowHeight
	}
	interval := p.AutosaveInterval
	if interval < 0 {
		interval = 0
	}

	out[KeyDefaultDirectory] = p.DefaultDirectory
	out[KeyWindowSize] = map[string]any{"width": width, "height": height}
	out[KeyWindowMaximized] = p.WindowMaximized
	out[KeyAutosaveInterval] = interval
	out[KeyWordWrap] = p.WordWrap
	out[KeyFontFamily] = p.FontFamily
	out[KeyFontSize] = clampFontSize(p.FontSize)
	out[KeyLastOpenedFile] = p.LastOpenedFile
	return out
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// intValue accepts the integer encodings a JSON round trip can produce.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
