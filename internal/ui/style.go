package ui

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Rule is one ruleset: a .class or #id selector and its raw declarations.
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet holds rules in source order; later rules win.
type Stylesheet struct {
	Rules []Rule
}

// Length is a size or offset in pixels, or a percentage when Percent is set.
type Length struct {
	Value   int32
	Percent bool
}

// Of resolves l against total pixels.
func (l Length) Of(total int32) int32 {
	if l.Percent {
		return total * l.Value / 100
	}
	return l.Value
}

// ComputedStyle is a node's resolved style. A percent Left or Top positions the
// node within the space its own size leaves free; a percent Width or Height is
// relative to the screen.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool

	Width, Height Length
	Left, Top     Length
	// Padding insets text from the node bounds.
	Padding int32
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

const defaultPadding = 4

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Alpha is 255 unless given.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return black, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return black, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return black, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// ParseLength parses a CSS length: a number with no unit, "px" or "%".
// Fractions are rounded to whole pixels or percent.
func ParseLength(s string) (Length, bool) {
	b := []byte(strings.TrimSpace(s))
	n, u := parse.Dimension(b)
	if n == 0 || n+u != len(b) {
		return Length{}, false
	}
	f, err := strconv.ParseFloat(string(b[:n]), 64)
	if err != nil {
		return Length{}, false
	}
	l := Length{Value: int32(math.Round(f))}
	switch strings.ToLower(string(b[n:])) {
	case "", "px":
	case "%":
		l.Percent = true
	default:
		return Length{}, false
	}
	return l, true
}

type setter func(*ComputedStyle, string) bool

func colorProp(field func(*ComputedStyle) *color.RGBA) setter {
	return func(cs *ComputedStyle, v string) bool {
		c, ok := ParseHexColor(v)
		if ok {
			*field(cs) = c
		}
		return ok
	}
}

func lengthProp(field func(*ComputedStyle) *Length) setter {
	return func(cs *ComputedStyle, v string) bool {
		l, ok := ParseLength(v)
		if ok {
			*field(cs) = l
		}
		return ok
	}
}

var properties = map[string]setter{
	"background": colorProp(func(cs *ComputedStyle) *color.RGBA { return &cs.Background }),
	"color":      colorProp(func(cs *ComputedStyle) *color.RGBA { return &cs.Color }),
	"border": func(cs *ComputedStyle, v string) bool {
		c, ok := ParseHexColor(v)
		if ok {
			cs.Border, cs.HasBorder = c, true
		}
		return ok
	},
	"width":  lengthProp(func(cs *ComputedStyle) *Length { return &cs.Width }),
	"height": lengthProp(func(cs *ComputedStyle) *Length { return &cs.Height }),
	"left":   lengthProp(func(cs *ComputedStyle) *Length { return &cs.Left }),
	"top":    lengthProp(func(cs *ComputedStyle) *Length { return &cs.Top }),
	"padding": func(cs *ComputedStyle, v string) bool {
		l, ok := ParseLength(v)
		if !ok || l.Percent || l.Value < 0 {
			return false
		}
		cs.Padding = l.Value
		return true
	},
}

// ResolveProps builds a style from merged declarations. Unknown properties and
// unparsable values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	cs := ComputedStyle{Color: white, Border: black, Padding: defaultPadding}
	for k, v := range props {
		if set, ok := properties[k]; ok {
			set(&cs, v)
		}
	}
	return cs
}
