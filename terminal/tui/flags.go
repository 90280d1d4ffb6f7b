package tui

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Alignment selects the anchor corner or edge of a widget (bitmask)
// Neither Left nor Right centers horizontally, neither Top nor Bottom centers vertically
type Alignment uint8

const (
	AlignCenter Alignment = 0
	AlignLeft   Alignment = 1 << 0
	AlignRight  Alignment = 1 << 1
	AlignTop    Alignment = 1 << 2
	AlignBottom Alignment = 1 << 3
	AlignFloat  Alignment = 1 << 4 // anchor against the root viewport instead of the parent

	AlignTopLeft     = AlignTop | AlignLeft
	AlignTopRight    = AlignTop | AlignRight
	AlignBottomLeft  = AlignBottom | AlignLeft
	AlignBottomRight = AlignBottom | AlignRight

	AlignLeftCenter   = AlignLeft
	AlignRightCenter  = AlignRight
	AlignTopCenter    = AlignTop
	AlignBottomCenter = AlignBottom

	AlignFloatCenter       = AlignFloat
	AlignFloatTopLeft      = AlignFloat | AlignTopLeft
	AlignFloatTopRight     = AlignFloat | AlignTopRight
	AlignFloatBottomLeft   = AlignFloat | AlignBottomLeft
	AlignFloatBottomRight  = AlignFloat | AlignBottomRight
	AlignFloatLeftCenter   = AlignFloat | AlignLeftCenter
	AlignFloatRightCenter  = AlignFloat | AlignRightCenter
	AlignFloatTopCenter    = AlignFloat | AlignTopCenter
	AlignFloatBottomCenter = AlignFloat | AlignBottomCenter
)

// alignNames maps lowercase names (without the Float prefix) to alignments
var alignNames = map[string]Alignment{
	"center":       AlignCenter,
	"left":         AlignLeft,
	"right":        AlignRight,
	"top":          AlignTop,
	"bottom":       AlignBottom,
	"topleft":      AlignTopLeft,
	"topright":     AlignTopRight,
	"bottomleft":   AlignBottomLeft,
	"bottomright":  AlignBottomRight,
	"leftcenter":   AlignLeftCenter,
	"rightcenter":  AlignRightCenter,
	"topcenter":    AlignTopCenter,
	"bottomcenter": AlignBottomCenter,
}

// Has reports whether every bit of flag is set
func (a Alignment) Has(flag Alignment) bool {
	return a&flag == flag
}

// String returns the canonical name, e.g. "BottomRight", "FloatTopCenter", "Center"
func (a Alignment) String() string {
	var b strings.Builder
	if a.Has(AlignFloat) {
		b.WriteString("Float")
	}

	vertical := ""
	switch {
	case a.Has(AlignTop):
		vertical = "Top"
	case a.Has(AlignBottom):
		vertical = "Bottom"
	}
	horizontal := ""
	switch {
	case a.Has(AlignLeft):
		horizontal = "Left"
	case a.Has(AlignRight):
		horizontal = "Right"
	}

	switch {
	case vertical != "" && horizontal != "":
		b.WriteString(vertical + horizontal)
	case horizontal != "":
		b.WriteString(horizontal + "Center")
	case vertical != "":
		b.WriteString(vertical + "Center")
	default:
		b.WriteString("Center")
	}
	return b.String()
}

// ParseAlignment accepts the names produced by String, case-insensitive
// Single edges ("Left", "Top") are accepted as shorthand for the centered variants
func ParseAlignment(name string) (Alignment, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	var float Alignment
	if rest, ok := strings.CutPrefix(key, "float"); ok {
		float = AlignFloat
		key = rest
		if key == "" {
			key = "center"
		}
	}
	a, ok := alignNames[key]
	if !ok {
		return AlignCenter, errors.Errorf("unknown alignment %q", name)
	}
	return a | float, nil
}

// Dimensions selects how Width and Height are interpreted (bitmask)
// Absolute uses the value as cells, Relative as a percentage of the parent inner size,
// Fill takes the whole inner size; Fill wins over Relative on the same axis
type Dimensions uint8

const (
	DimAbsolute       Dimensions = 0
	DimRelativeWidth  Dimensions = 1 << 0
	DimRelativeHeight Dimensions = 1 << 1
	DimRelative                  = DimRelativeWidth | DimRelativeHeight
	DimFillWidth      Dimensions = 1 << 2
	DimFillHeight     Dimensions = 1 << 3
	DimFill                      = DimFillWidth | DimFillHeight

	DimFillWidthRelativeHeight = DimFillWidth | DimRelativeHeight
	DimFillHeightRelativeWidth = DimFillHeight | DimRelativeWidth
)

var dimNames = [...]struct {
	dim  Dimensions
	name string
}{
	{DimAbsolute, "Absolute"},
	{DimRelativeWidth, "RelativeWidth"},
	{DimRelativeHeight, "RelativeHeight"},
	{DimRelative, "Relative"},
	{DimFillWidth, "FillWidth"},
	{DimFillHeight, "FillHeight"},
	{DimFill, "Fill"},
	{DimFillWidthRelativeHeight, "FillWidthRelativeHeight"},
	{DimFillHeightRelativeWidth, "FillHeightRelativeWidth"},
}

// Has reports whether every bit of flag is set
func (d Dimensions) Has(flag Dimensions) bool {
	return d&flag == flag
}

func (d Dimensions) String() string {
	for _, n := range dimNames {
		if n.dim == d {
			return n.name
		}
	}
	return fmt.Sprintf("Dimensions(%d)", uint8(d))
}

// ParseDimensions accepts the names produced by String, case-insensitive
func ParseDimensions(name string) (Dimensions, error) {
	for _, n := range dimNames {
		if strings.EqualFold(n.name, strings.TrimSpace(name)) {
			return n.dim, nil
		}
	}
	return DimAbsolute, errors.Errorf("unknown dimensions %q", name)
}
