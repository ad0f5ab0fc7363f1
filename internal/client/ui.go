package client

import (
	"image/color"
	"strings"

	"island-discovery/internal/client/view"
	"island-discovery/pkg/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Viewer colours
var (
	ColorBackground   = color.RGBA{18, 24, 38, 255}
	ColorPanel        = color.RGBA{28, 36, 54, 240}
	ColorButton       = color.RGBA{52, 60, 82, 255}
	ColorButtonHover  = color.RGBA{72, 82, 108, 255}
	ColorPrimary      = color.RGBA{46, 120, 170, 255}
	ColorPrimaryHover = color.RGBA{76, 150, 200, 255}
	ColorText         = color.RGBA{220, 225, 235, 255}
	ColorBorder       = color.RGBA{64, 72, 92, 255}
	ColorInputBg      = color.RGBA{22, 28, 42, 255}
	ColorInputFocus   = color.RGBA{76, 150, 200, 255}
	ColorHighlight    = color.RGBA{255, 255, 255, 90}
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

// rect is the screen area of a widget.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r rect) fill(dst *ebiten.Image, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (r rect) stroke(dst *ebiten.Image, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, clr, false)
}

// Button fires OnClick when the left button is released over it.
type Button struct {
	rect
	Label   string
	Primary bool
	OnClick func()

	hovered bool
	pressed bool
}

// NewButton creates a button at (x, y).
func NewButton(x, y, w, h int, label string, onClick func()) *Button {
	return &Button{rect: rect{x, y, w, h}, Label: label, OnClick: onClick}
}

// Update tracks hover and press state.
func (b *Button) Update() {
	b.hovered = b.contains(ebiten.CursorPosition())

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		b.pressed = b.hovered
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if b.pressed && b.hovered && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = false
	}
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	bg := ColorButton
	switch {
	case b.Primary && b.hovered:
		bg = ColorPrimaryHover
	case b.Primary:
		bg = ColorPrimary
	case b.hovered:
		bg = ColorButtonHover
	}
	b.fill(screen, bg)
	b.stroke(screen, 1, ColorBorder)

	tx := b.X + (b.W-len(b.Label)*glyphW)/2
	ty := b.Y + (b.H-glyphH)/2
	ebitenutil.DebugPrintAt(screen, b.Label, tx, ty)
}

// ColorInput edits a "#RRGGBB" colour. It only takes hex digits, keeps the
// leading '#' and shows a swatch once the value parses.
type ColorInput struct {
	rect
	Text string

	focused bool
	blink   int
}

// NewColorInput creates an input holding c.
func NewColorInput(x, y, w, h int, c terrain.Color) *ColorInput {
	return &ColorInput{rect: rect{x, y, w, h}, Text: string(c)}
}

// Update handles focus and typing.
func (in *ColorInput) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.focused = in.contains(ebiten.CursorPosition())
	}
	if !in.focused {
		return
	}
	in.blink++

	for _, r := range ebiten.AppendInputChars(nil) {
		in.Text = appendHex(in.Text, r)
	}
	if repeating(ebiten.KeyBackspace) && len(in.Text) > 0 {
		in.Text = in.Text[:len(in.Text)-1]
	}
}

// appendHex adds r to a "#RRGGBB" draft if it keeps the draft well formed.
func appendHex(text string, r rune) string {
	if r == '#' {
		if text == "" {
			return "#"
		}
		return text
	}
	if !isHexRune(r) {
		return text
	}
	if !strings.HasPrefix(text, "#") {
		text = "#" + text
	}
	if len(text) >= 7 {
		return text
	}
	return text + strings.ToUpper(string(r))
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// repeating reports a key press, repeating while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}

// Value parses the current text.
func (in *ColorInput) Value() (terrain.Color, error) {
	return terrain.ParseColor(in.Text)
}

// SetValue replaces the text with c.
func (in *ColorInput) SetValue(c terrain.Color) {
	in.Text = string(c)
}

// Focused reports whether the input takes keyboard input.
func (in *ColorInput) Focused() bool {
	return in.focused
}

// Blur drops keyboard focus.
func (in *ColorInput) Blur() {
	in.focused = false
}

// Draw renders the input and its swatch.
func (in *ColorInput) Draw(screen *ebiten.Image) {
	in.fill(screen, ColorInputBg)
	border := ColorBorder
	if in.focused {
		border = ColorInputFocus
	}
	in.stroke(screen, 2, border)
	ebitenutil.DebugPrintAt(screen, in.Text, in.X+8, in.Y+(in.H-glyphH)/2)

	if in.focused && (in.blink/30)%2 == 0 {
		cx := float32(in.X + 8 + len(in.Text)*glyphW)
		vector.DrawFilledRect(screen, cx, float32(in.Y+6), 2, float32(in.H-12), ColorText, false)
	}

	if c, err := in.Value(); err == nil {
		sw := rect{in.X + in.W - in.H + 4, in.Y + 4, in.H - 8, in.H - 8}
		sw.fill(screen, view.RGBA(c))
		sw.stroke(screen, 1, ColorBorder)
	}
}

// DrawPanel draws a panel background.
func DrawPanel(screen *ebiten.Image, x, y, w, h int) {
	r := rect{x, y, w, h}
	r.fill(screen, ColorPanel)
	r.stroke(screen, 1, ColorBorder)
}

// DrawText draws debug-font text with its top-left corner at (x, y).
func DrawText(screen *ebiten.Image, text string, x, y int) {
	ebitenutil.DebugPrintAt(screen, text, x, y)
}
