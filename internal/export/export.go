// Package export rasterizes the composed text and writes it as PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/kobzarvs/thaipad/internal/composer"
	"github.com/kobzarvs/thaipad/internal/thai"
)

// Filename is the name of every exported image.
const Filename = "thai-text.png"

const (
	defaultWidth   = 800
	defaultPadding = 16
)

var (
	// ErrEmpty is returned when there is nothing to draw.
	ErrEmpty = errors.New("export: nothing to render")
	// ErrMissingGlyphs is returned when the font cannot draw a character of
	// the text. Nothing is written in that case.
	ErrMissingGlyphs = errors.New("export: font has no glyph for")
)

// ThaiFontCandidates are common system fonts with Thai coverage, in the
// order they are tried when no font file is configured.
var ThaiFontCandidates = []string{
	"/usr/share/fonts/truetype/noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/google-noto/NotoSansThai-Regular.ttf",
	"/usr/share/fonts/truetype/tlwg/Loma.ttf",
	"/usr/share/fonts/truetype/tlwg/Garuda.ttf",
	"/usr/share/fonts/opentype/tlwg/Loma.otf",
	"/usr/share/fonts/opentype/tlwg/Garuda.otf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	`C:\Windows\Fonts\tahoma.ttf`,
	`C:\Windows\Fonts\LeelawUI.ttf`,
}

// LocateFont returns the first candidate that exists as a regular file, or
// "" when none does.
func LocateFont(candidates []string) string {
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// Rasterizer turns a snapshot of the text area into an image.
type Rasterizer interface {
	Rasterize(snap composer.Snapshot) (image.Image, error)
}

type Options struct {
	// FontFile is a TTF or OTF file. Empty selects Go Regular, which has no
	// Thai glyphs.
	FontFile   string
	Width      int
	Padding    int
	Background color.Color
}

// Renderer draws glyphs with an OpenType font. It is safe for concurrent
// use; each call builds its own face.
type Renderer struct {
	font       *opentype.Font
	width      int
	padding    int
	background color.Color
}

func NewRenderer(opts Options) (*Renderer, error) {
	data := goregular.TTF
	if opts.FontFile != "" {
		b, err := os.ReadFile(opts.FontFile)
		if err != nil {
			return nil, fmt.Errorf("export: font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	r := &Renderer{
		font:       f,
		width:      opts.Width,
		padding:    opts.Padding,
		background: opts.Background,
	}
	if r.width <= 0 {
		r.width = defaultWidth
	}
	switch {
	case opts.Padding < 0:
		r.padding = 0
	case opts.Padding == 0:
		r.padding = defaultPadding
	}
	if r.background == nil {
		r.background = color.White
	}
	return r, nil
}

type placed struct {
	glyph composer.Glyph
	dot   fixed.Point26_6
}

func (r *Renderer) Rasterize(snap composer.Snapshot) (image.Image, error) {
	if len(snap.Glyphs) == 0 {
		return nil, ErrEmpty
	}
	if err := r.checkCoverage(snap.Glyphs); err != nil {
		return nil, err
	}
	size := snap.FontSize
	if size <= 0 {
		size = composer.DefaultFontSize
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("export: face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := metrics.Height
	maxLine := fixed.I(r.width - 2*r.padding)
	if maxLine <= 0 {
		maxLine = fixed.I(1)
	}

	var (
		out    []placed
		x      fixed.Int26_6
		line   int
		widest fixed.Int26_6
	)
	for _, g := range snap.Glyphs {
		if g.Char == "\n" {
			line++
			x = 0
			continue
		}
		adv := font.MeasureString(face, g.Char)
		attached := isMark(g.Char)
		if !attached && x > 0 && x+adv > maxLine {
			line++
			x = 0
		}
		out = append(out, placed{glyph: g, dot: fixed.Point26_6{X: x, Y: fixed.Int26_6(line) * lineHeight}})
		if !attached {
			x += adv
		}
		widest = max(widest, x)
	}

	w := max(widest.Ceil()+2*r.padding, 1)
	h := (fixed.Int26_6(line+1) * lineHeight).Ceil() + 2*r.padding
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	origin := fixed.P(r.padding, r.padding).Add(fixed.Point26_6{Y: metrics.Ascent})
	for _, p := range out {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(p.glyph.Color),
			Face: face,
			Dot:  origin.Add(p.dot),
		}
		if isMark(p.glyph.Char) {
			// Draw marks over the previous base.
			d.Dot.X -= markOffset(face, p.glyph.Char)
		}
		d.DrawString(p.glyph.Char)
	}
	return img, nil
}

// checkCoverage fails on the first character the font maps to glyph 0.
// Whitespace is skipped since it is never drawn.
func (r *Renderer) checkCoverage(glyphs []composer.Glyph) error {
	var buf sfnt.Buffer
	for _, g := range glyphs {
		for _, ch := range g.Char {
			if unicode.IsSpace(ch) {
				continue
			}
			idx, err := r.font.GlyphIndex(&buf, ch)
			if err != nil || idx == 0 {
				return fmt.Errorf("%w %q (U+%04X); set [export] font-file to a font with Thai glyphs",
					ErrMissingGlyphs, ch, ch)
			}
		}
	}
	return nil
}

func isMark(ch string) bool {
	runes := []rune(ch)
	return len(runes) > 0 && thai.IsCombining(runes[0])
}

// markOffset is how far back a mark is shifted when the font gives it a
// positive advance instead of zero.
func markOffset(face font.Face, ch string) fixed.Int26_6 {
	return font.MeasureString(face, ch)
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}

// Export rasterizes snap and writes it to dir/Filename, returning the path.
func Export(r Rasterizer, snap composer.Snapshot, dir string) (string, error) {
	img, err := r.Rasterize(snap)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, Filename)
	if err := WritePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}
