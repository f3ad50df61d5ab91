package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	_ "golang.org/x/image/webp"
)

// Handler loads one kind of resource.
type Handler interface {
	// Load reads e from fs and returns the value to cache.
	Load(fs afero.Fs, e Entry) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(fs afero.Fs, e Entry) (any, error)

// Load calls f(fs, e).
func (f HandlerFunc) Load(fs afero.Fs, e Entry) (any, error) { return f(fs, e) }

// DefaultHandlers returns a handler for every known kind.
func DefaultHandlers() map[Kind]Handler {
	return map[Kind]Handler{
		KindImage:  HandlerFunc(loadImage),
		KindSound:  HandlerFunc(loadSound),
		KindXML:    HandlerFunc(loadXML),
		KindBinary: HandlerFunc(loadBinary),
		KindFont:   HandlerFunc(loadFont),
		KindText:   HandlerFunc(loadText),
	}
}

// ImageInfo is the header of a preloaded image. Pixels are decoded later by
// whoever draws the image.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// SoundInfo is a preloaded sound. WAV headers are parsed into Format and
// Samples; other formats carry only their bytes.
type SoundInfo struct {
	Format  beep.Format
	Samples int
	Data    []byte
}

// Duration returns the length of a parsed sound in seconds, or 0.
func (s SoundInfo) Duration() float64 {
	if s.Format.SampleRate <= 0 {
		return 0
	}
	return float64(s.Samples) / float64(s.Format.SampleRate)
}

// XMLDocument is a well-formed XML resource.
type XMLDocument struct {
	Root string // local name of the root element
	Data []byte
}

// Font is a parsed font registered under a family name.
type Font struct {
	Name   string
	Family string // family name stored in the font file, if any
	Face   *opentype.Font
}

func loadImage(fs afero.Fs, e Entry) (any, error) {
	data, err := afero.ReadFile(fs, e.Path())
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func loadSound(fs afero.Fs, e Entry) (any, error) {
	data, err := afero.ReadFile(fs, e.Path())
	if err != nil {
		return nil, err
	}
	if Extension(e.Src) != "wav" {
		return SoundInfo{Data: data}, nil
	}

	stream, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}
	defer stream.Close()
	return SoundInfo{Format: format, Samples: stream.Len(), Data: data}, nil
}

func loadXML(fs afero.Fs, e Entry) (any, error) {
	data, err := afero.ReadFile(fs, e.Path())
	if err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok && root == "" {
			root = start.Name.Local
		}
	}
	if root == "" {
		return nil, errors.New("malformed xml: no root element")
	}
	return XMLDocument{Root: root, Data: data}, nil
}

func loadBinary(fs afero.Fs, e Entry) (any, error) {
	return afero.ReadFile(fs, e.Path())
}

func loadText(fs afero.Fs, e Entry) (any, error) {
	data, err := afero.ReadFile(fs, e.Path())
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func loadFont(fs afero.Fs, e Entry) (any, error) {
	data, err := afero.ReadFile(fs, e.Path())
	if err != nil {
		return nil, err
	}
	face, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	f := Font{Name: e.FontName, Face: face}
	if family, err := face.Name(nil, sfnt.NameIDFamily); err == nil {
		f.Family = family
	}
	return f, nil
}
