package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	family models.Font
	bold   bool
	size   float64
}

type fontKey struct {
	family models.Font
	bold   bool
}

// FontSet loads the log typefaces from a directory of TrueType files and
// caches faces per size. Families without a file on disk fall back to the
// Go fonts.
type FontSet struct {
	dir    string
	logger logging.Logger

	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

func NewFontSet(dir string, logger logging.Logger) *FontSet {
	return &FontSet{
		dir:    dir,
		logger: logger,
		fonts:  make(map[fontKey]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// fileNames lists the files tried for a family, most specific first.
// "Jim Nightshade" becomes JimNightshade-Bold.ttf, JimNightshade-Regular.ttf
// and JimNightshade.ttf.
func fileNames(family models.Font, bold bool) []string {
	base := strings.ReplaceAll(string(family), " ", "")
	var names []string
	if bold {
		names = append(names, base+"-Bold.ttf")
	}
	return append(names, base+"-Regular.ttf", base+".ttf")
}

func (s *FontSet) load(family models.Font, bold bool) (*opentype.Font, error) {
	k := fontKey{family, bold}
	if f, ok := s.fonts[k]; ok {
		return f, nil
	}

	var f *opentype.Font
	if s.dir != "" {
		for _, name := range fileNames(family, bold) {
			data, err := os.ReadFile(filepath.Join(s.dir, name))
			if err != nil {
				continue
			}
			parsed, err := opentype.Parse(data)
			if err != nil {
				s.logger.Warn(context.Background(), "bad font file", "file", name, "error", err)
				continue
			}
			f = parsed
			break
		}
	}

	if f == nil {
		fallback := goregular.TTF
		if bold {
			fallback = gobold.TTF
		}
		parsed, err := opentype.Parse(fallback)
		if err != nil {
			return nil, fmt.Errorf("parse fallback font: %w", err)
		}
		s.logger.Debug(context.Background(), "font not found, using fallback", "family", family, "bold", bold)
		f = parsed
	}

	s.fonts[k] = f
	return f, nil
}

// Face returns a face of family at size pixels.
func (s *FontSet) Face(family models.Font, bold bool, size float64) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := faceKey{family, bold, size}
	if face, ok := s.faces[k]; ok {
		return face, nil
	}

	f, err := s.load(family, bold)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", family, err)
	}
	s.faces[k] = face
	return face, nil
}

// Advance returns the horizontal measure of family at size.
func (s *FontSet) Advance(family models.Font, bold bool, size float64) (layout.Advance, error) {
	face, err := s.Face(family, bold, size)
	if err != nil {
		return nil, err
	}
	return func(text string) float64 {
		return fixedToFloat(font.MeasureString(face, text))
	}, nil
}

// Measurer measures body text in family exactly as the rasterizer wraps it.
func (s *FontSet) Measurer(family models.Font, g layout.Geometry) (layout.WrapMeasurer, error) {
	adv, err := s.Advance(family, false, g.FontSize)
	if err != nil {
		return layout.WrapMeasurer{}, err
	}
	return layout.NewWrapMeasurer(g, adv), nil
}

// Close releases every cached face.
func (s *FontSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, face := range s.faces {
		_ = face.Close()
		delete(s.faces, k)
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
