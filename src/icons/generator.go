package icons

// Icon generator for browser extension packaging
//
// Two entry points:
// 1. FromPath resizes one base image into every configured size
//    (default 16, 48, 128) with a high quality resampling filter.
// 2. Placeholders synthesizes accent-colored squares with a centered
//    circle when no base image exists yet.
//
// Both write <output.dir>/icon{size}.png, overwriting existing files, and
// optionally bundle the results into a multi-size favicon.ico.

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"iconforge/src/config"
)

var (
	ErrInputNotFound = errors.New("input image not found")
	ErrDecode        = errors.New("failed to decode input image")
	ErrWrite         = errors.New("failed to write icon")
)

// Outcome classifies how a generation run ended
type Outcome int

const (
	Success Outcome = iota
	InputNotFound
	DecodeFailed
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case InputNotFound:
		return "input-not-found"
	case DecodeFailed:
		return "decode-failed"
	case WriteFailed:
		return "write-failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Icon is one written output file
type Icon struct {
	Size int
	Path string
}

// Result reports what a run produced. Icons lists every file written,
// including those written before a failure.
type Result struct {
	Outcome Outcome
	Icons   []Icon
	Favicon string
}

// Generator produces icon sets according to the configuration
type Generator struct {
	cfg    *config.Config
	filter imaging.ResampleFilter
}

// NewGenerator creates a new icon generator
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:    cfg,
		filter: resampleFilter(cfg.Resize.Filter),
	}
}

// FromPath resizes the image at path into every configured size.
// A missing input is reported as InputNotFound without touching the
// file system.
func (g *Generator) FromPath(path string) (Result, error) {
	info, err := os.Stat(path)
	if (err == nil && info.IsDir()) || errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error: %s not found", path)
		return Result{Outcome: InputNotFound}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		log.Printf("Error: cannot access %s: %v", path, err)
		return Result{Outcome: DecodeFailed}, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}

	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("Error: cannot read %s: %v", path, err)
		return Result{Outcome: DecodeFailed}, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}

	b := src.Bounds()
	log.Printf("Generating icons from %s (%dx%d)...", path, b.Dx(), b.Dy())

	return g.writeAll(func(size int) image.Image {
		return resizeSquare(src, size, g.filter, g.cfg.Resize.Fit)
	}, "Generated")
}

// Placeholders writes synthesized icons for every configured size
func (g *Generator) Placeholders() (Result, error) {
	bg := g.cfg.Placeholder.Background
	fg := g.cfg.Placeholder.Foreground

	return g.writeAll(func(size int) image.Image {
		return drawPlaceholder(size, bg, fg)
	}, "Generated placeholder")
}

func (g *Generator) writeAll(render func(size int) image.Image, verb string) (Result, error) {
	result := Result{Outcome: Success}

	if err := os.MkdirAll(g.cfg.Output.Dir, 0755); err != nil {
		result.Outcome = WriteFailed
		return result, fmt.Errorf("%w: failed to create output directory %s: %w", ErrWrite, g.cfg.Output.Dir, err)
	}

	var bundle []image.Image
	for _, size := range g.cfg.Sizes {
		img := render(size)
		path := g.cfg.IconPath(size)

		if err := writePNG(path, img); err != nil {
			result.Outcome = WriteFailed
			return result, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
		}
		result.Icons = append(result.Icons, Icon{Size: size, Path: path})
		log.Printf("%s %s (%dx%d)", verb, path, size, size)

		if g.cfg.Favicon.Enabled && size <= maxFaviconSize {
			bundle = append(bundle, img)
		}
	}

	if g.cfg.Favicon.Enabled {
		if len(bundle) == 0 {
			log.Printf("Skipping favicon: no size fits in %dx%d", maxFaviconSize, maxFaviconSize)
			return result, nil
		}
		path := g.cfg.FaviconPath()
		if err := writeFavicon(path, bundle); err != nil {
			result.Outcome = WriteFailed
			return result, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
		}
		result.Favicon = path
		log.Printf("Generated %s (%d sizes)", path, len(bundle))
	}

	return result, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
