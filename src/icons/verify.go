package icons

import (
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"iconforge/src/config"
)

// Verify checks that every configured icon exists in the output directory,
// decodes, and has the expected square dimensions. All problems are
// reported together.
func Verify(cfg *config.Config) error {
	var problems []error

	for _, size := range cfg.Sizes {
		path := cfg.IconPath(size)

		f, err := os.Open(path)
		if err != nil {
			problems = append(problems, fmt.Errorf("icon%d: %w", size, err))
			continue
		}
		img, err := imaging.Decode(f)
		f.Close()
		if err != nil {
			problems = append(problems, fmt.Errorf("icon%d: failed to decode %s: %w", size, path, err))
			continue
		}

		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size {
			problems = append(problems, fmt.Errorf("icon%d: %s is %dx%d", size, path, b.Dx(), b.Dy()))
		}
	}

	return errors.Join(problems...)
}
