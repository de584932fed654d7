package icons

import (
	"image"
	"os"

	ico "github.com/sergeymakinen/go-ico"
)

// ICO directory entries store width and height in one byte each
const maxFaviconSize = 256

func writeFavicon(path string, images []image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ico.EncodeAll(f, images); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
