package preview

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// FileName is the preview written next to the exported meshes.
const FileName = "preview.webp"

// WriteWebP encodes img losslessly.
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: encode webp: %w", err)
	}
	return nil
}

// WriteFile encodes img into dir/FileName and returns the path.
func WriteFile(dir string, img image.Image) (string, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := WriteWebP(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("preview: close %s: %w", path, err)
	}
	return path, nil
}
