package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/geocluster/internal/fsutil"
)

// Save writes <runID>.png, and <runID>.html when withHTML is set, into dir.
// It returns the paths written.
func (m *MapRenderer) Save(fsys fsutil.FileSystem, dir, runID string, withHTML bool) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	pngPath := filepath.Join(dir, runID+".png")
	if err := writeFile(fsys, pngPath, m.RenderPNG); err != nil {
		return written, err
	}
	written = append(written, pngPath)

	if withHTML {
		htmlPath := filepath.Join(dir, runID+".html")
		if err := writeFile(fsys, htmlPath, m.RenderHTML); err != nil {
			return written, err
		}
		written = append(written, htmlPath)
	}
	return written, nil
}

func writeFile(fsys fsutil.FileSystem, path string, render func(io.Writer) error) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
