package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(ctx context.Context, fsys fs.FS, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fsys == nil {
		return nil, errors.New("scad loader: fs.FS is not configured")
	}
	if name == "" {
		return nil, errors.New("scad loader: fs entry name is required")
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("scad loader: read fs entry %q: %w", name, err)
	}
	return data, nil
}
