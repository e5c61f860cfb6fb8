package wavio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-slice/split"
	"golang.org/x/sync/errgroup"
)

// SegmentPath returns the file name of slice i, e.g. "loop_003.wav".
func SegmentPath(dir, base string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d.wav", base, i))
}

// BaseName strips directory and extension from an input path.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// WriteAll writes every buffer to dir/<base>_NNN.wav, at most workers at a
// time, and returns the paths in slice order. The first failure cancels the
// remaining writes.
func WriteAll(ctx context.Context, dir, base string, bufs []split.Buffer, workers int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, len(bufs))
	for i := range bufs {
		paths[i] = SegmentPath(dir, base, i)
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, b := range bufs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return Write(paths[i], b)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
