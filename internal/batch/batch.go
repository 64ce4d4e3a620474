// Package batch converts many description files in parallel.
// Conversions share nothing, so files are processed concurrently with a bounded
// worker count and results are reported in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/tmsim/pkg/document"
)

// ErrOutputCollision reports two sources that map to the same output file.
var ErrOutputCollision = errors.New("output paths collide")

// Converter is the part of tmsim.Converter the batch runner needs.
type Converter interface {
	ConvertAndEncode(ctx context.Context, src string, format document.Format) ([]byte, error)
}

// Result is the outcome of one file.
type Result struct {
	Path string
	Data []byte
	Err  error
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Run converts every path with at most jobs conversions in flight.
// A failing file does not stop the others; only ctx cancellation does, in
// which case the returned error is the context error.
func Run(ctx context.Context, conv Converter, paths []string, format document.Format, jobs int) ([]Result, error) {
	results := make([]Result, len(paths))
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = convertFile(ctx, conv, path, format)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func convertFile(ctx context.Context, conv Converter, path string, format document.Format) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("failed to read source: %w", err)}
	}
	data, err := conv.ConvertAndEncode(ctx, string(src), format)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Data: data}
}

// OutputPath maps a source file to its document path inside dir.
// "machines/add.tmsim" with YAML becomes "<dir>/add.yaml".
func OutputPath(src, dir string, format document.Format) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+format.Extension())
}

// CheckOutputs fails with ErrOutputCollision when two sources would be written
// to the same file in dir, such as "a/m.tmsim" and "b/m.tmsim".
func CheckOutputs(paths []string, dir string, format document.Format) error {
	seen := make(map[string]string, len(paths))
	var errs []error
	for _, path := range paths {
		out := OutputPath(path, dir, format)
		if first, ok := seen[out]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, first, path, out))
			continue
		}
		seen[out] = path
	}
	return errors.Join(errs...)
}

// Write stores every successful result in dir and returns the first write error.
// Nothing is written when two results would share an output file.
func Write(results []Result, dir string, format document.Format) error {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			paths = append(paths, r.Path)
		}
	}
	if err := CheckOutputs(paths, dir, format); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		data, err := document.ForFile(r.Data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
		if err := os.WriteFile(OutputPath(r.Path, dir, format), data, 0o644); err != nil {
			return fmt.Errorf("failed to write output for %s: %w", r.Path, err)
		}
	}
	return nil
}
