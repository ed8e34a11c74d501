package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/csdlc/csdlc/ast"
)

// LoadFiles parses every named file concurrently and assembles the results
// into a Bundle, in the style of the generator's parallel-file pipeline:
// one goroutine per input, bounded by workers, errors aggregated rather
// than short-circuited so a run reports every broken file in one pass.
func LoadFiles(ctx context.Context, paths []string, workers int) (*Bundle, error) {
	docs := make([]*ast.EdmxDocument, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	var mu sync.Mutex
	var errs error
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := loadFile(p)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", p, err))
				mu.Unlock()
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if errs != nil {
		return nil, errs
	}
	return &Bundle{Documents: docs}, nil
}

func loadFile(path string) (*ast.EdmxDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseReader(f)
}

func parseReader(r io.Reader) (*ast.EdmxDocument, error) {
	return ast.Parse(r)
}
