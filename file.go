package annotkit

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/annotkit/internal/types"
)

// Load reads one annotation file of the named format and normalizes it into
// Annotations.
//
// Example:
//
//	annots, err := annotkit.Load(ctx, "aud-seq", "bird1.txt",
//	    annotkit.WithNotatedPath("bird1.wav"),
//	)
func Load(ctx context.Context, format, path string, opts ...Option) ([]Annotation, error) {
	t, err := NewTranscriber(format)
	if err != nil {
		return nil, err
	}
	return t.load(ctx, path, opts...)
}

func (t *Transcriber) load(ctx context.Context, path string, opts ...Option) ([]Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loaded, err := t.FromFile(path, opts...)
	if err != nil {
		return nil, err
	}
	annots, err := loaded.ToAnnot()
	if err != nil {
		return nil, err
	}
	types.NewOptions(opts...).Logger.Debug("normalized annotation file",
		"format", t.format.Name(), "path", path, "annotations", len(annots))
	return annots, nil
}

// LoadMany loads many files of one format concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// The Annotations are returned in the order of paths. The first failure
// cancels the remaining files and is returned with the failing path.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	annots, err := annotkit.LoadMany(ctx, "timit", paths)
//	if err != nil {
//		log.Fatal(err)
//	}
func LoadMany(ctx context.Context, format string, paths []string, opts ...Option) ([]Annotation, error) {
	return LoadManyFunc(ctx, format, paths, func(string) []Option { return opts })
}

// LoadManyFunc is LoadMany with options chosen per file, e.g. to point each
// annotation file at its own audio file:
//
//	annots, err := annotkit.LoadManyFunc(ctx, "aud-seq", paths, func(path string) []annotkit.Option {
//		return []annotkit.Option{annotkit.WithNotatedPath(strings.TrimSuffix(path, ".txt") + ".wav")}
//	})
func LoadManyFunc(ctx context.Context, format string, paths []string, optsFor func(path string) []Option) ([]Annotation, error) {
	t, err := NewTranscriber(format)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([][]Annotation, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			annots, err := t.load(ctx, path, optsFor(path)...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = annots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Annotation
	for _, annots := range results {
		all = append(all, annots...)
	}
	return all, nil
}
