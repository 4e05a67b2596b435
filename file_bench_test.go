package annotkit_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/annotkit"
)

// benchmarkAnnotations builds n annotations of one sequence with segs segments.
func benchmarkAnnotations(b *testing.B, n, segs int) []annotkit.Annotation {
	b.Helper()

	annots := make([]annotkit.Annotation, 0, n)
	for i := range n {
		segments := make([]annotkit.Segment, 0, segs)
		for j := range segs {
			s, err := annotkit.SecondsSegment(fmt.Sprintf("syl%d", j%7), float64(j), float64(j)+0.5)
			if err != nil {
				b.Fatal(err)
			}
			segments = append(segments, s)
		}
		a, err := annotkit.NewSeqAnnotation(fmt.Sprintf("song%d.txt", i), fmt.Sprintf("song%d.wav", i),
			annotkit.FromSegments(segments))
		if err != nil {
			b.Fatal(err)
		}
		annots = append(annots, a)
	}
	return annots
}

// BenchmarkToTable measures encoding annotations into the generic table.
func BenchmarkToTable(b *testing.B) {
	annots := benchmarkAnnotations(b, 100, 50)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := annotkit.ToTable(annots); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReadTable measures parsing and decoding a generic CSV table.
func BenchmarkReadTable(b *testing.B) {
	table, err := annotkit.ToTable(benchmarkAnnotations(b, 100, 50))
	if err != nil {
		b.Fatal(err)
	}
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		b.Fatal(err)
	}
	data := buf.String()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		t, err := annotkit.ReadTable(strings.NewReader(data), "bench.csv")
		if err != nil {
			b.Fatal(err)
		}
		if _, err := annotkit.FromTable(t, "bench.csv"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLoadMany measures concurrent loading of label tracks.
func BenchmarkLoadMany(b *testing.B) {
	dir := b.TempDir()
	var lines strings.Builder
	for j := range 200 {
		fmt.Fprintf(&lines, "%d.25\t%d.75\tsyl\n", j, j)
	}
	paths := make([]string, 32)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("track%d.txt", i))
		if err := os.WriteFile(paths[i], []byte(lines.String()), 0o644); err != nil {
			b.Fatal(err)
		}
	}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := annotkit.LoadMany(ctx, "aud-seq", paths); err != nil {
			b.Fatal(err)
		}
	}
}
