package simple

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/annotkit/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []types.Option
		labels  []string
		onsets  []float64
	}{
		{
			name:    "canonical header",
			content: "onset_s,offset_s,label\n0.0,1.0,a\n1.0,2.5,b\n",
			labels:  []string{"a", "b"},
			onsets:  []float64{0, 1},
		},
		{
			name:    "remapped columns and extra column",
			content: ",start_seconds,stop_seconds,name\n0,0.5,0.75,x\n",
			opts: []types.Option{types.WithColumnsMap(map[string]string{
				"start_seconds": "onset_s", "stop_seconds": "offset_s", "name": "label",
			})},
			labels: []string{"x"},
			onsets: []float64{0.5},
		},
		{
			name:    "default label",
			content: "onset_s,offset_s\n0.1,0.2\n",
			opts:    []types.Option{types.WithDefaultLabel("call")},
			labels:  []string{"call"},
			onsets:  []float64{0.1},
		},
		{
			name:    "rounded to milliseconds",
			content: "onset_s,offset_s,label\n0.12345,0.98765,a\n",
			labels:  []string{"a"},
			onsets:  []float64{0.123},
		},
		{
			name:    "without rounding",
			content: "onset_s,offset_s,label\n0.12345,0.98765,a\n",
			opts:    []types.Option{types.WithoutRounding()},
			labels:  []string{"a"},
			onsets:  []float64{0.12345},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "annot.csv", tt.content)
			loaded, err := Format{}.FromFile(path, tt.opts...)
			require.NoError(t, err)
			seqs, err := loaded.ToSeq()
			require.NoError(t, err)
			require.Len(t, seqs, 1)
			assert.Equal(t, tt.labels, seqs[0].Labels())
			assert.Equal(t, tt.onsets, seqs[0].OnsetsS())
		})
	}
}

func TestFromFileEmpty(t *testing.T) {
	for _, content := range []string{"", "onset_s,offset_s,label\n"} {
		path := writeFile(t, "annot.txt", content)
		loaded, err := Format{}.FromFile(path, types.WithNotatedPath("a.wav"))
		require.NoError(t, err)
		annots, err := loaded.ToAnnot()
		require.NoError(t, err)
		require.Len(t, annots, 1)
		seq, ok := annots[0].Seq()
		require.True(t, ok)
		assert.Equal(t, 0, seq.Len())
		assert.Equal(t, "a.wav", annots[0].NotatedPath())
	}
}

func TestFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		opts    []types.Option
		target  error
	}{
		{"wrong extension", "annot.tsv", "onset_s,offset_s,label\n", nil, types.ErrFormat},
		{"missing onset column", "annot.csv", "start,offset_s,label\n0,1,a\n", nil, types.ErrFormat},
		{"bad number", "annot.csv", "onset_s,offset_s,label\nzero,1,a\n", nil, types.ErrFormat},
		{"bad columns map", "annot.csv", "onset_s,offset_s,label\n", []types.Option{types.WithColumnsMap(map[string]string{"a": "begin"})}, types.ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Format{}.FromFile(path, tt.opts...)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestOffsetBeforeOnset(t *testing.T) {
	path := writeFile(t, "annot.csv", "onset_s,offset_s,label\n2,1,a\n")
	loaded, err := Format{}.FromFile(path)
	require.NoError(t, err)
	_, err = loaded.ToSeq()
	require.ErrorIs(t, err, types.ErrFormat)
	require.ErrorIs(t, err, types.ErrValidation)
}

func TestToFileRoundTrip(t *testing.T) {
	a, err := types.SecondsSegment("a", 0.5, 1.25)
	require.NoError(t, err)
	b, err := types.SecondsSegment("b,c", 2, 3)
	require.NoError(t, err)
	s, err := New(types.FromSegments([]types.Segment{a, b}), "in.csv", "")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, s.ToFile(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "onset_s,offset_s,label\n0.5,1.25,a\n2,3,\"b,c\"\n", string(data))

	loaded, err := Format{}.FromFile(out)
	require.NoError(t, err)
	seqs, err := loaded.ToSeq()
	require.NoError(t, err)
	assert.Equal(t, []types.Segment{a, b}, seqs[0].Segments())
}

func TestNewRequiresSeconds(t *testing.T) {
	seg, err := types.SampleSegment("a", 0, 10)
	require.NoError(t, err)
	_, err = New(types.FromSegments([]types.Segment{seg}), "x.csv", "")
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestToFileRejectsCRLF(t *testing.T) {
	seg, err := types.SecondsSegment("a\r\nb", 0, 1)
	require.NoError(t, err)
	s, err := New(types.FromSegments([]types.Segment{seg}), "in.csv", "")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.ErrorIs(t, s.ToFile(out), types.ErrFormat)
	assert.NoFileExists(t, out)
}
