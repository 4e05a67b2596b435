package timit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/annotkit/internal/types"
)

const phn = "0 3050 h#\n3050 4559 sh\n4559 5723 ix\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWav(t *testing.T, path string, rate int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, 160),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestFromFileSamplesOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "SA1.PHN", phn)
	loaded, err := Format{}.FromFile(path)
	require.NoError(t, err)

	seqs, err := loaded.ToSeq()
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	seq := seqs[0]
	assert.Equal(t, []string{"h#", "sh", "ix"}, seq.Labels())
	assert.Equal(t, []int64{0, 3050, 4559}, seq.OnsetSamples())
	assert.True(t, seq.HasSamples())
	assert.False(t, seq.HasSeconds())

	annots, err := loaded.ToAnnot()
	require.NoError(t, err)
	assert.Equal(t, "", annots[0].NotatedPath())
}

func TestFromFileSampleRateOption(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sa1.phn", phn)
	loaded, err := Format{}.FromFile(path, types.WithSampleRate(16000))
	require.NoError(t, err)
	seqs, err := loaded.ToSeq()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.191, 0.285}, seqs[0].OnsetsS())
	assert.Equal(t, []float64{0.191, 0.285, 0.358}, seqs[0].OffsetsS())
}

func TestFromFileSiblingWav(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "SA1.WRD", "0 3050 she\n3050 5723 had\n")
	wavPath := filepath.Join(dir, "SA1.WAV")
	writeWav(t, wavPath, 8000)

	loaded, err := Format{}.FromFile(path, types.WithoutRounding())
	require.NoError(t, err)
	assert.Equal(t, 8000, loaded.(*Transcript).SampleRateHz())

	annots, err := loaded.ToAnnot()
	require.NoError(t, err)
	assert.Equal(t, wavPath, annots[0].NotatedPath())
	seq, _ := annots[0].Seq()
	assert.Equal(t, []float64{0, 3050.0 / 8000}, seq.OnsetsS())
}

func TestFromFileInvalidWav(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "SA1.PHN", phn)
	writeFile(t, dir, "SA1.wav", "not audio")

	_, err := Format{}.FromFile(path)
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "SA1.txt", phn},
		{"two fields", "SA1.phn", "0 3050\n"},
		{"negative sample", "SA1.phn", "-1 3050 h#\n"},
		{"bad sample", "SA1.phn", "0 end h#\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format{}.FromFile(writeFile(t, t.TempDir(), tt.file, tt.content))
			require.ErrorIs(t, err, types.ErrFormat)
		})
	}
}

func TestToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	loaded, err := Format{}.FromFile(writeFile(t, dir, "in.phn", phn))
	require.NoError(t, err)
	seqs, err := loaded.ToSeq()
	require.NoError(t, err)

	tr, err := New(seqs[0], "in.phn", "")
	require.NoError(t, err)
	out := filepath.Join(dir, "out.phn")
	require.NoError(t, tr.ToFile(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, phn, string(data))
}

func TestToFileRejectsUnreadableText(t *testing.T) {
	for _, text := range []string{"", "h #", "sh\t", "ix\n"} {
		t.Run(text, func(t *testing.T) {
			seg, err := types.SampleSegment(text, 0, 3050)
			require.NoError(t, err)
			tr, err := New(types.FromSegments([]types.Segment{seg}), "in.phn", "")
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), "out.phn")
			require.ErrorIs(t, tr.ToFile(out), types.ErrFormat)
			assert.NoFileExists(t, out)
		})
	}
}
