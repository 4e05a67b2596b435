package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeconds(t *testing.T, label string, on, off float64) Segment {
	t.Helper()
	seg, err := SecondsSegment(label, on, off)
	require.NoError(t, err)
	return seg
}

func TestFromSegments(t *testing.T) {
	segs := []Segment{mustSeconds(t, "a", 0, 1), mustSeconds(t, "b", 2, 3)}
	seq := FromSegments(segs)

	// mutating the input must not change the sequence
	segs[0] = mustSeconds(t, "z", 5, 6)

	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, []string{"a", "b"}, seq.Labels())
	assert.Equal(t, []float64{0, 2}, seq.OnsetsS())
	assert.Equal(t, []float64{1, 3}, seq.OffsetsS())
	assert.True(t, seq.HasSeconds())
	assert.False(t, seq.HasSamples())
	assert.Equal(t, []int64{-1, -1}, seq.OnsetSamples())
}

func TestFromKeyword(t *testing.T) {
	t.Run("seconds", func(t *testing.T) {
		seq, err := FromKeyword(Keywords{
			Labels:   []string{"a", "b", "c"},
			OnsetsS:  []float64{0.1, 0.5, 0.9},
			OffsetsS: []float64{0.2, 0.6, 1.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, seq.Len())
		assert.Equal(t, "c", seq.At(2).Label())
	})

	t.Run("empty", func(t *testing.T) {
		seq, err := FromKeyword(Keywords{})
		require.NoError(t, err)
		assert.Equal(t, 0, seq.Len())
		assert.True(t, seq.Equal(Sequence{}))
	})

	t.Run("labels without timing", func(t *testing.T) {
		_, err := FromKeyword(Keywords{Labels: []string{"a"}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unpaired", func(t *testing.T) {
		_, err := FromKeyword(Keywords{Labels: []string{"a"}, OnsetsS: []float64{1}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FromKeyword(Keywords{Labels: []string{"a", "b"}, OnsetSamples: []int64{1}, OffsetSamples: []int64{2}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KeyOnsetSamples, ve.Field)
	})

	t.Run("element error carries index", func(t *testing.T) {
		_, err := FromKeyword(Keywords{
			Labels:   []string{"a", "b"},
			OnsetsS:  []float64{0, 3},
			OffsetsS: []float64{1, 2},
		})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, 1, ve.Index)
		assert.Contains(t, ve.Error(), "element 1")
	})
}

func TestFromDict(t *testing.T) {
	t.Run("vectors", func(t *testing.T) {
		seq, err := FromDict(map[string]any{
			"labels":         []any{"a", 2},
			"onset_samples":  []int{0, 100},
			"offset_samples": []float64{50, 150},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "2"}, seq.Labels())
		assert.Equal(t, []int64{50, 150}, seq.OffsetSamples())
	})

	t.Run("bare scalars", func(t *testing.T) {
		seq, err := FromDict(map[string]any{"labels": 3, "onsets_s": 0.5, "offsets_s": 0.75})
		require.NoError(t, err)
		require.Equal(t, 1, seq.Len())
		assert.Equal(t, "3", seq.At(0).Label())
	})

	t.Run("label string split per character", func(t *testing.T) {
		seq, err := FromDict(map[string]any{
			"labels":    "abc",
			"onsets_s":  []float64{0, 1, 2},
			"offsets_s": []float64{0.5, 1.5, 2.5},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, seq.Labels())
	})

	t.Run("label string mismatch", func(t *testing.T) {
		_, err := FromDict(map[string]any{"labels": "ab", "onsets_s": []float64{0, 1, 2}, "offsets_s": []float64{1, 2, 3}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty vectors", func(t *testing.T) {
		seq, err := FromDict(map[string]any{"labels": []string{}, "onsets_s": []float64{}, "offsets_s": []float64{}})
		require.NoError(t, err)
		assert.Equal(t, 0, seq.Len())
	})

	t.Run("missing labels", func(t *testing.T) {
		_, err := FromDict(map[string]any{"onsets_s": []float64{0}, "offsets_s": []float64{1}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := FromDict(map[string]any{"labels": []string{}, "durations": []float64{}})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSequenceToDict(t *testing.T) {
	seq, err := FromKeyword(Keywords{
		Labels:        []string{"a", "b"},
		OnsetsS:       []float64{0, 1},
		OffsetsS:      []float64{0.5, 1.5},
		OnsetSamples:  []int64{0, 16000},
		OffsetSamples: []int64{8000, 24000},
	})
	require.NoError(t, err)

	back, err := FromDict(seq.ToDict())
	require.NoError(t, err)
	assert.True(t, back.Equal(seq))
}

func TestSequenceMixedTiming(t *testing.T) {
	sampled, err := SampleSegment("b", 10, 20)
	require.NoError(t, err)
	seq := FromSegments([]Segment{mustSeconds(t, "a", 0, 1), sampled})

	assert.False(t, seq.HasSeconds())
	assert.False(t, seq.HasSamples())
	assert.True(t, math.IsNaN(seq.OnsetsS()[1]))

	d := seq.ToDict()
	assert.NotContains(t, d, KeyOnsetsS)
	assert.NotContains(t, d, KeyOnsetSamples)
}

func TestSequenceAll(t *testing.T) {
	seq := FromSegments([]Segment{mustSeconds(t, "a", 0, 1), mustSeconds(t, "b", 1, 2), mustSeconds(t, "c", 2, 3)})

	var labels []string
	for i, seg := range seq.All() {
		if i == 2 {
			break
		}
		labels = append(labels, seg.Label())
	}
	assert.Equal(t, []string{"a", "b"}, labels)
	assert.Equal(t, "<Sequence with 3 segments>", seq.String())
}
