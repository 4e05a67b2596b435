package annotkit_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/annotkit"
)

var builtins = []string{"aud-bbox", "aud-seq", "generic-seq", "generic-seq-db", "raven", "simple-seq", "timit"}

type customFormat struct{ name string }

func (f customFormat) Name() string { return f.name }
func (customFormat) Ext() []string { return []string{".custom"} }
func (customFormat) FromFile(string, ...annotkit.Option) (annotkit.SeqLike, error) {
	return nil, nil
}

type plainFormat struct{}

func (plainFormat) Name() string { return "plain" }
func (plainFormat) Ext() []string { return []string{".plain"} }

func TestAsListBuiltins(t *testing.T) {
	names := annotkit.AsList()
	for _, name := range builtins {
		assert.Contains(t, names, name)
	}
	assert.True(t, slices.IsSorted(names))
}

func TestRegister(t *testing.T) {
	before := annotkit.AsList()

	require.NoError(t, annotkit.Register(customFormat{name: "test-custom-a"}))
	require.NoError(t, annotkit.Register(customFormat{name: "test-custom-b"}))

	err := annotkit.Register(customFormat{name: "test-custom-a"})
	require.ErrorIs(t, err, annotkit.ErrConfig)

	err = annotkit.Register(customFormat{name: "aud-seq"})
	require.ErrorIs(t, err, annotkit.ErrConfig)

	err = annotkit.Register(plainFormat{})
	require.ErrorIs(t, err, annotkit.ErrConfig)

	after := annotkit.AsList()
	assert.Len(t, after, len(before)+2)
	assert.True(t, slices.IsSorted(after))
	assert.Len(t, slices.Compact(slices.Clone(after)), len(after))

	f, err := annotkit.ByName("test-custom-b")
	require.NoError(t, err)
	assert.Equal(t, "test-custom-b", f.Name())
}

func TestByNameUnknown(t *testing.T) {
	_, err := annotkit.ByName("doesnotexist")
	var nf *annotkit.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "doesnotexist", nf.Name)
	assert.Subset(t, nf.Valid, builtins)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"bird1.txt", []string{"aud-bbox", "aud-seq", "raven", "simple-seq"}},
		{"all.csv", []string{"generic-seq", "simple-seq"}},
		{"all.sqlite", []string{"generic-seq-db"}},
		{"SA1.PHN", []string{"timit"}},
		{"song.wav", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, annotkit.ForPath(tt.path))
		})
	}
}

func TestNewTranscriberUnknownFails(t *testing.T) {
	tr, err := annotkit.NewTranscriber("doesnotexist")
	require.ErrorIs(t, err, annotkit.ErrNotFound)
	assert.Nil(t, tr)
}

func TestNewTranscriber(t *testing.T) {
	for _, name := range builtins {
		tr, err := annotkit.NewTranscriber(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tr.Format().Name())
		assert.Equal(t, "Transcriber(format="+name+")", tr.String())
	}
}

func TestNewTranscriberFor(t *testing.T) {
	tr, err := annotkit.NewTranscriberFor(customFormat{name: "unregistered"})
	require.NoError(t, err)
	assert.Equal(t, "unregistered", tr.Format().Name())

	_, err = annotkit.NewTranscriberFor(plainFormat{})
	require.ErrorIs(t, err, annotkit.ErrConfig)

	_, err = annotkit.NewTranscriberFor(nil)
	require.ErrorIs(t, err, annotkit.ErrConfig)
}
