package sqlitedb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/annotkit/internal/generic"
	"github.com/simonhull/annotkit/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "annots.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	table := generic.Table{
		{
			OnsetS:    sql.NullFloat64{Float64: 0.25, Valid: true},
			OffsetS:   sql.NullFloat64{Float64: 1.5, Valid: true},
			Label:     "a",
			AnnotPath: "x.ann",
		},
		{
			OnsetSample:  sql.NullInt64{Int64: 16000, Valid: true},
			OffsetSample: sql.NullInt64{Int64: 32000, Valid: true},
			Label:        "b",
			AnnotPath:    "x.ann",
			NotatedPath:  "x.wav",
			Annot:        1,
			Seq:          2,
		},
		{AnnotPath: "y.ann", Annot: 2},
	}
	require.NoError(t, s.Save(ctx, table))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(table), "got %v", loaded)

	// Save replaces the previous contents.
	require.NoError(t, s.Save(ctx, table[:1]))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestStoreEmpty(t *testing.T) {
	s := openTestStore(t)
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFormatRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annots.db")
	a, err := types.SecondsSegment("a", 0, 1)
	require.NoError(t, err)
	annots := []types.Annotation{}
	for _, p := range []string{"one.txt", "two.txt"} {
		annot, err := types.NewSeqAnnotation(p, "", types.FromSegments([]types.Segment{a}), types.FromSegments(nil))
		require.NoError(t, err)
		annots = append(annots, annot)
	}
	require.NoError(t, WriteFile(context.Background(), path, annots))

	loaded, err := Format{}.FromFile(path)
	require.NoError(t, err)
	got, err := loaded.ToAnnot()
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range annots {
		assert.True(t, got[i].Equal(annots[i]))
	}

	copyPath := filepath.Join(t.TempDir(), "copy.sqlite")
	require.NoError(t, loaded.(types.FileWriter).ToFile(copyPath))
	again, err := ReadFile(context.Background(), copyPath)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestFormatFromFileErrors(t *testing.T) {
	_, err := Format{}.FromFile("annots.csv")
	require.ErrorIs(t, err, types.ErrFormat)

	_, err = Format{}.FromFile(filepath.Join(t.TempDir(), "missing.db"))
	require.ErrorIs(t, err, types.ErrFormat)
}

func TestReadFileForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE x (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = ReadFile(context.Background(), path)
	var se *types.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Reason, "generic_seq")
	assert.Equal(t, path, se.Path)

	_, err = Format{}.FromFile(path)
	assert.ErrorIs(t, err, types.ErrSchema)

	// Reading must leave the file untouched.
	db, err = sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var tables []string
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"x"}, tables)
}

func TestReadFileNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	require.NoError(t, os.WriteFile(path, []byte("onset_s,offset_s,label\n0,1,a\n"), 0o644))

	_, err := ReadFile(context.Background(), path)
	assert.ErrorIs(t, err, types.ErrFormat)
}

func TestSpecialCharactersInPath(t *testing.T) {
	seg, err := types.SecondsSegment("a", 0, 1)
	require.NoError(t, err)

	for _, name := range []string{"a?b.db", "c#d.db", "e%20f.sqlite", "g h.db"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)
			annot, err := types.NewSeqAnnotation("x.txt", "", types.FromSegments([]types.Segment{seg}))
			require.NoError(t, err)

			require.NoError(t, WriteFile(context.Background(), path, []types.Annotation{annot}))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, name, entries[0].Name())

			got, err := ReadFile(context.Background(), path)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.True(t, got[0].Equal(annot))
		})
	}
}

func TestDataSource(t *testing.T) {
	dsn, err := dataSource("/data/a?b#c.db", true)
	require.NoError(t, err)
	assert.Equal(t, "file:///data/a%3Fb%23c.db?mode=ro&_pragma=busy_timeout(5000)", dsn)

	dsn, err = dataSource("/data/x.db", false)
	require.NoError(t, err)
	assert.Equal(t, "file:///data/x.db?_pragma=busy_timeout(5000)", dsn)
}
