package progress_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wurdlurnur/internal/model"
	"wurdlurnur/internal/progress"
)

var header = []string{"Word", "Part of Speech", "Context", "Definition", "Word Declensions", "Lurnt",
	"Session #1 - 01.02.2023 10:15", "Session #3 - 05.02.2023 18:40"}

func sampleTable(t *testing.T) *progress.Table {
	t.Helper()
	tbl, err := progress.NewTable(header, [][]string{
		{"demur", "v.", "She demurred.", "[formal] raise objections", "demurred, demurs", "", "pass", "-"},
		{"ossify", "v.", "Ideas ossify.", "turn into bone", "", "yes", "fail", "pass"},
		{"quixotic", "adj.", "A quixotic plan.", "unrealistic"},
	})
	require.NoError(t, err)
	return tbl
}

func TestNewTableRequiresColumns(t *testing.T) {
	_, err := progress.NewTable([]string{"Word", "Context"}, nil)
	assert.True(t, errors.Is(err, progress.ErrMissingColumn))
}

func TestRecordDecodesHistory(t *testing.T) {
	tbl := sampleTable(t)

	rec := tbl.Record(0)
	assert.Equal(t, "demur", rec.Word)
	assert.Equal(t, []string{"demurred", "demurs"}, rec.Declensions)
	assert.False(t, rec.Learned)
	require.Len(t, rec.History, 1)
	assert.Equal(t, model.HistoryEntry{Result: model.Pass, Timestamp: "01.02.2023 10:15"}, rec.History[0])

	rec = tbl.Record(1)
	assert.True(t, rec.Learned)
	assert.Len(t, rec.History, 2)

	// short rows are padded
	assert.Empty(t, tbl.Record(2).History)
}

func TestUnlearnedAndNextSessionIndex(t *testing.T) {
	tbl := sampleTable(t)
	assert.Equal(t, []int{0, 2}, tbl.Unlearned())
	assert.Equal(t, 4, tbl.NextSessionIndex())

	bare, err := progress.NewTable(header[:6], [][]string{{"a", "n.", "", "", "", ""}})
	require.NoError(t, err)
	assert.Equal(t, 1, bare.NextSessionIndex())
}

func TestSetAndAddColumn(t *testing.T) {
	tbl := sampleTable(t)
	name := progress.SessionColumnName(4, time.Date(2024, 3, 9, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, "Session #4 - 09.03.2024 07:05", name)

	tbl.AddColumn(name)
	tbl.AddColumn(name)
	assert.Len(t, tbl.Columns(), len(header)+1)

	require.NoError(t, tbl.Set("quixotic", name, model.Skip.Cell()))
	assert.Equal(t, "-", tbl.Get(2, name))

	err := tbl.Set("nonexistent", name, "pass")
	assert.True(t, errors.Is(err, progress.ErrUnknownWord))
	err = tbl.Set("quixotic", "Session #99", "pass")
	assert.True(t, errors.Is(err, progress.ErrUnknownColumn))
}

func TestCSVStoreRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffWord,Part of Speech,Context,Definition,Word Declensions,Lurnt\n"+
		"demur,v.,\"She demurred, at first.\",object,demurred,\n"), 0o644))

	st := progress.NewCSVStore(path)
	tbl, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "She demurred, at first.", tbl.Record(0).Context)

	tbl.AddColumn("Session #1 - 01.01.2024 09:00")
	require.NoError(t, tbl.Set("demur", "Session #1 - 01.01.2024 09:00", "pass"))
	require.NoError(t, st.Save(tbl))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\ufeff", string(raw[:3]))

	again, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), again.Columns())
	assert.Equal(t, tbl.Rows(), again.Rows())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCSVStoreEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte("Word,Part of Speech,Context,Definition,Lurnt\n"), 0o644))

	_, err := progress.NewCSVStore(path).Load()
	assert.True(t, errors.Is(err, progress.ErrEmptyTable))
}

func TestSQLiteStoreBasicFlow(t *testing.T) {
	t.Parallel()

	st, err := progress.NewSQLiteStore(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	_, err = st.Load()
	assert.True(t, errors.Is(err, progress.ErrEmptyTable))

	tbl := sampleTable(t)
	require.NoError(t, st.Save(tbl))
	require.NoError(t, tbl.Set("demur", progress.ColLearned, progress.LearnedSentinel))
	require.NoError(t, st.Save(tbl))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), got.Columns())
	assert.Equal(t, tbl.Rows(), got.Rows())
	assert.True(t, got.Record(0).Learned)
}

func TestLoadOrImportSeedsSQLite(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cards.csv")
	require.NoError(t, progress.NewCSVStore(csvPath).Save(sampleTable(t)))
	want, err := progress.NewCSVStore(csvPath).Load()
	require.NoError(t, err)

	st, err := progress.NewSQLiteStore(filepath.Join(dir, "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	tbl, imported, err := progress.LoadOrImport(st, csvPath)
	require.NoError(t, err)
	assert.True(t, imported)
	assert.Equal(t, want.Rows(), tbl.Rows())

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Columns(), got.Columns())
	assert.Equal(t, want.Rows(), got.Rows())

	// once seeded the database is authoritative
	require.NoError(t, os.Remove(csvPath))
	_, imported, err = progress.LoadOrImport(st, csvPath)
	require.NoError(t, err)
	assert.False(t, imported)
}

func TestLoadOrImportWithoutSource(t *testing.T) {
	st, err := progress.NewSQLiteStore(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	_, _, err = progress.LoadOrImport(st, "")
	assert.True(t, errors.Is(err, progress.ErrEmptyTable))

	_, _, err = progress.LoadOrImport(st, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestNewByEngine(t *testing.T) {
	st, err := progress.NewByEngine("", filepath.Join(t.TempDir(), "cards.csv"))
	require.NoError(t, err)
	assert.IsType(t, &progress.CSVStore{}, st)

	_, err = progress.NewByEngine("xlsx", "cards.xlsx")
	assert.Error(t, err)
}
