package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeCreator struct {
	created []models.VocabularyCard
	failOn  string
	cancel  func()
}

func (f *fakeCreator) CreateCard(ctx context.Context, c models.VocabularyCard) (models.VocabularyCard, error) {
	if c.Word == f.failOn {
		return models.VocabularyCard{}, errors.New("rejected by backend")
	}
	c.ID = "c" + c.Word
	f.created = append(f.created, c)
	if f.cancel != nil {
		f.cancel()
	}
	return c, nil
}

func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "cards.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImport_XLSX(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"word", "meaning_en", "meaning_vi", "ipa", "type", "examples", "synonyms"},
		{"serendipity", "happy accident", "sự tình cờ", "/ˌser.ənˈdɪp.ə.ti/", "noun", "Pure serendipity.|We met by serendipity.", "luck | chance"},
		{"", "orphan meaning"},
		{"wander", "walk aimlessly"},
	})

	api := &fakeCreator{}
	res, err := Import(context.Background(), api, "d1", "u1", DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Errors)

	require.Len(t, api.created, 2)
	first := api.created[0]
	assert.Equal(t, "serendipity", first.Word)
	assert.Equal(t, "d1", first.DatasetID)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "noun", first.WordType)
	assert.Equal(t, []string{"Pure serendipity.", "We met by serendipity."}, first.ExampleSentencesEN)
	assert.Equal(t, []string{"luck", "chance"}, first.Synonyms)
	assert.Equal(t, "cserendipity", res.Cards[0].ID)
}

func TestImport_CSVWithRowErrors(t *testing.T) {
	path := writeCSV(t, "word,meaning_en\ncat,feline\nbad,broken\ndog,canine\n")

	api := &fakeCreator{failOn: "bad"}
	res, err := Import(context.Background(), api, "d1", "u1", DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 3 (bad)")
}

func TestImport_NoHeader(t *testing.T) {
	path := writeCSV(t, "cat,feline\n")

	cfg := DefaultConfig(path)
	cfg.SkipHeader = false
	res, err := Import(context.Background(), &fakeCreator{}, "d1", "u1", cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestImport_Canceled(t *testing.T) {
	path := writeCSV(t, "word\na\nb\nc\n")

	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeCreator{cancel: cancel}

	res, err := Import(ctx, api, "d1", "u1", DefaultConfig(path))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Created)
}

func TestImport_UnsupportedFormat(t *testing.T) {
	_, err := Import(context.Background(), &fakeCreator{}, "d1", "u1", DefaultConfig("cards.txt"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(context.Background(), &fakeCreator{}, "d1", "u1", DefaultConfig(filepath.Join(t.TempDir(), "none.xlsx")))
	require.Error(t, err)
}

func TestReadRows_NamedSheet(t *testing.T) {
	path := writeXLSX(t, [][]any{{"word"}, {"cat"}})

	rows, err := ReadRows(path, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"word"}, {"cat"}}, rows)

	_, err = ReadRows(path, "Missing")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a || b |"))
}

func TestCardFromRow(t *testing.T) {
	_, ok := CardFromRow([]string{"  "})
	assert.False(t, ok)

	c, ok := CardFromRow([]string{"run", "move fast"})
	require.True(t, ok)
	assert.Equal(t, "run", c.Word)
	assert.Equal(t, "move fast", c.MeaningEN)
	assert.Empty(t, c.MeaningVI)
	assert.Nil(t, c.Synonyms)
}
