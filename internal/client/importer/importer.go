// Package importer bulk-creates vocabulary cards from .xlsx or .csv files.
//
// Columns, in order: word, meaning_en, meaning_vi, ipa_transcription,
// word_type, example_sentences_en, synonyms. The last two hold several values
// separated by "|". Rows without a word are skipped.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/xuri/excelize/v2"
)

const listSeparator = "|"

const (
	colWord = iota
	colMeaningEN
	colMeaningVI
	colIPA
	colWordType
	colExamples
	colSynonyms
)

var ErrUnsupportedFormat = errors.New("unsupported file format (want .xlsx or .csv)")

// CardCreator is the API operation the importer drives.
type CardCreator interface {
	CreateCard(ctx context.Context, c models.VocabularyCard) (models.VocabularyCard, error)
}

type Config struct {
	Path string
	// Sheet defaults to the first sheet of the workbook.
	Sheet      string
	SkipHeader bool
}

func DefaultConfig(path string) Config {
	return Config{Path: path, SkipHeader: true}
}

type Result struct {
	Processed int
	Created   int
	Skipped   int
	Cards     []models.VocabularyCard
	Errors    []string
}

// Import reads cfg.Path and creates one card per row in datasetID. Failing
// rows are recorded in Result.Errors and do not stop the import; a canceled
// context does, returning what was created so far.
func Import(ctx context.Context, api CardCreator, datasetID, userID string, cfg Config) (*Result, error) {
	rows, err := ReadRows(cfg.Path, cfg.Sheet)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}

	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Processed++

		card, ok := CardFromRow(row)
		if !ok {
			result.Skipped++
			continue
		}
		card.DatasetID = datasetID
		card.UserID = userID

		created, err := api.CreateCard(ctx, card)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, card.Word, err))
			continue
		}
		result.Created++
		result.Cards = append(result.Cards, created)
	}

	return result, nil
}

// ReadRows returns the raw cells of an .xlsx sheet or a .csv file.
func ReadRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path, sheet)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// CardFromRow maps a row onto a card draft; ok is false when the word cell
// is empty.
func CardFromRow(row []string) (models.VocabularyCard, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := cell(colWord)
	if word == "" {
		return models.VocabularyCard{}, false
	}

	return models.VocabularyCard{
		Word:               word,
		MeaningEN:          cell(colMeaningEN),
		MeaningVI:          cell(colMeaningVI),
		IPATranscription:   cell(colIPA),
		WordType:           cell(colWordType),
		ExampleSentencesEN: SplitList(cell(colExamples)),
		Synonyms:           SplitList(cell(colSynonyms)),
	}, true
}

// SplitList splits a "|"-separated cell, dropping blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
