package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/importer"
	"github.com/dmitrijs2005/gophcards/internal/client/media"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// VocabularyView lists the cards of one dataset.
type VocabularyView struct {
	*ResourceView[models.VocabularyCard]
	datasetID string
	userID    string
}

func NewVocabularyView(env *Env, datasetID string) *VocabularyView {
	userID := env.userID()
	return &VocabularyView{
		ResourceView: NewResourceView(env, cardSchema(env, userID, datasetID)),
		datasetID:    datasetID,
		userID:       userID,
	}
}

func (v *VocabularyView) DatasetID() string { return v.datasetID }

func cardSchema(env *Env, userID, datasetID string) Schema[models.VocabularyCard] {
	type C = models.VocabularyCard
	return Schema[C]{
		Name: "cards",
		Fields: []Field[C]{
			ReadOnly("id", func(c C) string { return c.ID }),
			TextField("word",
				func(c C) string { return c.Word },
				func(c *C, v string) { c.Word = v }),
			TextField("meaning_en",
				func(c C) string { return c.MeaningEN },
				func(c *C, v string) { c.MeaningEN = v }),
			TextField("meaning_vi",
				func(c C) string { return c.MeaningVI },
				func(c *C, v string) { c.MeaningVI = v }),
			TextField("ipa_transcription",
				func(c C) string { return c.IPATranscription },
				func(c *C, v string) { c.IPATranscription = v }),
			TextField("word_type",
				func(c C) string { return c.WordType },
				func(c *C, v string) { c.WordType = v }),
			ListField("example_sentences_en",
				func(c C) []string { return c.ExampleSentencesEN },
				func(c *C, v []string) { c.ExampleSentencesEN = v }),
			ListField("example_sentences_vi",
				func(c C) []string { return c.ExampleSentencesVI },
				func(c *C, v []string) { c.ExampleSentencesVI = v }),
			ListField("synonyms",
				func(c C) []string { return c.Synonyms },
				func(c *C, v []string) { c.Synonyms = v }),
			ListField("antonyms",
				func(c C) []string { return c.Antonyms },
				func(c *C, v []string) { c.Antonyms = v }),
			ListField("vocab_family",
				func(c C) []string { return c.VocabFamily },
				func(c *C, v []string) { c.VocabFamily = v }),
			TextField("visual_image_url",
				func(c C) string { return c.VisualImageURL },
				func(c *C, v string) { c.VisualImageURL = v }),
			TextField("audio_url_word",
				func(c C) string { return c.AudioURLWord },
				func(c *C, v string) { c.AudioURLWord = v }),
			TextField("audio_url_example1",
				func(c C) string { return c.AudioURLExample1 },
				func(c *C, v string) { c.AudioURLExample1 = v }),
			TextField("audio_url_example2",
				func(c C) string { return c.AudioURLExample2 },
				func(c *C, v string) { c.AudioURLExample2 = v }),
		},
		Row: func(c C) string {
			row := fmt.Sprintf("[%s] %s", c.ID, c.Word)
			if c.IPATranscription != "" {
				row += " /" + strings.Trim(c.IPATranscription, "/") + "/"
			}
			if c.MeaningEN != "" {
				row += ": " + c.MeaningEN
			}
			return row + shortList(c.Synonyms)
		},
		New: func() C { return C{UserID: userID, DatasetID: datasetID} },
		List: func(ctx context.Context) ([]C, error) {
			return env.API.ListCards(ctx, datasetID)
		},
		Create: env.API.CreateCard,
		Update: env.API.UpdateCard,
		Delete: env.API.DeleteCard,
	}
}

func (v *VocabularyView) Help() string {
	return v.ResourceView.Help() + ", generate <word>, import <file> [sheet]"
}

func (v *VocabularyView) Handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "generate":
		if len(args) == 0 {
			v.env.printf("Usage: generate <word>")
			return nil
		}
		draft, err := v.Generate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		v.env.printf("%s", describeItem(v.schema.Fields, draft))
		v.env.printf("Review the generated card (Enter keeps a value, %q clears it).", clearValue)
		if err := fill(v.env.Prompt, v.schema.Fields, &draft); err != nil {
			return err
		}
		_, err = v.Add(ctx, draft)
		return err

	case "import":
		if len(args) == 0 {
			v.env.printf("Usage: import <file.xlsx|file.csv> [sheet]")
			return nil
		}
		cfg := importer.DefaultConfig(args[0])
		if len(args) > 1 {
			cfg.Sheet = args[1]
		}
		_, err := v.Import(ctx, cfg)
		return err
	}
	return v.ResourceView.Handle(ctx, cmd, args)
}

// Generate asks the backend for suggestions and returns an unsaved draft.
// Returned audio is stored through the media store; a storage failure is
// reported and leaves the audio URL empty.
func (v *VocabularyView) Generate(ctx context.Context, word string) (models.VocabularyCard, error) {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	draft := v.schema.New()
	draft.Word = word

	fields, err := v.env.API.GenerateFields(ctx, word)
	if err != nil {
		v.env.fail("Failed to generate fields", err)
		return draft, err
	}
	fields.ApplyTo(&draft)

	if fields.AudioBase64 != "" && v.env.Media != nil {
		u, err := media.SaveAudio(ctx, v.env.Media, word, fields.AudioBase64)
		if err != nil {
			v.env.fail("Failed to store audio", err)
		} else {
			draft.AudioURLWord = u
		}
	}
	return draft, nil
}

// Import bulk-creates cards from a spreadsheet into this dataset.
func (v *VocabularyView) Import(ctx context.Context, cfg importer.Config) (*importer.Result, error) {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	res, err := importer.Import(ctx, v.env.API, v.datasetID, v.userID, cfg)
	if res != nil {
		for _, c := range res.Cards {
			v.items.Upsert(c)
		}
	}
	if err != nil {
		v.env.fail("Import failed", err)
		return res, err
	}

	v.env.printf("Imported %d of %d rows (%d skipped, %d failed).",
		res.Created, res.Processed, res.Skipped, len(res.Errors))
	for _, e := range res.Errors {
		v.env.printf("  %s", e)
	}
	return res, nil
}
