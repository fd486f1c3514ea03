package models

import "encoding/json"

type VocabularyCard struct {
	ID                 string   `json:"card_id,omitempty"`
	DatasetID          string   `json:"dataset_id"`
	UserID             string   `json:"user_id"`
	Word               string   `json:"word"`
	MeaningEN          string   `json:"meaning_en"`
	MeaningVI          string   `json:"meaning_vi"`
	IPATranscription   string   `json:"ipa_transcription"`
	ExampleSentencesEN []string `json:"example_sentences_en"`
	ExampleSentencesVI []string `json:"example_sentences_vi"`
	Synonyms           []string `json:"synonyms"`
	Antonyms           []string `json:"antonyms"`
	WordType           string   `json:"word_type"`
	VocabFamily        []string `json:"vocab_family"`
	VisualImageURL     string   `json:"visual_image_url"`
	AudioURLWord       string   `json:"audio_url_word"`
	AudioURLExample1   string   `json:"audio_url_example1"`
	AudioURLExample2   string   `json:"audio_url_example2"`
}

func (c VocabularyCard) Key() string { return c.ID }

func (c *VocabularyCard) UnmarshalJSON(b []byte) error {
	type plain VocabularyCard
	aux := struct {
		plain
		CardID       json.RawMessage `json:"card_id"`
		UnderscoreID json.RawMessage `json:"_id"`
		ID           json.RawMessage `json:"id"`
	}{plain: plain(*c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := pickID(aux.CardID, aux.UnderscoreID, aux.ID)
	if err != nil {
		return err
	}

	*c = VocabularyCard(aux.plain)
	if id != "" {
		c.ID = id
	}
	return nil
}

// GeneratedFields is the suggestion bundle returned for a word.
type GeneratedFields struct {
	MeaningEN          string   `json:"meaning_en"`
	MeaningVI          string   `json:"meaning_vi"`
	IPATranscription   string   `json:"ipa_transcription"`
	Synonyms           []string `json:"synonyms"`
	Antonyms           []string `json:"antonyms"`
	ExampleSentencesEN []string `json:"example_sentences_en"`
	WordType           string   `json:"word_type"`
	VocabFamily        []string `json:"vocab_family"`
	AudioBase64        string   `json:"audio_base64"`
}

// ApplyTo copies the textual suggestions onto card. Audio is left to the
// caller since it has to be stored somewhere first.
func (g GeneratedFields) ApplyTo(card *VocabularyCard) {
	card.MeaningEN = g.MeaningEN
	card.MeaningVI = g.MeaningVI
	card.IPATranscription = g.IPATranscription
	card.Synonyms = append([]string(nil), g.Synonyms...)
	card.Antonyms = append([]string(nil), g.Antonyms...)
	card.ExampleSentencesEN = append([]string(nil), g.ExampleSentencesEN...)
	card.WordType = g.WordType
	card.VocabFamily = append([]string(nil), g.VocabFamily...)
}
