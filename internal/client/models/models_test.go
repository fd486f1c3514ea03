package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IDAliases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"underscore", `{"_id":"u1","username":"alice"}`, "u1"},
		{"user_id", `{"user_id":"u2","username":"alice"}`, "u2"},
		{"id", `{"id":"u3"}`, "u3"},
		{"numeric", `{"id":42}`, "42"},
		{"oid", `{"_id":{"$oid":"65f0"}}`, "65f0"},
		{"none", `{"username":"x"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.in), &u))
			assert.Equal(t, tt.want, u.ID)
		})
	}
}

func TestSession_Decode(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"token":"t1","user":{"_id":"u1","username":"alice","email":"a@x"}}`), &s))
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, User{ID: "u1", Username: "alice", Email: "a@x"}, s.User)
}

func TestDataset_DecodeAndEncode(t *testing.T) {
	var d Dataset
	in := `{"_id":"d1","user_id":"u1","name":"Travel Words","description":"","created_at":"Tue, 15 Oct 2024 10:00:00 GMT"}`
	require.NoError(t, json.Unmarshal([]byte(in), &d))

	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, "d1", d.Key())
	assert.Equal(t, "Travel Words", d.Name)
	assert.Equal(t, 2024, d.CreatedAt.Year())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dataset_id":"d1","user_id":"u1","name":"Travel Words","description":"","created_at":"2024-10-15T10:00:00Z"}`, string(out))
}

func TestCard_Decode(t *testing.T) {
	var c VocabularyCard
	in := `{"card_id":"c1","dataset_id":"d1","word":"serendipity","synonyms":["luck"],"example_sentences_en":null}`
	require.NoError(t, json.Unmarshal([]byte(in), &c))

	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "serendipity", c.Word)
	assert.Equal(t, []string{"luck"}, c.Synonyms)
	assert.Nil(t, c.ExampleSentencesEN)
}

func TestGeneratedFields_ApplyTo(t *testing.T) {
	g := GeneratedFields{
		MeaningEN:          "a happy accident",
		MeaningVI:          "sự tình cờ",
		IPATranscription:   "/ˌser.ənˈdɪp.ə.ti/",
		Synonyms:           []string{"chance"},
		ExampleSentencesEN: []string{"It was pure serendipity."},
		WordType:           "noun",
		AudioBase64:        "AAAA",
	}
	card := VocabularyCard{ID: "c1", Word: "serendipity"}
	g.ApplyTo(&card)

	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, "a happy accident", card.MeaningEN)
	assert.Equal(t, "noun", card.WordType)
	assert.Equal(t, []string{"chance"}, card.Synonyms)
	assert.Empty(t, card.AudioURLWord)

	g.Synonyms[0] = "mutated"
	assert.Equal(t, "chance", card.Synonyms[0])
}

func TestProgress_DefaultsAndDue(t *testing.T) {
	var p ProgressEntry
	require.NoError(t, json.Unmarshal([]byte(`{"progress_id":"p1","status":"weird","next_review":"2024-01-01T00:00:00Z"}`), &p))

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, ProgressStatus("weird"), p.Status)
	assert.Equal(t, DefaultEaseFactor, p.EaseFactor)
	assert.Equal(t, DefaultInterval, p.Interval)

	assert.True(t, p.DueBy(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.DueBy(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))

	assert.False(t, NewProgressEntry("u1", "c1", "d1").DueBy(time.Now()))
}

func TestNewProgressEntry(t *testing.T) {
	p := NewProgressEntry("u1", "c1", "d1")
	assert.Equal(t, StatusNew, p.Status)
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, 2.5, p.EaseFactor)
	assert.Equal(t, 1, p.Interval)
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		zero bool
		want time.Time
	}{
		{"null", `null`, true, time.Time{}},
		{"rfc3339", `"2024-10-15T10:00:00Z"`, false, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"rfc1123", `"Tue, 15 Oct 2024 10:00:00 GMT"`, false, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"naive iso", `"2024-10-15T10:00:00.123456"`, false, time.Date(2024, 10, 15, 10, 0, 0, 123456000, time.UTC)},
		{"bson date", `{"$date":1728986400000}`, false, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC)},
		{"empty string", `""`, true, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.Equal(t, tt.zero, ts.IsZero())
			if !tt.zero {
				assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
			}
		})
	}

	var ts Timestamp
	require.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))

	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
	assert.Equal(t, "-", Timestamp{}.String())
}

func TestTimestamp_DisplayRoundTrip(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 10, 15, 10, 0, 0, 0, time.Local))
	shown := ts.String()

	parsed, err := ParseTimestamp(shown)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed.Time), "got %v", parsed.Time)
	assert.Equal(t, shown, parsed.String())
}

func TestSettings_Validate(t *testing.T) {
	ok := DefaultSettings("u1")
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative goal", func(s *Settings) { s.DailyGoal = -1 }},
		{"bad theme", func(s *Settings) { s.Theme = "blue" }},
		{"hour out of range", func(s *Settings) { s.NotificationTime = "24:00" }},
		{"minute out of range", func(s *Settings) { s.NotificationTime = "09:60" }},
		{"short form", func(s *Settings) { s.NotificationTime = "9:00" }},
		{"garbage", func(s *Settings) { s.NotificationTime = "morning" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings("u1")
			tt.mutate(&s)
			require.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}

	s := DefaultSettings("u1")
	s.NotificationTime = "23:59"
	h, m, err := s.ReminderClock()
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("u1")
	assert.Equal(t, Settings{
		UserID:              "u1",
		LanguagePreference:  "en",
		DailyGoal:           20,
		NotificationEnabled: true,
		NotificationTime:    "09:00",
		Theme:               "light",
	}, s)
}

func TestDecode_OverlaysExistingValue(t *testing.T) {
	d := Dataset{UserID: "u1", Name: "Travel Words", Description: "trip"}
	require.NoError(t, json.Unmarshal([]byte(`{"message":"Dataset created successfully","dataset_id":"d9"}`), &d))

	assert.Equal(t, Dataset{ID: "d9", UserID: "u1", Name: "Travel Words", Description: "trip"}, d)

	c := VocabularyCard{ID: "c1", Word: "hello"}
	require.NoError(t, json.Unmarshal([]byte(`{"message":"Card updated successfully"}`), &c))
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "hello", c.Word)
}

func TestEncode_OmitsEmptyID(t *testing.T) {
	out, err := json.Marshal(VocabularyCard{DatasetID: "d1", Word: "hi"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "card_id")

	out, err = json.Marshal(NewProgressEntry("u1", "c1", "d1"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "progress_id")
	assert.Contains(t, string(out), `"ease_factor":2.5`)
}
