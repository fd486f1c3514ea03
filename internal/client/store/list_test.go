package store

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(cards []models.VocabularyCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func card(id, word string) models.VocabularyCard {
	return models.VocabularyCard{ID: id, Word: word}
}

func TestCommit_ReplacesList(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	assert.False(t, l.Loaded())

	rev := l.BeginLoad()
	require.True(t, l.Commit(rev, []models.VocabularyCard{card("c1", "a"), card("c2", "b")}))

	assert.True(t, l.Loaded())
	assert.Equal(t, []string{"c1", "c2"}, ids(l.Snapshot()))

	rev = l.BeginLoad()
	require.True(t, l.Commit(rev, []models.VocabularyCard{card("c3", "c")}))
	assert.Equal(t, []string{"c3"}, ids(l.Snapshot()))
}

func TestStaleFetchDoesNotResurrectDeleted(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Commit(l.BeginLoad(), []models.VocabularyCard{card("c1", "a"), card("c2", "b")})

	rev := l.BeginLoad()
	l.Remove("c1")
	require.True(t, l.Commit(rev, []models.VocabularyCard{card("c1", "a"), card("c2", "b")}))

	assert.Equal(t, []string{"c2"}, ids(l.Snapshot()))
}

func TestRemovalBeforeFetchIsTrustedToServer(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Commit(l.BeginLoad(), []models.VocabularyCard{card("c1", "a")})

	l.Remove("c1")
	rev := l.BeginLoad()
	// server recreated c1 after our delete; the fresh fetch wins
	l.Commit(rev, []models.VocabularyCard{card("c1", "again")})

	got, ok := l.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "again", got.Word)
}

func TestLocalEditWinsOverStaleFetch(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Commit(l.BeginLoad(), []models.VocabularyCard{card("c1", "old")})

	rev := l.BeginLoad()
	l.Upsert(card("c1", "edited"))
	l.Commit(rev, []models.VocabularyCard{card("c1", "old")})

	got, ok := l.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "edited", got.Word)
}

func TestLocalCreateSurvivesStaleFetch(t *testing.T) {
	l := NewList[models.VocabularyCard]()

	rev := l.BeginLoad()
	l.Upsert(card("new", "fresh"))
	l.Commit(rev, []models.VocabularyCard{card("c1", "a")})

	assert.Equal(t, []string{"c1", "new"}, ids(l.Snapshot()))
}

func TestOlderFetchIsDiscarded(t *testing.T) {
	l := NewList[models.VocabularyCard]()

	first := l.BeginLoad()
	l.Upsert(card("c1", "a"))
	second := l.BeginLoad()

	require.True(t, l.Commit(second, []models.VocabularyCard{card("c1", "a"), card("c2", "b")}))
	assert.False(t, l.Commit(first, []models.VocabularyCard{}))
	assert.Equal(t, []string{"c1", "c2"}, ids(l.Snapshot()))
}

func TestCommit_DeduplicatesFetched(t *testing.T) {
	l := NewList[models.Dataset]()
	l.Commit(l.BeginLoad(), []models.Dataset{{ID: "d1", Name: "Travel Words"}, {ID: "d1", Name: "dup"}})

	snap := l.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Travel Words", snap[0].Name)
}

func TestUpsert_ReplaceOrAppend(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Upsert(card("c1", "a"))
	l.Upsert(card("c2", "b"))
	l.Upsert(card("c1", "a2"))

	assert.Equal(t, []string{"c1", "c2"}, ids(l.Snapshot()))
	got, _ := l.Get("c1")
	assert.Equal(t, "a2", got.Word)
	assert.Equal(t, 2, l.Len())
}

func TestRemove_Absent(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Upsert(card("c1", "a"))
	l.Remove("zzz")
	assert.Equal(t, []string{"c1"}, ids(l.Snapshot()))
}

func TestSnapshotIsACopy(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	l.Upsert(card("c1", "a"))

	snap := l.Snapshot()
	snap[0].Word = "changed"

	got, _ := l.Get("c1")
	assert.Equal(t, "a", got.Word)
}

func TestSubscribe(t *testing.T) {
	l := NewList[models.VocabularyCard]()

	var seen [][]string
	unsubscribe := l.Subscribe(func(items []models.VocabularyCard) {
		seen = append(seen, ids(items))
	})

	l.Upsert(card("c1", "a"))
	l.Remove("c1")
	unsubscribe()
	l.Upsert(card("c2", "b"))

	assert.Equal(t, [][]string{{"c1"}, {}}, seen)
}

func TestReset(t *testing.T) {
	l := NewList[models.VocabularyCard]()
	rev := l.BeginLoad()
	l.Commit(rev, []models.VocabularyCard{card("c1", "a")})

	inflight := l.BeginLoad()
	l.Reset()

	assert.Empty(t, l.Snapshot())
	assert.False(t, l.Loaded())
	assert.False(t, l.Commit(inflight, []models.VocabularyCard{card("c1", "a")}), "fetches from before a reset are dropped")
}

func TestConcurrentUse(t *testing.T) {
	l := NewList[models.VocabularyCard]()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rev := l.BeginLoad()
				l.Commit(rev, []models.VocabularyCard{card("c1", "a")})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Upsert(card("c2", "b"))
				_ = l.Snapshot()
				l.Remove("c2")
			}
		}()
	}
	wg.Wait()

	_, ok := l.Get("c2")
	assert.False(t, ok)
}
