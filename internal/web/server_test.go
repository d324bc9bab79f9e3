package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/braingym/internal/storage"
)

type fakeAnnouncer struct {
	said []string
}

func (f *fakeAnnouncer) Say(text string) { f.said = append(f.said, text) }

func newTestServer(t *testing.T, announcer Announcer) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.SeedIfEmpty(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	s, err := NewServer(db, t.TempDir(), announcer)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return s, db
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func post(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestPlanPanelRestDay(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := get(t, s, "/plan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rest day")
	assert.Contains(t, rec.Body.String(), "Readiness")
}

func TestCheckinUpdatesReadiness(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/checkin", url.Values{
		"sleep_hours": {"9"},
		"stress":      {"1"},
		"soreness":    {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>100</strong>")

	stored, err := db.Recovery()
	require.NoError(t, err)
	assert.InDelta(t, 9, stored.SleepHours, 1e-9)
	assert.Equal(t, 1, stored.Stress)
}

func TestLogWorkoutSwitchesPlanAndPushesFeed(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/workouts", url.Values{"template": {"upper-strength"}})
	require.Equal(t, http.StatusOK, rec.Code)

	plan := get(t, s, "/plan")
	assert.Contains(t, plan.Body.String(), "Workout logged today")
	assert.NotContains(t, plan.Body.String(), "Rest day")

	feed, err := db.ListNotifications()
	require.NoError(t, err)
	types := make(map[string]int)
	for _, n := range feed {
		types[n.Type]++
	}
	assert.Equal(t, 1, types["plan"])
	// Jokes are on by default.
	assert.Equal(t, 1, types["joke"])
}

func TestLogWorkoutUnknownTemplate(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := post(t, s, "/workouts", url.Values{"template": {"no-such-template"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionFlow(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/session/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "card 1 of")

	// Grade every queued card; the last grade completes the session.
	s.mu.Lock()
	total := s.session.Len()
	s.mu.Unlock()
	require.Greater(t, total, 0)

	for i := 0; i < total; i++ {
		post(t, s, "/session/reveal", nil)
		rec = post(t, s, "/session/grade", url.Values{"quality": {"5"}})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Contains(t, rec.Body.String(), "Session complete")

	// Scheduling state was persisted for the graded cards.
	decks, err := db.ListDecks()
	require.NoError(t, err)
	var graded int
	for _, d := range decks {
		for _, c := range d.Cards {
			if c.Repetitions > 0 {
				graded++
			}
		}
	}
	assert.Equal(t, total, graded)

	feed, err := db.ListNotifications()
	require.NoError(t, err)
	var done bool
	for _, n := range feed {
		if n.Type == "done" {
			done = true
		}
	}
	assert.True(t, done, "completion must be announced in the feed")
}

func TestRevealSpeaksOnlyOnce(t *testing.T) {
	announcer := &fakeAnnouncer{}
	s, db := newTestServer(t, announcer)

	profile, err := db.Profile()
	require.NoError(t, err)
	profile.VoiceEnabled = true
	require.NoError(t, db.UpdateProfile(profile))

	post(t, s, "/session/start", nil)
	post(t, s, "/session/reveal", nil)
	require.Len(t, announcer.said, 1)

	// Hide and reveal again: no second announcement for the same card.
	post(t, s, "/session/hide", nil)
	post(t, s, "/session/reveal", nil)
	assert.Len(t, announcer.said, 1)
}

func TestSettingsRoundtrip(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/settings", url.Values{
		"name":              {"Ana"},
		"goal":              {"USMLE step 1"},
		"max_study_minutes": {"50"},
		"voice_enabled":     {"on"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	profile, err := db.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, 50, profile.MaxStudyMinutes)
	assert.True(t, profile.VoiceEnabled)
	// Unchecked checkbox means off.
	assert.False(t, profile.JokesEnabled)
}

func TestSourcesAddAndDelete(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/sources", url.Values{"path": {"https://example.com/decks.git"}})
	require.Equal(t, http.StatusOK, rec.Code)

	srcs, err := db.ListSources()
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, "git", srcs[0].Kind)

	req := httptest.NewRequest(http.MethodDelete, "/sources/1", nil)
	del := httptest.NewRecorder()
	s.ServeHTTP(del, req)
	require.Equal(t, http.StatusOK, del.Code)

	srcs, err = db.ListSources()
	require.NoError(t, err)
	assert.Empty(t, srcs)
}

func TestDeckCreateAndAddCard(t *testing.T) {
	s, db := newTestServer(t, nil)

	rec := post(t, s, "/decks", url.Values{"name": {"Micro"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Micro")

	decks, err := db.ListDecks()
	require.NoError(t, err)
	var deckID string
	for _, d := range decks {
		if d.Name == "Micro" {
			deckID = d.ID.String()
		}
	}
	require.NotEmpty(t, deckID)

	rec = post(t, s, "/decks/"+deckID+"/cards", url.Values{
		"front": {"Gram stain of S. aureus?"},
		"back":  {"Gram-positive cocci in clusters."},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	decks, err = db.ListDecks()
	require.NoError(t, err)
	for _, d := range decks {
		if d.Name == "Micro" {
			require.Len(t, d.Cards, 1)
		}
	}
}
