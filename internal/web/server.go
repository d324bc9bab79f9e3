// Package web serves the HTMX user interface: the daily plan panel, the
// recovery check-in, deck management, review sessions, workout logging,
// the notification feed and settings.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/notify"
	"github.com/conorfennell/braingym/internal/recommend"
	"github.com/conorfennell/braingym/internal/review"
	"github.com/conorfennell/braingym/internal/sources"
	"github.com/conorfennell/braingym/internal/storage"
	"github.com/conorfennell/braingym/internal/units"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Announcer speaks a line out loud. Implementations are optional; a nil
// announcer disables speech regardless of the profile setting.
type Announcer interface {
	Say(text string)
}

// Server holds the dependencies for the HTTP server. At most one review
// session exists at a time, guarded by mu.
type Server struct {
	db        *storage.DB
	router    *http.ServeMux
	templates *template.Template
	feed      *notify.Feed
	announcer Announcer
	reposDir  string
	now       func() time.Time

	mu      sync.Mutex
	session *review.Session
}

// NewServer creates and configures a new server. announcer may be nil.
func NewServer(db *storage.DB, reposDir string, announcer Announcer) (*Server, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"minutes": units.FormatMinutes,
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:        db,
		router:    http.NewServeMux(),
		templates: tpl,
		feed:      notify.NewFeed(db),
		announcer: announcer,
		reposDir:  reposDir,
		now:       time.Now,
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("/static/", http.StripPrefix("/static/", fileServer))
	s.router.Handle("/", fileServer)

	// HTMX panels
	s.router.HandleFunc("/plan", s.handleGetPlan())
	s.router.HandleFunc("/checkin", s.handleCheckin())
	s.router.HandleFunc("/decks", s.handleDecks())
	s.router.HandleFunc("/decks/", s.handleDeckItem())
	s.router.HandleFunc("/cards/", s.handleDeleteCard())
	s.router.HandleFunc("/session", s.handleGetSession())
	s.router.HandleFunc("/session/start", s.handleStartSession())
	s.router.HandleFunc("/session/reveal", s.handleReveal())
	s.router.HandleFunc("/session/hide", s.handleHide())
	s.router.HandleFunc("/session/grade", s.handleGrade())
	s.router.HandleFunc("/workouts", s.handleWorkouts())
	s.router.HandleFunc("/workouts/", s.handleDeleteWorkout())
	s.router.HandleFunc("/feed", s.handleGetFeed())
	s.router.HandleFunc("/feed/read", s.handleMarkFeedRead())
	s.router.HandleFunc("/settings", s.handleSettings())
	s.router.HandleFunc("/sources", s.handleSources())
	s.router.HandleFunc("/sources/", s.handleDeleteSource())
	s.router.HandleFunc("/sync", s.handlePostSync())
}

// render executes a named template and logs failures. By the time
// execution fails part of the response may already be written, so the
// status code cannot change; logging is all that is left.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// planData assembles the plan panel: today's workouts (if any) drive a
// post-workout study block, otherwise the rest-day variant applies.
func (s *Server) planData() (map[string]any, error) {
	rec, err := s.db.Recovery()
	if err != nil {
		return nil, err
	}
	profile, err := s.db.Profile()
	if err != nil {
		return nil, err
	}
	workouts, err := s.db.ListWorkouts()
	if err != nil {
		return nil, err
	}

	readiness := recommend.Readiness(rec)
	today := s.now().Format("2006-01-02")

	var todays []domain.Workout
	for _, w := range workouts {
		if w.Date == today {
			todays = append(todays, w)
		}
	}

	var plan domain.StudyPlan
	restDay := len(todays) == 0
	if restDay {
		plan = recommend.RestDayBlock(readiness, profile.MaxStudyMinutes)
	} else {
		// With several workouts logged today the most recent one drives
		// the plan; ListWorkouts returns newest first.
		plan = recommend.StudyBlock(todays[0].MeanRPE(), readiness, profile.MaxStudyMinutes)
	}

	return map[string]any{
		"Plan":      plan,
		"Readiness": readiness,
		"RestDay":   restDay,
		"Workouts":  todays,
	}, nil
}

// handleGetPlan renders the plan panel.
func (s *Server) handleGetPlan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.planData()
		if err != nil {
			slog.Error("failed to assemble plan", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "plan", data)
	}
}

// handleCheckin renders the recovery form on GET and stores a new
// snapshot on POST. Out-of-range values are clamped, not rejected: the
// form sliders make them unlikely and a clamped answer beats an error.
func (s *Server) handleCheckin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sleep, _ := strconv.ParseFloat(r.PostFormValue("sleep_hours"), 64)
			stress, _ := strconv.Atoi(r.PostFormValue("stress"))
			soreness, _ := strconv.Atoi(r.PostFormValue("soreness"))

			rec := domain.Recovery{
				SleepHours: units.Clamp(sleep, 0, 14),
				Stress:     units.Clamp(stress, 1, 10),
				Soreness:   units.Clamp(soreness, 1, 10),
				UpdatedAt:  s.now(),
			}
			if err := s.db.UpdateRecovery(rec); err != nil {
				slog.Error("failed to store check-in", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		} else if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rec, err := s.db.Recovery()
		if err != nil {
			slog.Error("failed to read recovery snapshot", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "checkin", map[string]any{
			"Recovery":  rec,
			"Readiness": recommend.Readiness(rec),
		})
	}
}

// renderDecks renders the deck list with per-deck due counts.
func (s *Server) renderDecks(w http.ResponseWriter) {
	decks, err := s.db.ListDecks()
	if err != nil {
		slog.Error("failed to list decks", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	now := s.now()
	type deckRow struct {
		Deck domain.Deck
		Due  int
	}
	rows := make([]deckRow, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, deckRow{Deck: d, Due: len(review.DueCards(d.Cards, now))})
	}
	s.render(w, "decks", map[string]any{"Decks": rows})
}

// handleDecks lists decks on GET and creates a deck on POST.
func (s *Server) handleDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderDecks(w)
		case http.MethodPost:
			name := strings.TrimSpace(r.PostFormValue("name"))
			if name == "" {
				http.Error(w, "Deck name cannot be empty", http.StatusBadRequest)
				return
			}
			deck := domain.Deck{ID: uuid.New(), Name: name, CreatedAt: s.now()}
			if err := s.db.InsertDeck(deck, 0); err != nil {
				slog.Error("failed to create deck", "name", name, "error", err)
				http.Error(w, "Failed to create deck", http.StatusInternalServerError)
				return
			}
			s.renderDecks(w)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeckItem deletes a deck (DELETE /decks/{id}) or adds a card to it
// (POST /decks/{id}/cards).
func (s *Server) handleDeckItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/decks/")

		if r.Method == http.MethodPost && strings.HasSuffix(rest, "/cards") {
			s.handleAddCard(w, r, strings.TrimSuffix(rest, "/cards"))
			return
		}
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id, err := uuid.Parse(rest)
		if err != nil {
			http.Error(w, "Invalid deck ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteDeck(id); err != nil {
			slog.Error("failed to delete deck", "deck_id", id, "error", err)
			http.Error(w, "Failed to delete deck", http.StatusInternalServerError)
			return
		}
		s.renderDecks(w)
	}
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "Invalid deck ID", http.StatusBadRequest)
		return
	}
	front := strings.TrimSpace(r.PostFormValue("front"))
	back := strings.TrimSpace(r.PostFormValue("back"))
	if front == "" || back == "" {
		http.Error(w, "Front and back cannot be empty", http.StatusBadRequest)
		return
	}

	card := domain.NewCard(front, back, s.now())
	if err := s.db.InsertCard(id, card); err != nil {
		slog.Error("failed to add card", "deck_id", id, "error", err)
		http.Error(w, "Failed to add card", http.StatusInternalServerError)
		return
	}
	s.renderDecks(w)
}

// handleDeleteCard removes a single card.
func (s *Server) handleDeleteCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/cards/"))
		if err != nil {
			http.Error(w, "Invalid card ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteCard(id); err != nil {
			slog.Error("failed to delete card", "card_id", id, "error", err)
			http.Error(w, "Failed to delete card", http.StatusInternalServerError)
			return
		}
		s.renderDecks(w)
	}
}

// sessionData snapshots the current session for rendering. The caller
// holds mu.
func (s *Server) sessionData() map[string]any {
	data := map[string]any{"Active": false, "Complete": false}
	if s.session == nil {
		return data
	}
	data["DeckName"] = s.session.DeckName
	data["Total"] = s.session.Len()
	switch s.session.State() {
	case review.Complete:
		data["Complete"] = true
	case review.Active:
		card, _ := s.session.Current()
		data["Active"] = true
		data["Card"] = card
		data["Position"] = s.session.Position()
		data["Revealed"] = s.session.Revealed()
	}
	return data
}

// handleGetSession renders the session panel.
func (s *Server) handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data := s.sessionData()
		s.mu.Unlock()
		s.render(w, "session", data)
	}
}

// handleStartSession opens a review session over the requested deck, or
// the preferred deck when none is given. Starting replaces any session in
// progress.
func (s *Server) handleStartSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		deckID := r.PostFormValue("deck_id")
		var deck *domain.Deck
		var err error
		if deckID != "" {
			id, parseErr := uuid.Parse(deckID)
			if parseErr != nil {
				http.Error(w, "Invalid deck ID", http.StatusBadRequest)
				return
			}
			deck, err = s.db.FindDeck(id)
		} else {
			deck, err = s.preferredDeck()
		}
		if err != nil {
			slog.Error("failed to load deck for session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if deck == nil {
			http.Error(w, "No deck to review", http.StatusNotFound)
			return
		}

		now := s.now()
		session := review.Start(*deck, now)

		s.mu.Lock()
		s.session = session
		data := s.sessionData()
		s.mu.Unlock()

		if session.Len() == 0 {
			s.pushFeed(notify.TypeTip, notify.NothingDue(deck.Name), now)
		} else {
			s.pushFeed(notify.TypeTip, notify.SessionStarted(deck.Name, session.Len()), now)
		}
		s.render(w, "session", data)
	}
}

// preferredDeck resolves the profile's preferred deck, falling back to
// the first deck in the list.
func (s *Server) preferredDeck() (*domain.Deck, error) {
	profile, err := s.db.Profile()
	if err != nil {
		return nil, err
	}
	if profile.PreferredDeckID != uuid.Nil {
		deck, err := s.db.FindDeck(profile.PreferredDeckID)
		if err != nil || deck != nil {
			return deck, err
		}
	}
	decks, err := s.db.ListDecks()
	if err != nil || len(decks) == 0 {
		return nil, err
	}
	return &decks[0], nil
}

// handleReveal shows the current card's back. The first reveal of a card
// optionally speaks the answer; repeated hide/show cycles stay silent.
func (s *Server) handleReveal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.mu.Lock()
		var speak string
		if s.session != nil {
			first := s.session.Reveal()
			if card, ok := s.session.Current(); ok && first {
				speak = card.Back
			}
		}
		data := s.sessionData()
		s.mu.Unlock()

		if speak != "" {
			s.announce(speak)
		}
		s.render(w, "session", data)
	}
}

// handleHide flips the current card back to its front.
func (s *Server) handleHide() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.mu.Lock()
		if s.session != nil {
			s.session.Hide()
		}
		data := s.sessionData()
		s.mu.Unlock()
		s.render(w, "session", data)
	}
}

// handleGrade applies a recall grade to the current card, persists the
// new schedule and advances the session.
func (s *Server) handleGrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		quality, err := strconv.Atoi(r.PostFormValue("quality"))
		if err != nil {
			http.Error(w, "Invalid grade", http.StatusBadRequest)
			return
		}

		now := s.now()

		s.mu.Lock()
		var updated domain.Card
		var graded, finished bool
		var count int
		var startedAt time.Time
		if s.session != nil {
			wasActive := s.session.State() == review.Active
			updated, graded = s.session.Grade(quality, now)
			finished = wasActive && s.session.State() == review.Complete
			count = s.session.Len()
			startedAt = s.session.StartedAt
		}
		data := s.sessionData()
		s.mu.Unlock()

		if graded {
			if err := s.db.UpdateCardSchedule(updated); err != nil {
				slog.Error("failed to persist card schedule", "card_id", updated.ID, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}
		if finished {
			s.pushFeed(notify.TypeDone, notify.SessionDone(count, units.MinutesBetween(startedAt, now)), now)
			s.pushJokeIfEnabled(now)
		}
		s.render(w, "session", data)
	}
}

// handleWorkouts lists templates and history on GET and logs a workout
// from a template on POST.
func (s *Server) handleWorkouts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderWorkouts(w)
		case http.MethodPost:
			s.handleLogWorkout(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) renderWorkouts(w http.ResponseWriter) {
	workouts, err := s.db.ListWorkouts()
	if err != nil {
		slog.Error("failed to list workouts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, "workouts", map[string]any{
		"Templates": domain.SampleTemplates(),
		"Workouts":  workouts,
	})
}

// handleLogWorkout stamps a workout from a template, stores it and pushes
// the resulting study plan to the feed.
func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	templateID := r.PostFormValue("template")
	var tpl *domain.WorkoutTemplate
	for _, t := range domain.SampleTemplates() {
		if t.ID == templateID {
			tpl = &t
			break
		}
	}
	if tpl == nil {
		http.Error(w, "Unknown workout template", http.StatusBadRequest)
		return
	}

	now := s.now()
	workout := domain.LogWorkout(*tpl, now)
	if err := s.db.InsertWorkout(workout); err != nil {
		slog.Error("failed to store workout", "template", templateID, "error", err)
		http.Error(w, "Failed to log workout", http.StatusInternalServerError)
		return
	}

	rec, err := s.db.Recovery()
	if err != nil {
		slog.Error("failed to read recovery snapshot", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	profile, err := s.db.Profile()
	if err != nil {
		slog.Error("failed to read profile", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	plan := recommend.StudyBlock(workout.MeanRPE(), recommend.Readiness(rec), profile.MaxStudyMinutes)
	summary := notify.PlanLogged(workout, plan)
	s.pushFeed(notify.TypePlan, summary, now)
	s.pushJokeIfEnabled(now)
	s.announce(summary)

	s.renderWorkouts(w)
}

// handleDeleteWorkout removes a logged workout.
func (s *Server) handleDeleteWorkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/workouts/"))
		if err != nil {
			http.Error(w, "Invalid workout ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteWorkout(id); err != nil {
			slog.Error("failed to delete workout", "workout_id", id, "error", err)
			http.Error(w, "Failed to delete workout", http.StatusInternalServerError)
			return
		}
		s.renderWorkouts(w)
	}
}

// handleGetFeed renders the notification feed, newest first.
func (s *Server) handleGetFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderFeed(w)
	}
}

func (s *Server) renderFeed(w http.ResponseWriter) {
	feed, err := s.db.ListNotifications()
	if err != nil {
		slog.Error("failed to list notifications", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	var unread int
	for _, n := range feed {
		if !n.Read {
			unread++
		}
	}
	s.render(w, "feed", map[string]any{"Feed": feed, "Unread": unread})
}

// handleMarkFeedRead marks every feed entry read.
func (s *Server) handleMarkFeedRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := s.db.MarkAllNotificationsRead(); err != nil {
			slog.Error("failed to mark feed read", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.renderFeed(w)
	}
}

// handleSettings renders and updates the profile.
func (s *Server) handleSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			profile, err := s.db.Profile()
			if err != nil {
				slog.Error("failed to read profile", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			profile.Name = strings.TrimSpace(r.PostFormValue("name"))
			profile.Goal = strings.TrimSpace(r.PostFormValue("goal"))
			profile.JokesEnabled = r.PostFormValue("jokes_enabled") != ""
			profile.VoiceEnabled = r.PostFormValue("voice_enabled") != ""
			if minutes, err := strconv.Atoi(r.PostFormValue("max_study_minutes")); err == nil {
				profile.MaxStudyMinutes = units.Clamp(minutes, 10, 60)
			}
			if deckID := r.PostFormValue("preferred_deck_id"); deckID != "" {
				if id, err := uuid.Parse(deckID); err == nil {
					profile.PreferredDeckID = id
				}
			}

			if err := s.db.UpdateProfile(profile); err != nil {
				slog.Error("failed to update profile", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		} else if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		profile, err := s.db.Profile()
		if err != nil {
			slog.Error("failed to read profile", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		decks, err := s.db.ListDecks()
		if err != nil {
			slog.Error("failed to list decks", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "settings", map[string]any{"Profile": profile, "Decks": decks})
	}
}

// handleSources handles both GET and POST for the sources page.
func (s *Server) handleSources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderSources(w, "sources")
		case http.MethodPost:
			s.handlePostSource(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) renderSources(w http.ResponseWriter, templateName string) {
	srcs, err := s.db.ListSources()
	if err != nil {
		slog.Error("failed to list sources", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, templateName, map[string]any{"Sources": srcs})
}

// handlePostSource registers a new deck source and re-renders the list.
func (s *Server) handlePostSource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.PostFormValue("path"))
	if path == "" {
		http.Error(w, "Path cannot be empty", http.StatusBadRequest)
		return
	}

	if _, err := s.db.InsertSource(path, sources.KindFor(path)); err != nil {
		slog.Error("failed to add source", "path", path, "error", err)
		http.Error(w, "Failed to add source", http.StatusInternalServerError)
		return
	}
	s.renderSources(w, "source_list")
}

// handleDeleteSource removes a source along with its imported decks.
func (s *Server) handleDeleteSource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/sources/"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid source ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteSource(id); err != nil {
			slog.Error("failed to delete source", "source_id", id, "error", err)
			http.Error(w, "Failed to delete source", http.StatusInternalServerError)
			return
		}
		s.renderSources(w, "source_list")
	}
}

// handlePostSync runs a sync in the foreground and re-renders the list.
func (s *Server) handlePostSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := sources.RunSync(r.Context(), s.db, s.reposDir, s.now()); err != nil {
			slog.Error("sync failed", "error", err)
			http.Error(w, "Sync failed", http.StatusInternalServerError)
			return
		}
		s.render(w, "sync_success", nil)
		s.renderSources(w, "source_list")
	}
}

// pushFeed appends a feed entry, logging instead of failing the request:
// a lost notification never blocks the action that caused it.
func (s *Server) pushFeed(kind, text string, now time.Time) {
	if err := s.feed.Push(kind, text, now); err != nil {
		slog.Warn("failed to push feed entry", "type", kind, "error", err)
	}
}

// pushJokeIfEnabled appends a joke when the profile asks for one.
func (s *Server) pushJokeIfEnabled(now time.Time) {
	profile, err := s.db.Profile()
	if err != nil {
		slog.Warn("failed to read profile for joke", "error", err)
		return
	}
	if profile.JokesEnabled {
		s.pushFeed(notify.TypeJoke, notify.Joke(), now)
	}
}

// announce speaks a line when both an announcer is wired and the profile
// enables voice.
func (s *Server) announce(text string) {
	if s.announcer == nil {
		return
	}
	profile, err := s.db.Profile()
	if err != nil || !profile.VoiceEnabled {
		return
	}
	s.announcer.Say(text)
}
