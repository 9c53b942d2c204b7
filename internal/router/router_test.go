package router

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// fakeProfiles is an in-memory ProfileStore for router tests.
type fakeProfiles struct {
	mu        sync.Mutex
	profiles  map[string]models.Profile
	createErr error
	fetchErr  error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]models.Profile)}
}

func (f *fakeProfiles) CreateProfile(_ context.Context, profile models.Profile) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	profile.ID = "id-" + profile.Identity
	f.profiles[profile.Identity] = profile
	return profile.ID, nil
}

func (f *fakeProfiles) FetchProfile(_ context.Context, identity string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	profile, ok := f.profiles[identity]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// fakeSessions is an in-memory SessionStore for router tests.
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	putErr   error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]models.Session)}
}

func (f *fakeSessions) Get(_ context.Context, identity string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[identity]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (f *fakeSessions) Put(_ context.Context, identity string, session models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[identity] = session
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, identity string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, identity)
	return nil
}

func (f *fakeSessions) state(identity string) models.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[identity].State
}

// stubHandler returns canned results for Begin and Handle.
type stubHandler struct {
	begin      models.HandlerResult
	handle     models.HandlerResult
	panicBegin bool
}

func (s *stubHandler) Begin(context.Context, *models.Profile, models.Session) models.HandlerResult {
	if s.panicBegin {
		panic("handler exploded")
	}
	return s.begin
}

func (s *stubHandler) Handle(context.Context, *models.Profile, models.Session, string) models.HandlerResult {
	return s.handle
}

func registeredUser(profiles *fakeProfiles, identity string) {
	profiles.profiles[identity] = models.Profile{
		ID:       "id-" + identity,
		Identity: identity,
		Name:     "Asha",
		Age:      30,
		Gender:   models.GenderFemale,
		Region:   "Odisha",
		District: "Puri",
		Language: models.LanguageEnglish,
	}
}

func TestRoute_GarbageFromNewUserAsksForGreeting(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "weather please")
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d: %v", len(replies), replies)
	}
	if !strings.Contains(replies[0], "say 'hi'") {
		t.Errorf("expected greeting prompt, got %q", replies[0])
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingGreeting {
		t.Errorf("expected awaiting_greeting, got %q", got)
	}
}

func TestRoute_GreetingStartsLanguageSelect(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", " Hi ")
	if len(replies) != 1 || !strings.Contains(replies[0], "select your language") {
		t.Fatalf("expected language prompt, got %v", replies)
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingLanguage {
		t.Errorf("expected awaiting_language, got %q", got)
	}
}

func TestRoute_WelcomeBackWithoutSession(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "hello there")
	if len(replies) != 1 || !strings.Contains(replies[0], "Welcome back, Asha") {
		t.Fatalf("expected welcome back reply, got %v", replies)
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingMenuChoice {
		t.Errorf("expected awaiting_menu_choice, got %q", got)
	}
}

func TestRoute_MenuKeywordIsIdempotent(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	r := New(profiles, sessions)

	first := r.Route(context.Background(), "911234567890", "menu")
	second := r.Route(context.Background(), "911234567890", "MENU")
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected single replies, got %v and %v", first, second)
	}
	if first[0] != second[0] {
		t.Errorf("menu keyword should be idempotent; got %q then %q", first[0], second[0])
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingMenuChoice {
		t.Errorf("expected awaiting_menu_choice, got %q", got)
	}
}

func TestRoute_MenuKeywordDuringRegistrationResets(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingAge, Language: models.LanguageEnglish}
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "menu")
	if len(replies) != 1 || !strings.Contains(replies[0], "say 'hi'") {
		t.Fatalf("expected greeting prompt for unregistered menu, got %v", replies)
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingGreeting {
		t.Errorf("expected awaiting_greeting, got %q", got)
	}
}

func TestRoute_InvalidMenuOptionStays(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageEnglish}
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "9")
	if len(replies) != 2 || !strings.Contains(replies[0], "Invalid option") {
		t.Fatalf("expected invalid option reply plus menu, got %v", replies)
	}
	if !strings.Contains(replies[1], "How can I help you today?") {
		t.Errorf("expected the menu to be re-shown, got %q", replies[1])
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingMenuChoice {
		t.Errorf("expected awaiting_menu_choice, got %q", got)
	}
}

func TestRoute_ExitDeletesSession(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageEnglish}
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "5")
	if len(replies) != 1 || !strings.Contains(replies[0], "healthy day") {
		t.Fatalf("expected exit message, got %v", replies)
	}
	sessions.mu.Lock()
	_, exists := sessions.sessions["911234567890"]
	sessions.mu.Unlock()
	if exists {
		t.Error("expected session to be deleted on exit")
	}
}

func TestRoute_DoneResultAppendsMainMenu(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageEnglish}
	r := New(profiles, sessions, WithTipsHandler(&stubHandler{begin: models.Done("drink water")}))

	replies := r.Route(context.Background(), "911234567890", "3")
	if len(replies) != 2 {
		t.Fatalf("expected tip plus menu, got %v", replies)
	}
	if replies[0] != "drink water" {
		t.Errorf("expected handler reply first, got %q", replies[0])
	}
	if !strings.Contains(replies[1], "How can I help you today?") {
		t.Errorf("expected main menu appended, got %q", replies[1])
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingMenuChoice {
		t.Errorf("expected awaiting_menu_choice after done, got %q", got)
	}
}

func TestRoute_FailedResultLeavesSessionUntouched(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	active := models.Session{
		State:    models.StateAwaitingSymptoms,
		Language: models.LanguageEnglish,
		Scratch:  map[string]string{"chat_history": `[{"speaker":"user","text":"fever"}]`},
	}
	sessions.sessions["911234567890"] = active
	r := New(profiles, sessions, WithSymptomHandler(&stubHandler{
		handle: models.Failed("oracle down", "AI unavailable, try again"),
	}))

	replies := r.Route(context.Background(), "911234567890", "and a headache")
	if len(replies) != 1 || replies[0] != "AI unavailable, try again" {
		t.Fatalf("expected fallback reply, got %v", replies)
	}
	sessions.mu.Lock()
	stored := sessions.sessions["911234567890"]
	sessions.mu.Unlock()
	if stored.State != models.StateAwaitingSymptoms {
		t.Errorf("failed result must not change state, got %q", stored.State)
	}
	if stored.Scratch["chat_history"] != active.Scratch["chat_history"] {
		t.Errorf("failed result must not change scratch, got %q", stored.Scratch["chat_history"])
	}
}

func TestRoute_PanicInHandlerRecovers(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageEnglish}
	r := New(profiles, sessions, WithAlertsHandler(&stubHandler{panicBegin: true}))

	replies := r.Route(context.Background(), "911234567890", "4")
	if len(replies) != 1 || !strings.Contains(replies[0], "something went wrong") {
		t.Fatalf("expected generic error reply after panic, got %v", replies)
	}
}

func TestRoute_EmptyHandlerRepliesFallBack(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	registeredUser(profiles, "911234567890")
	sessions.sessions["911234567890"] = models.Session{State: models.StateAwaitingSymptoms, Language: models.LanguageEnglish}
	r := New(profiles, sessions, WithSymptomHandler(&stubHandler{
		handle: models.Continue(models.Session{State: models.StateAwaitingSymptoms, Language: models.LanguageEnglish}),
	}))

	replies := r.Route(context.Background(), "911234567890", "fever")
	if len(replies) != 1 {
		t.Fatalf("expected exactly one fallback reply, got %v", replies)
	}
}

func TestRoute_ProfileStoreErrorStillReplies(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	profiles.fetchErr = errors.New("db down")
	r := New(profiles, sessions)

	replies := r.Route(context.Background(), "911234567890", "hi")
	if len(replies) != 1 {
		t.Fatalf("expected exactly one reply, got %v", replies)
	}
}

func TestRoute_ConcurrentMessagesKeepConsistentState(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			replies := r.Route(context.Background(), "911234567890", "hi")
			if len(replies) == 0 {
				t.Error("expected at least one reply")
			}
		}()
	}
	wg.Wait()

	// Every interleaving of "hi" messages lands in one of the two entry
	// states, never anything torn.
	state := sessions.state("911234567890")
	if state != models.StateAwaitingLanguage && state != models.StateAwaitingGreeting {
		t.Errorf("unexpected final state %q", state)
	}
}
