package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

type fakeFeed struct {
	alerts []models.Alert
	err    error
}

func (f *fakeFeed) FetchCandidateAlerts(context.Context) ([]models.Alert, error) {
	return f.alerts, f.err
}

type fakeTranslator struct {
	err    error
	called bool
}

func (f *fakeTranslator) Translate(_ context.Context, lang models.Language, title, summary string) (string, string, error) {
	f.called = true
	if f.err != nil {
		return "", "", f.err
	}
	return "[" + string(lang) + "] " + title, "[" + string(lang) + "] " + summary, nil
}

type fakeSeen struct {
	seen      map[string]bool
	marked    []string
	lookupErr error
	markErr   error
}

func newFakeSeen(seen ...string) *fakeSeen {
	m := make(map[string]bool)
	for _, id := range seen {
		m[id] = true
	}
	return &fakeSeen{seen: m}
}

func (f *fakeSeen) HasSeenAlert(_ context.Context, _, alertID string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.seen[alertID], nil
}

func (f *fakeSeen) MarkAlertSeen(_ context.Context, _, alertID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, alertID)
	return nil
}

var testAlerts = []models.Alert{
	{ID: "a1", Title: "Cholera in India", Summary: "Cases reported."},
	{ID: "a2", Title: "Dengue in India", Summary: "Monsoon spike."},
}

func TestAlerts_ShowsFirstUnseenAndMarksIt(t *testing.T) {
	seen := newFakeSeen("a1")
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, nil, seen)

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultDone, result.Kind)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0], "Dengue in India")
	assert.Contains(t, result.Replies[0], "Health Alert")
	assert.Equal(t, []string{"a2"}, seen.marked)
}

func TestAlerts_TranslatesForNonEnglishUser(t *testing.T) {
	translator := &fakeTranslator{}
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, translator, newFakeSeen())
	session := models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageHindi}

	result := h.Begin(context.Background(), adultProfile(), session)

	require.Equal(t, models.ResultDone, result.Kind)
	assert.True(t, translator.called)
	assert.Contains(t, result.Replies[0], "[hi] Cholera in India")
}

func TestAlerts_EnglishUserSkipsTranslation(t *testing.T) {
	translator := &fakeTranslator{}
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, translator, newFakeSeen())

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultDone, result.Kind)
	assert.False(t, translator.called)
}

func TestAlerts_TranslationFailureKeepsEnglish(t *testing.T) {
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, &fakeTranslator{err: errors.New("model down")}, newFakeSeen())
	session := models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageOdia}

	result := h.Begin(context.Background(), adultProfile(), session)

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Contains(t, result.Replies[0], "Cholera in India")
}

func TestAlerts_AllSeen(t *testing.T) {
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, nil, newFakeSeen("a1", "a2"))

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Contains(t, result.Replies[0], "no new outbreak alerts")
}

func TestAlerts_FeedFailure(t *testing.T) {
	h := NewAlerts(&fakeFeed{err: errors.New("feed unreachable")}, nil, newFakeSeen())

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultFailed, result.Kind)
	assert.Contains(t, result.Reason, "feed unreachable")
	require.Len(t, result.Replies, 1)
}

func TestAlerts_SeenLookupFailureStillShows(t *testing.T) {
	seen := newFakeSeen()
	seen.lookupErr = errors.New("db down")
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, nil, seen)

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Contains(t, result.Replies[0], "Cholera in India")
}

func TestAlerts_MarkSeenFailureStillReplies(t *testing.T) {
	seen := newFakeSeen()
	seen.markErr = errors.New("db down")
	h := NewAlerts(&fakeFeed{alerts: testAlerts}, nil, seen)

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Contains(t, result.Replies[0], "Cholera in India")
}

func TestAlerts_NilFeed(t *testing.T) {
	h := NewAlerts(nil, nil, nil)

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultFailed, result.Kind)
	require.Len(t, result.Replies, 1)
}
