package flow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

type fakePlaces struct {
	results []models.Place
	err     error
	query   string
}

func (f *fakePlaces) Search(_ context.Context, query string) ([]models.Place, error) {
	f.query = query
	return f.results, f.err
}

func adultProfile() *models.Profile {
	return &models.Profile{
		Identity: "911234567890",
		Name:     "Asha",
		Age:      30,
		District: "Puri",
		Language: models.LanguageEnglish,
	}
}

func menuSession() models.Session {
	return models.Session{State: models.StateAwaitingMenuChoice, Language: models.LanguageEnglish}
}

func TestVaccineFinder_BeginListsAdultVaccines(t *testing.T) {
	h := NewVaccineFinder(&fakePlaces{})

	result := h.Begin(context.Background(), adultProfile(), menuSession())

	require.Equal(t, models.ResultContinue, result.Kind)
	assert.Equal(t, models.StateAwaitingVaccineChoice, result.Session.State)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0], "Adults (18+)")
	assert.Contains(t, result.Replies[0], "1. Tdap/Td (every 10 years)")

	var offered []string
	require.NoError(t, json.Unmarshal([]byte(result.Session.Scratch[scratchAvailableVaccines]), &offered))
	assert.Equal(t, adultVaccines.Vaccines, offered)
}

func TestVaccineFinder_AgeBands(t *testing.T) {
	cases := []struct {
		age   int
		title string
	}{
		{1, "Infants (0-12 months)"},
		{7, "Children (1-10 years)"},
		{11, "Adults (18+)"},
	}
	for _, tc := range cases {
		profile := adultProfile()
		profile.Age = tc.age
		result := NewVaccineFinder(nil).Begin(context.Background(), profile, menuSession())
		require.Equal(t, models.ResultContinue, result.Kind)
		assert.Contains(t, result.Replies[0], tc.title, "age %d", tc.age)
	}
}

func TestVaccineFinder_HandleSearchesDistrict(t *testing.T) {
	places := &fakePlaces{results: []models.Place{
		{Name: "District Hospital", Address: "Grand Road, Puri"},
		{Name: "CHC Sadar", Address: "Sadar, Puri"},
		{Name: "Apollo Clinic", Address: "VIP Road, Puri"},
		{Name: "Fourth Clinic", Address: "Elsewhere, Puri"},
	}}
	h := NewVaccineFinder(places)
	begin := h.Begin(context.Background(), adultProfile(), menuSession())

	result := h.Handle(context.Background(), adultProfile(), begin.Session, "2")

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Equal(t, "hospitals or clinics with Influenza (yearly) vaccine in Puri", places.query)
	require.Len(t, result.Replies, 1)
	assert.Contains(t, result.Replies[0], "District Hospital")
	assert.Contains(t, result.Replies[0], "google.com/maps/search")
	assert.Contains(t, result.Replies[0], "call ahead")
	assert.NotContains(t, result.Replies[0], "Fourth Clinic", "only top 3 results are listed")
}

func TestVaccineFinder_HandleInvalidChoiceStays(t *testing.T) {
	h := NewVaccineFinder(&fakePlaces{})
	begin := h.Begin(context.Background(), adultProfile(), menuSession())

	for _, input := range []string{"0", "99", "polio"} {
		result := h.Handle(context.Background(), adultProfile(), begin.Session, input)
		require.Equal(t, models.ResultContinue, result.Kind, "input %q", input)
		assert.Equal(t, models.StateAwaitingVaccineChoice, result.Session.State)
		assert.Contains(t, result.Replies[0], "Invalid choice")
	}
}

func TestVaccineFinder_HandleNoResults(t *testing.T) {
	h := NewVaccineFinder(&fakePlaces{})
	begin := h.Begin(context.Background(), adultProfile(), menuSession())

	result := h.Handle(context.Background(), adultProfile(), begin.Session, "1")

	require.Equal(t, models.ResultDone, result.Kind)
	assert.Contains(t, result.Replies[0], "couldn't find any centers")
}

func TestVaccineFinder_HandleSearchError(t *testing.T) {
	h := NewVaccineFinder(&fakePlaces{err: errors.New("quota exceeded")})
	begin := h.Begin(context.Background(), adultProfile(), menuSession())

	result := h.Handle(context.Background(), adultProfile(), begin.Session, "1")

	require.Equal(t, models.ResultFailed, result.Kind)
	assert.Contains(t, result.Reason, "quota exceeded")
	assert.Contains(t, result.Replies[0], "trouble searching")
}

func TestVaccineFinder_HandleNilSearcher(t *testing.T) {
	h := NewVaccineFinder(nil)
	begin := h.Begin(context.Background(), adultProfile(), menuSession())

	result := h.Handle(context.Background(), adultProfile(), begin.Session, "1")

	require.Equal(t, models.ResultFailed, result.Kind)
	assert.Contains(t, result.Replies[0], "not configured")
}
