package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// scratchAvailableVaccines holds the JSON-encoded vaccine names offered to
// the user, so the numeric choice can be resolved on the next message.
const scratchAvailableVaccines = "available_vaccines"

// maxClinicResults caps how many centers one reply lists.
const maxClinicResults = 3

// VaccineFinder lists age-appropriate vaccines and finds nearby centers
// carrying the chosen one.
type VaccineFinder struct {
	places PlacesSearcher
}

// NewVaccineFinder creates the vaccination-reminders handler. A nil
// searcher is allowed; the clinic lookup then fails gracefully.
func NewVaccineFinder(places PlacesSearcher) *VaccineFinder {
	return &VaccineFinder{places: places}
}

// Begin lists the vaccines for the user's age band and asks for a choice.
func (h *VaccineFinder) Begin(_ context.Context, profile *models.Profile, session models.Session) models.HandlerResult {
	if profile == nil {
		return models.Failed("vaccine finder requires a registered profile",
			i18n.Lookup(session.Language, i18n.KeySomethingWentWrong))
	}

	group := scheduleFor(profile.Age)
	var b strings.Builder
	b.WriteString(i18n.Lookup(session.Language, i18n.KeyVaccineIntro))
	b.WriteString("\n\n*")
	b.WriteString(group.Title(session.Language))
	b.WriteString("*\n")
	for i, vaccine := range group.Vaccines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, vaccine)
	}
	b.WriteString("\n")
	b.WriteString(i18n.Lookup(session.Language, i18n.KeyReturnToMenuHint))

	encoded, err := json.Marshal(group.Vaccines)
	if err != nil {
		return models.Failed("failed to encode vaccine list: "+err.Error(),
			i18n.Lookup(session.Language, i18n.KeySomethingWentWrong))
	}

	next := models.Session{State: models.StateAwaitingVaccineChoice, Language: session.Language}
	next = next.WithScratch(scratchAvailableVaccines, string(encoded))
	return models.Continue(next, b.String())
}

// Handle resolves the user's numeric pick against the offered list and
// searches for centers in the user's district carrying that vaccine.
func (h *VaccineFinder) Handle(ctx context.Context, profile *models.Profile, session models.Session, input string) models.HandlerResult {
	var vaccines []string
	if raw := session.Scratch[scratchAvailableVaccines]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &vaccines); err != nil {
			return models.Failed("corrupt vaccine list in session scratch: "+err.Error(),
				i18n.Lookup(session.Language, i18n.KeySomethingWentWrong))
		}
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(vaccines) {
		return models.Continue(session, i18n.Lookup(session.Language, i18n.KeyInvalidChoice))
	}
	vaccine := vaccines[choice-1]

	if h.places == nil {
		return models.Failed("places collaborator not configured",
			i18n.Lookup(session.Language, i18n.KeyClinicFinderOffline))
	}

	query := fmt.Sprintf("hospitals or clinics with %s vaccine in %s", vaccine, profile.District)
	results, err := h.places.Search(ctx, query)
	if err != nil {
		return models.Failed("clinic search failed: "+err.Error(),
			i18n.Lookup(session.Language, i18n.KeyClinicSearchError))
	}
	if len(results) == 0 {
		return models.Done(i18n.Lookup(session.Language, i18n.KeyNoClinicsFound))
	}

	var b strings.Builder
	b.WriteString(i18n.Lookup(session.Language, i18n.KeyClinicsFoundIntro))
	b.WriteString("\n\n")
	for i, place := range results {
		if i == maxClinicResults {
			break
		}
		mapsURL := "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(place.Address)
		fmt.Fprintf(&b, "%d. *%s*\n%s: %s\nGoogle Maps: %s\n\n",
			i+1, place.Name, i18n.Lookup(session.Language, i18n.KeyAddressLabel), place.Address, mapsURL)
	}
	b.WriteString(i18n.Lookup(session.Language, i18n.KeyCallAheadNote))
	return models.Done(b.String())
}
