package router

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Scratch keys used by the registration wizard.
const (
	scratchName         = "name"
	scratchAge          = "age"
	scratchGender       = "gender"
	scratchDistrictPage = "district_page"
)

// greetingKeyword starts the registration wizard.
const greetingKeyword = "hi"

// moreKeyword advances the district list to the next page.
const moreKeyword = "more"

// defaultRegion is the state every profile is registered under.
const defaultRegion = "Odisha"

// districtPageSize is how many districts one page lists.
const districtPageSize = 10

// districts is the selectable district list, numbered 1..len across pages.
var districts = []string{
	"Angul", "Balangir", "Balasore", "Bargarh", "Bhadrak",
	"Boudh", "Cuttack", "Deogarh", "Dhenkanal", "Gajapati",
	"Ganjam", "Jagatsinghpur", "Jajpur", "Jharsuguda", "Kalahandi",
	"Kandhamal", "Kendrapara", "Keonjhar", "Khordha", "Koraput",
	"Malkangiri", "Mayurbhanj", "Nabarangpur", "Nayagarh", "Nuapada",
	"Puri", "Rayagada", "Sambalpur", "Subarnapur", "Sundargarh",
}

// advanceRegistration runs one step of the registration wizard for an
// unregistered identity. It returns the replies to send; session writes
// happen inside because most steps store a replacement session.
func (r *Router) advanceRegistration(ctx context.Context, identity string, session models.Session, input, lowered string) []string {
	lang := session.Language

	switch session.State {
	case models.StateNone, models.StateAwaitingGreeting:
		if lowered == greetingKeyword {
			if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingLanguage}) {
				return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
			}
			return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeyLanguageSelect)}
		}
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingGreeting}) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySayHi)}

	case models.StateAwaitingLanguage:
		chosen, ok := models.LanguageFromCode(input)
		if !ok {
			return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeyInvalidLanguage) + " " +
				i18n.Lookup(i18n.DefaultLanguage, i18n.KeyLanguageSelect)}
		}
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingName, Language: chosen}) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(chosen, i18n.KeyWelcome)}

	case models.StateAwaitingName:
		if input == "" {
			return []string{i18n.Lookup(lang, i18n.KeyWelcome)}
		}
		next := session.WithScratch(scratchName, input)
		next.State = models.StateAwaitingAge
		if !r.putSession(ctx, identity, next) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(lang, i18n.KeyAskAge)}

	case models.StateAwaitingAge:
		age, err := strconv.Atoi(input)
		if err != nil || age < 1 || age > 120 {
			return []string{i18n.Lookup(lang, i18n.KeyInvalidAge)}
		}
		next := session.WithScratch(scratchAge, strconv.Itoa(age))
		next.State = models.StateAwaitingGender
		if !r.putSession(ctx, identity, next) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(lang, i18n.KeyAskGender)}

	case models.StateAwaitingGender:
		gender, ok := models.GenderFromCode(input)
		if !ok {
			return []string{i18n.Lookup(lang, i18n.KeyInvalidGender)}
		}
		next := session.WithScratch(scratchGender, string(gender))
		next = next.WithScratch(scratchDistrictPage, "0")
		next.State = models.StateAwaitingDistrict
		if !r.putSession(ctx, identity, next) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(lang, i18n.KeyAskDistrict) + "\n\n" + districtPage(lang, 0)}

	case models.StateAwaitingDistrict:
		return r.finishRegistration(ctx, identity, session, input, lowered)

	default:
		// A registered-only state with no profile means the profile was
		// deleted out from under the session. Start over.
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingGreeting}) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySayHi)}
	}
}

// finishRegistration handles the paginated district picker and, on a valid
// pick, persists the profile. A store failure keeps the wizard in the
// district step so the user's next message retries instead of losing all
// collected answers.
func (r *Router) finishRegistration(ctx context.Context, identity string, session models.Session, input, lowered string) []string {
	lang := session.Language

	if lowered == moreKeyword {
		page, _ := strconv.Atoi(session.Scratch[scratchDistrictPage])
		page++
		if page*districtPageSize >= len(districts) {
			return []string{i18n.Lookup(lang, i18n.KeyNoMoreDistricts)}
		}
		next := session.WithScratch(scratchDistrictPage, strconv.Itoa(page))
		if !r.putSession(ctx, identity, next) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return []string{districtPage(lang, page)}
	}

	index, err := strconv.Atoi(input)
	if err != nil || index < 1 || index > len(districts) {
		return []string{i18n.Lookup(lang, i18n.KeyInvalidDistrict)}
	}

	age, err := strconv.Atoi(session.Scratch[scratchAge])
	if err != nil {
		slog.Error("Corrupt age in registration scratch, restarting wizard", "identity", identity, "error", err)
		r.putSession(ctx, identity, models.Session{State: models.StateAwaitingGreeting})
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySayHi)}
	}

	profile := models.Profile{
		Identity: identity,
		Name:     session.Scratch[scratchName],
		Age:      age,
		Gender:   models.Gender(session.Scratch[scratchGender]),
		Region:   defaultRegion,
		District: districts[index-1],
		Language: lang,
	}
	if _, err := r.profiles.CreateProfile(ctx, profile); err != nil {
		slog.Error("Failed to persist profile", "identity", identity, "error", err)
		return []string{i18n.Lookup(lang, i18n.KeyRegistrationError)}
	}

	if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingMenuChoice, Language: lang}) {
		// The profile exists, so the next message routes as registered.
		return []string{i18n.Lookup(lang, i18n.KeyRegistered)}
	}
	slog.Info("User registered", "identity", identity, "district", profile.District, "language", lang)
	return []string{
		i18n.Lookup(lang, i18n.KeyRegistered),
		i18n.Lookup(lang, i18n.KeyMainMenu),
	}
}

// districtPage renders one page of the district list with its absolute
// numbering, plus a pagination hint while more pages remain.
func districtPage(lang models.Language, page int) string {
	start := page * districtPageSize
	end := start + districtPageSize
	if end > len(districts) {
		end = len(districts)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, districts[i])
	}
	if end < len(districts) {
		b.WriteString("\n")
		b.WriteString(i18n.Lookup(lang, i18n.KeyMoreHint))
	}
	return strings.TrimRight(b.String(), "\n")
}
