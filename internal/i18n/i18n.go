// Package i18n provides the localized reply-string table for Aarogya Sarthi.
//
// Strings are looked up by (language, key) with automatic fallback to
// English when a key has no translation in the requested language. This
// replaces the per-language message tables duplicated across the legacy
// feature modules.
package i18n

import (
	"fmt"
	"log/slog"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Key identifies one localizable message.
type Key string

const (
	KeyLanguageSelect      Key = "language_select"
	KeyWelcome             Key = "welcome"
	KeyAskAge              Key = "ask_age"
	KeyAskGender           Key = "ask_gender"
	KeyAskDistrict         Key = "ask_district"
	KeyRegistered          Key = "registered"
	KeyWelcomeBack         Key = "welcome_back"
	KeyMainMenu            Key = "main_menu"
	KeySymptomCheckerStart Key = "symptom_checker_start"
	KeyExitMessage         Key = "exit_message"
	KeySayHi               Key = "say_hi"
	KeyInvalidOption       Key = "invalid_option"
	KeyInvalidLanguage     Key = "invalid_language"
	KeyInvalidAge          Key = "invalid_age"
	KeyInvalidGender       Key = "invalid_gender"
	KeyInvalidDistrict     Key = "invalid_district"
	KeyNoMoreDistricts     Key = "no_more_districts"
	KeyMoreHint            Key = "more_hint"
	KeyVaccineIntro        Key = "vaccine_intro"
	KeyInvalidChoice       Key = "invalid_choice"
	KeyClinicsFoundIntro   Key = "clinics_found_intro"
	KeyNoClinicsFound      Key = "no_clinics_found"
	KeyClinicFinderOffline Key = "clinic_finder_offline"
	KeyClinicSearchError   Key = "clinic_search_error"
	KeyAlertsUnavailable   Key = "alerts_unavailable"
	KeyAddressLabel        Key = "address_label"
	KeyCallAheadNote       Key = "call_ahead_note"
	KeyReturnToMenuHint    Key = "return_to_menu_hint"
	KeyPreventiveTipsIntro Key = "preventive_tips_intro"
	KeyAlertIntro          Key = "alert_intro"
	KeyNoNewAlerts         Key = "no_new_alerts"
	KeyAIUnavailable       Key = "ai_unavailable"
	KeyRegistrationError   Key = "registration_error"
	KeySomethingWentWrong  Key = "something_went_wrong"
)

// DefaultLanguage is the fallback for missing translations.
const DefaultLanguage = models.LanguageEnglish

// Lookup returns the message for the given language and key, formatting any
// params into the template. Missing translations fall back to English; a
// missing key in English returns the key name so the user is never left
// without a reply.
func Lookup(lang models.Language, key Key, params ...any) string {
	text, ok := catalog[lang][key]
	if !ok {
		text, ok = catalog[DefaultLanguage][key]
	}
	if !ok {
		slog.Error("i18n missing catalog entry", "key", key, "language", lang)
		return string(key)
	}
	if len(params) == 0 {
		return text
	}
	return fmt.Sprintf(text, params...)
}

// Has reports whether the key has a native translation in the language
// (without considering the English fallback).
func Has(lang models.Language, key Key) bool {
	_, ok := catalog[lang][key]
	return ok
}
