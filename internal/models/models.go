// Package models defines core data structures shared across Aarogya Sarthi modules.
package models

import "time"

// Language is one of the fixed set of reply languages supported by the bot.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageOdia    Language = "od"
	LanguageKui     Language = "kui"
	LanguageSantali Language = "sa"
)

// LanguageFromCode maps a numeric menu code ("1".."5") to a Language.
// Returns false when the code is not a valid language selection.
func LanguageFromCode(code string) (Language, bool) {
	switch code {
	case "1":
		return LanguageEnglish, true
	case "2":
		return LanguageHindi, true
	case "3":
		return LanguageOdia, true
	case "4":
		return LanguageKui, true
	case "5":
		return LanguageSantali, true
	default:
		return "", false
	}
}

// Gender is the enumerated gender recorded on a Profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// GenderFromCode maps a numeric code ("1".."3") to a Gender.
func GenderFromCode(code string) (Gender, bool) {
	switch code {
	case "1":
		return GenderMale, true
	case "2":
		return GenderFemale, true
	case "3":
		return GenderOther, true
	default:
		return "", false
	}
}

// Profile is a registered user's durable record. It is created once at the
// end of the registration wizard and is read-only to the router afterwards.
type Profile struct {
	ID        string    `json:"id"`
	Identity  string    `json:"identity"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Region    string    `json:"region"`
	District  string    `json:"district"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionState is the tag that determines routing for an inbound message.
type SessionState string

const (
	// StateNone marks a synthesized session for an identity with no stored
	// session. It is always a safe entry point.
	StateNone SessionState = ""

	StateAwaitingGreeting   SessionState = "awaiting_greeting"
	StateAwaitingLanguage   SessionState = "awaiting_language"
	StateAwaitingName       SessionState = "awaiting_name"
	StateAwaitingAge        SessionState = "awaiting_age"
	StateAwaitingGender     SessionState = "awaiting_gender"
	StateAwaitingDistrict   SessionState = "awaiting_district"
	StateAwaitingMenuChoice SessionState = "awaiting_menu_choice"

	StateAwaitingSymptoms      SessionState = "awaiting_symptoms"
	StateAwaitingVaccineChoice SessionState = "awaiting_vaccine_choice"
)

// Session is the ephemeral per-identity conversation state. Scratch holds
// handler-local working data and is opaque to the router.
type Session struct {
	State    SessionState      `json:"state"`
	Language Language          `json:"language,omitempty"`
	Scratch  map[string]string `json:"scratch,omitempty"`
}

// WithScratch returns a copy of the session with the given scratch key set,
// allocating the scratch map if needed. The receiver is not modified.
func (s Session) WithScratch(key, value string) Session {
	scratch := make(map[string]string, len(s.Scratch)+1)
	for k, v := range s.Scratch {
		scratch[k] = v
	}
	scratch[key] = value
	s.Scratch = scratch
	return s
}

// CloneScratch returns a deep copy of the session so callers cannot alias
// the stored scratch map.
func (s Session) CloneScratch() Session {
	if s.Scratch == nil {
		return s
	}
	scratch := make(map[string]string, len(s.Scratch))
	for k, v := range s.Scratch {
		scratch[k] = v
	}
	s.Scratch = scratch
	return s
}

// ChatTurn is one exchange in the symptom-triage conversation history.
type ChatTurn struct {
	Speaker string `json:"speaker"` // "user" or "model"
	Text    string `json:"text"`
}

// Alert is one candidate outbreak alert from the feed collaborator.
type Alert struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Place is one vaccination-center result from the places collaborator.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Response represents an inbound message from a conversation endpoint.
type Response struct {
	From string `json:"from"`
	Body string `json:"body"`
	Time int64  `json:"time"`
}

// StatusType enumerates delivery receipt statuses.
type StatusType string

const (
	StatusTypeSent      StatusType = "sent"
	StatusTypeDelivered StatusType = "delivered"
	StatusTypeRead      StatusType = "read"
)

// Receipt represents an outbound message delivery event.
type Receipt struct {
	To     string     `json:"to"`
	Status StatusType `json:"status"`
	Time   int64      `json:"time"`
}
