package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// walk drives the wizard through the given inputs, returning the replies
// to the final input.
func walk(t *testing.T, r *Router, identity string, inputs ...string) []string {
	t.Helper()
	var replies []string
	for _, input := range inputs {
		replies = r.Route(context.Background(), identity, input)
		if len(replies) == 0 {
			t.Fatalf("no reply for input %q", input)
		}
	}
	return replies
}

func TestRegistration_FullRoundTrip(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)
	const identity = "911234567890"

	replies := walk(t, r, identity, "hi", "1", "Asha", "30", "2", "26")

	if len(replies) != 2 {
		t.Fatalf("expected confirmation and main menu, got %v", replies)
	}
	if !strings.Contains(replies[0], "registered") {
		t.Errorf("expected confirmation first, got %q", replies[0])
	}
	if !strings.Contains(replies[1], "How can I help you today?") {
		t.Errorf("expected main menu second, got %q", replies[1])
	}

	profile, err := profiles.FetchProfile(context.Background(), identity)
	if err != nil || profile == nil {
		t.Fatalf("expected persisted profile, got %v, %v", profile, err)
	}
	if profile.Name != "Asha" || profile.Age != 30 || profile.Gender != models.GenderFemale {
		t.Errorf("profile fields wrong: %+v", profile)
	}
	if profile.District != "Puri" || profile.Region != "Odisha" || profile.Language != models.LanguageEnglish {
		t.Errorf("profile location/language wrong: %+v", profile)
	}
	if got := sessions.state(identity); got != models.StateAwaitingMenuChoice {
		t.Errorf("expected awaiting_menu_choice after registration, got %q", got)
	}
}

func TestRegistration_InvalidLanguageReprompts(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)

	replies := walk(t, r, "911234567890", "hi", "9")
	if !strings.Contains(replies[0], "Invalid selection") {
		t.Errorf("expected invalid selection, got %q", replies[0])
	}
	if got := sessions.state("911234567890"); got != models.StateAwaitingLanguage {
		t.Errorf("expected awaiting_language, got %q", got)
	}
}

func TestRegistration_AgeBounds(t *testing.T) {
	cases := []struct {
		age   string
		valid bool
	}{
		{"0", false},
		{"1", true},
		{"120", true},
		{"121", false},
		{"thirty", false},
	}
	for _, tc := range cases {
		t.Run(tc.age, func(t *testing.T) {
			profiles, sessions := newFakeProfiles(), newFakeSessions()
			r := New(profiles, sessions)
			const identity = "911234567890"

			replies := walk(t, r, identity, "hi", "1", "Asha", tc.age)
			state := sessions.state(identity)
			if tc.valid {
				if state != models.StateAwaitingGender {
					t.Errorf("age %q should advance to gender, state %q, replies %v", tc.age, state, replies)
				}
			} else {
				if state != models.StateAwaitingAge {
					t.Errorf("age %q should stay in age step, state %q", tc.age, state)
				}
				if !strings.Contains(replies[0], "valid age") {
					t.Errorf("expected invalid age reply, got %q", replies[0])
				}
			}
		})
	}
}

func TestRegistration_InvalidGenderStays(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)
	const identity = "911234567890"

	replies := walk(t, r, identity, "hi", "1", "Asha", "30", "7")
	if !strings.Contains(replies[0], "1, 2 or 3") {
		t.Errorf("expected invalid gender reply, got %q", replies[0])
	}
	if got := sessions.state(identity); got != models.StateAwaitingGender {
		t.Errorf("expected awaiting_gender, got %q", got)
	}
}

func TestRegistration_DistrictPagination(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)
	const identity = "911234567890"

	first := walk(t, r, identity, "hi", "1", "Asha", "30", "2")
	if !strings.Contains(first[0], "1. Angul") || strings.Contains(first[0], "11. Ganjam") {
		t.Fatalf("expected first district page, got %q", first[0])
	}

	second := r.Route(context.Background(), identity, "more")
	if !strings.Contains(second[0], "11. Ganjam") {
		t.Errorf("expected second page, got %q", second[0])
	}

	third := r.Route(context.Background(), identity, "more")
	if !strings.Contains(third[0], "30. Sundargarh") {
		t.Errorf("expected third page, got %q", third[0])
	}

	past := r.Route(context.Background(), identity, "more")
	if !strings.Contains(past[0], "no more districts") {
		t.Errorf("expected explicit end of list, got %q", past[0])
	}

	// An absolute index from an earlier page is still accepted.
	done := r.Route(context.Background(), identity, "3")
	if len(done) != 2 {
		t.Fatalf("expected registration to complete, got %v", done)
	}
	profile, _ := profiles.FetchProfile(context.Background(), identity)
	if profile == nil || profile.District != "Balasore" {
		t.Errorf("expected Balasore, got %+v", profile)
	}
}

func TestRegistration_InvalidDistrictStays(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)
	const identity = "911234567890"

	replies := walk(t, r, identity, "hi", "1", "Asha", "30", "2", "31")
	if !strings.Contains(replies[0], "Invalid district") {
		t.Errorf("expected invalid district reply, got %q", replies[0])
	}
	if got := sessions.state(identity); got != models.StateAwaitingDistrict {
		t.Errorf("expected awaiting_district, got %q", got)
	}
}

func TestRegistration_StoreFailureAllowsRetry(t *testing.T) {
	profiles, sessions := newFakeProfiles(), newFakeSessions()
	r := New(profiles, sessions)
	const identity = "911234567890"

	walk(t, r, identity, "hi", "1", "Asha", "30", "2")

	profiles.mu.Lock()
	profiles.createErr = errors.New("db down")
	profiles.mu.Unlock()

	failed := r.Route(context.Background(), identity, "26")
	if len(failed) != 1 || !strings.Contains(failed[0], "could not save") {
		t.Fatalf("expected registration error, got %v", failed)
	}
	if got := sessions.state(identity); got != models.StateAwaitingDistrict {
		t.Fatalf("wizard must stay in district step after store failure, got %q", got)
	}

	profiles.mu.Lock()
	profiles.createErr = nil
	profiles.mu.Unlock()

	retried := r.Route(context.Background(), identity, "26")
	if len(retried) != 2 {
		t.Fatalf("expected successful retry, got %v", retried)
	}
	profile, _ := profiles.FetchProfile(context.Background(), identity)
	if profile == nil || profile.District != "Puri" {
		t.Errorf("expected persisted profile after retry, got %+v", profile)
	}
}
