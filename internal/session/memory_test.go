package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

func TestInMemoryStore_RoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	got, err := s.Get(ctx, "911234567890")
	require.NoError(t, err)
	assert.Nil(t, got, "absent session must be (nil, nil)")

	session := models.Session{
		State:    models.StateAwaitingAge,
		Language: models.LanguageHindi,
		Scratch:  map[string]string{"name": "Asha"},
	}
	require.NoError(t, s.Put(ctx, "911234567890", session))

	got, err = s.Get(ctx, "911234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateAwaitingAge, got.State)
	assert.Equal(t, "Asha", got.Scratch["name"])

	require.NoError(t, s.Delete(ctx, "911234567890"))
	got, err = s.Get(ctx, "911234567890")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryStore_DoesNotAliasScratch(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	original := models.Session{
		State:   models.StateAwaitingDistrict,
		Scratch: map[string]string{"district_page": "0"},
	}
	require.NoError(t, s.Put(ctx, "911234567890", original))

	// Mutating the caller's map after Put must not change the store.
	original.Scratch["district_page"] = "2"

	got, err := s.Get(ctx, "911234567890")
	require.NoError(t, err)
	assert.Equal(t, "0", got.Scratch["district_page"])

	// Mutating a fetched copy must not change the store either.
	got.Scratch["district_page"] = "9"
	again, err := s.Get(ctx, "911234567890")
	require.NoError(t, err)
	assert.Equal(t, "0", again.Scratch["district_page"])
}

func TestInMemoryStore_PutReplacesWholeSession(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "911234567890", models.Session{
		State:   models.StateAwaitingSymptoms,
		Scratch: map[string]string{"chat_history": "[]"},
	}))
	require.NoError(t, s.Put(ctx, "911234567890", models.Session{
		State: models.StateAwaitingMenuChoice,
	}))

	got, err := s.Get(ctx, "911234567890")
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingMenuChoice, got.State)
	assert.Empty(t, got.Scratch, "replacement session must not inherit old scratch")
}
