package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Disease Outbreak News</title>
    <item>
      <title>Cholera - India</title>
      <description>Cases of cholera reported in eastern India.</description>
      <guid>outbreak-1</guid>
      <link>https://example.org/outbreak-1</link>
    </item>
    <item>
      <title>Ebola - West Africa</title>
      <description>Update on the regional situation.</description>
      <guid>outbreak-2</guid>
      <link>https://example.org/outbreak-2</link>
    </item>
    <item>
      <title>Dengue update</title>
      <description>Monsoon spike across India reported.</description>
      <link>https://example.org/outbreak-3</link>
    </item>
  </channel>
</rss>`

func TestFetchCandidateAlerts_FiltersByRelevance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSS))
	}))
	defer server.Close()

	c := NewClient(WithURL(server.URL))
	alerts, err := c.FetchCandidateAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2, "only India-relevant items pass the filter")

	assert.Equal(t, "outbreak-1", alerts[0].ID)
	assert.Equal(t, "Cholera - India", alerts[0].Title)

	// Item without a GUID falls back to its link as ID.
	assert.Equal(t, "https://example.org/outbreak-3", alerts[1].ID)
}

func TestFetchCandidateAlerts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(WithURL(server.URL))
	_, err := c.FetchCandidateAlerts(context.Background())
	assert.Error(t, err)
}
