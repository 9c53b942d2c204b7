package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nocaptbsm/aarogya--sarthi/internal/twiliowhatsapp"
)

func TestTwilioService_ValidateAndCanonicalizeRecipient(t *testing.T) {
	s := NewTwilioService(twiliowhatsapp.NewMockClient())

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"whatsapp:+911234567890", "911234567890", false},
		{"+91 12345 67890", "911234567890", false},
		{"911234567890", "911234567890", false},
		{"12345", "", true},
		{"no digits", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := s.ValidateAndCanonicalizeRecipient(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTwilioService_SendMessageCanonicalizesAndEmitsReceipt(t *testing.T) {
	mock := twiliowhatsapp.NewMockClient()
	s := NewTwilioService(mock)

	if err := s.SendMessage(context.Background(), "whatsapp:+911234567890", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 1 || mock.SentMessages[0].To != "911234567890" {
		t.Fatalf("unexpected sent messages: %+v", mock.SentMessages)
	}

	select {
	case receipt := <-s.Receipts():
		if receipt.To != "911234567890" {
			t.Errorf("receipt for wrong recipient: %+v", receipt)
		}
	default:
		t.Error("expected a sent receipt")
	}
}

func TestTwilioService_SendAfterStopFails(t *testing.T) {
	s := NewTwilioService(twiliowhatsapp.NewMockClient())
	if err := s.Stop(); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	if err := s.SendMessage(context.Background(), "911234567890", "hello"); err != ErrServiceStopped {
		t.Errorf("expected ErrServiceStopped, got %v", err)
	}
}

func TestTwilioService_WebhookEmitsResponse(t *testing.T) {
	s := NewTwilioService(twiliowhatsapp.NewMockClient())

	form := url.Values{}
	form.Set("From", "whatsapp:+911234567890")
	form.Set("Body", "hi")
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	s.WebhookHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	select {
	case response := <-s.Responses():
		if response.From != "whatsapp:+911234567890" || response.Body != "hi" {
			t.Errorf("unexpected response: %+v", response)
		}
	default:
		t.Fatal("expected response on channel")
	}
}

func TestTwilioService_WebhookRejectsMissingFields(t *testing.T) {
	s := NewTwilioService(twiliowhatsapp.NewMockClient())

	form := url.Values{}
	form.Set("From", "whatsapp:+911234567890")
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	s.WebhookHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
