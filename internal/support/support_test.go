package support

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newCaptchaServer(t *testing.T, success bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing captcha form: %v", err)
		}
		if r.PostForm.Get("secret") != "shh" {
			t.Errorf("secret = %q, want shh", r.PostForm.Get("secret"))
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": success})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig() Config {
	return Config{
		HCaptchaSecret: "shh",
		ResendAPIKey:   "re_key",
		FromAddress:    "noreply@hackeroso.example",
		SupportInbox:   "support@hackeroso.example",
	}
}

func TestSubmitSendsBothEmails(t *testing.T) {
	captcha := newCaptchaServer(t, true)

	var sent []email
	resend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer re_key" {
			t.Errorf("Authorization = %q", got)
		}
		var msg email
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decoding email: %v", err)
		}
		sent = append(sent, msg)
		w.WriteHeader(http.StatusOK)
	}))
	defer resend.Close()

	svc := NewWithEndpoints(nil, testConfig(), captcha.URL, resend.URL)
	err := svc.Submit(context.Background(), Request{
		Name:         "Ada",
		Email:        "ada@example.com",
		Message:      "The timer stopped counting.",
		CaptchaToken: "tok",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sent))
	}
	if sent[0].To[0] != "support@hackeroso.example" {
		t.Errorf("first email to %v, want support inbox", sent[0].To)
	}
	if sent[0].ReplyTo != "ada@example.com" {
		t.Errorf("inbox email reply_to = %q", sent[0].ReplyTo)
	}
	if sent[1].To[0] != "ada@example.com" {
		t.Errorf("second email to %v, want sender", sent[1].To)
	}
	if !strings.Contains(sent[1].Text, "The timer stopped counting.") {
		t.Errorf("confirmation missing original message: %q", sent[1].Text)
	}
}

func TestSubmitRejectsFailedCaptcha(t *testing.T) {
	captcha := newCaptchaServer(t, false)

	var sends int
	resend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sends++
	}))
	defer resend.Close()

	svc := NewWithEndpoints(nil, testConfig(), captcha.URL, resend.URL)
	err := svc.Submit(context.Background(), Request{
		Email:        "ada@example.com",
		Message:      "hello",
		CaptchaToken: "bad",
	})
	if !errors.Is(err, ErrInvalidCaptcha) {
		t.Fatalf("err = %v, want ErrInvalidCaptcha", err)
	}
	if sends != 0 {
		t.Errorf("sent %d emails despite failed captcha", sends)
	}
}

func TestSubmitRequiresEmailAndMessage(t *testing.T) {
	svc := New(nil, testConfig())
	if err := svc.Submit(context.Background(), Request{CaptchaToken: "tok"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSubmitSurfacesProviderError(t *testing.T) {
	captcha := newCaptchaServer(t, true)
	resend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer resend.Close()

	svc := NewWithEndpoints(nil, testConfig(), captcha.URL, resend.URL)
	err := svc.Submit(context.Background(), Request{
		Email:        "ada@example.com",
		Message:      "hi",
		CaptchaToken: "tok",
	})
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("err = %v, want provider status error", err)
	}
}
