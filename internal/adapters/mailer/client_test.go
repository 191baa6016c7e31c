package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vungtau_stay/internal/domain"
)

func TestSendOK(t *testing.T) {
	var got sendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test" {
			t.Errorf("auth %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "re_test", "Vung Tau Stay <bookings@vungtaustay.vn>")
	err := c.Send(context.Background(), domain.Email{
		To:      "an@example.com",
		Subject: "Xác nhận đặt phòng",
		HTML:    "<p>xin chào</p>",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.To) != 1 || got.To[0] != "an@example.com" {
		t.Errorf("to %v", got.To)
	}
	if got.From != "Vung Tau Stay <bookings@vungtaustay.vn>" {
		t.Errorf("from %q", got.From)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "re_test", "x@y.vn")
	if err := c.Send(context.Background(), domain.Email{To: "a@b.vn", Subject: "s", HTML: "h"}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestSendDoesNotRetryRejection(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(srv.URL, "re_test", "x@y.vn")
	err := c.Send(context.Background(), domain.Email{To: "a@b.vn", Subject: "s", HTML: "h"})
	if !errors.Is(err, ErrMailRejected) {
		t.Fatalf("want ErrMailRejected, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}
