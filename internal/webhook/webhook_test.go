package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

func TestInterpret(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   Kind
		errs   map[string]string
	}{
		{"200 success absent", 200, `{}`, Accepted, nil},
		{"200 empty body", 200, ``, Accepted, nil},
		{"201 success true", 201, `{"success":true}`, Rejected, nil},
		{"204 no content", 204, ``, Rejected, nil},
		{"200 success false", 200, `{"success":false}`, Rejected, nil},
		{"200 errors map", 200, `{"errors":{"email":"bad"}}`, FieldErrors, map[string]string{"email": "bad"}},
		{"422 errors map", 422, `{"errors":{"name":"short"}}`, FieldErrors, map[string]string{"name": "short"}},
		{"200 empty errors map", 200, `{"errors":{}}`, Accepted, nil},
		{"500 no body", 500, ``, Rejected, nil},
		{"404 json", 404, `{"success":true}`, Rejected, nil},
		{"200 html", 200, `<html>oops</html>`, Rejected, nil},
		{"200 array", 200, `[1,2]`, Rejected, nil},
		{"200 errors not an object", 200, `{"errors":"nope"}`, Accepted, nil},
		{"200 non-string message", 200, `{"errors":{"phone":42}}`, FieldErrors, map[string]string{"phone": "42"}},
	}
	for _, tc := range cases {
		got := Interpret(tc.status, []byte(tc.body))
		if got.Kind != tc.want {
			t.Errorf("%s: kind = %v, want %v (err %v)", tc.name, got.Kind, tc.want, got.Err)
			continue
		}
		if diff := cmp.Diff(tc.errs, got.Errors); diff != "" {
			t.Errorf("%s: errors mismatch (-want +got):\n%s", tc.name, diff)
		}
		if got.Kind == Rejected && got.Err == nil {
			t.Errorf("%s: rejected outcome without a reason", tc.name)
		}
	}
}

func TestClient_PostsJSONOnce(t *testing.T) {
	var calls atomic.Int32
	var gotBody map[string]any
	var gotType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithLogger(zaptest.NewLogger(t).Sugar()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := c.Submit(context.Background(), Payload{"form_type": "express", "email": "a@b.com"})

	if out.Kind != Accepted || out.Status != http.StatusOK {
		t.Fatalf("outcome = %+v", out)
	}
	if calls.Load() != 1 {
		t.Fatalf("server saw %d calls, want 1", calls.Load())
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q", gotType)
	}
	if gotBody["form_type"] != "express" || gotBody["email"] != "a@b.com" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestClient_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithLogger(zaptest.NewLogger(t).Sugar()))
	out := c.Submit(context.Background(), Payload{})
	if out.Kind != Rejected || out.Status != http.StatusBadGateway {
		t.Fatalf("outcome = %+v", out)
	}
	if calls.Load() != 1 {
		t.Fatalf("server saw %d calls, want 1", calls.Load())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(url, WithLogger(zaptest.NewLogger(t).Sugar()))
	out := c.Submit(context.Background(), Payload{})
	if out.Kind != Rejected || out.Status != 0 || out.Err == nil {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, _ := New(srv.URL, WithTimeout(50*time.Millisecond), WithLogger(zaptest.NewLogger(t).Sugar()))
	out := c.Submit(context.Background(), Payload{})
	if out.Kind != Rejected {
		t.Fatalf("outcome = %+v, want rejected", out)
	}
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New(""); err != ErrNoURL {
		t.Fatalf("err = %v, want ErrNoURL", err)
	}
}
