package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/HexmosTech/oairequest/endpoint"
	"github.com/HexmosTech/oairequest/formdata"
)

func TestClientSend(t *testing.T) {
	// Setup
	var receivedPath, receivedAuth, receivedBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedAuth = r.Header.Get("Authorization")
		receivedBody = readAll(t, r.Body)
		fmt.Fprintln(w, `{"ok":true}`)
	}))
	defer ts.Close()

	form := &formdata.Form{}
	form.AddField("purpose", "assistants")
	form.AddFile("file", "notes.txt", "text/plain", []byte("hello"))
	r, err := BuildMultipartRequest(endpoint.New(ts.URL, "/v1/files"), Credentials{APIKey: "sk-1"}, MethodPost, form, nil)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	client := NewClient(&Options{Timeout: 5 * time.Second})

	// Exercise
	resp, err := client.Send(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	defer resp.Body.Close()

	// Verify
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if receivedPath != "/v1/files" {
		t.Errorf("unexpected path: %s", receivedPath)
	}
	if receivedAuth != "Bearer sk-1" {
		t.Errorf("unexpected authorization: %s", receivedAuth)
	}
	if !strings.Contains(receivedBody, "hello") {
		t.Errorf("file content missing from body: %q", receivedBody)
	}
}

func TestClientSend_MultipartIsParsable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("model") != "whisper-1" {
			http.Error(w, "missing model", http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	form := &formdata.Form{}
	form.AddField("model", "whisper-1")
	form.AddFile("file", "speech.mp3", "audio/mpeg", []byte{0xff, 0xfb, 0x90, 0x00})
	r, err := BuildMultipartRequest(endpoint.New(ts.URL, "/v1/audio/transcriptions"), Credentials{APIKey: "k"}, MethodPost, form, nil)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	resp, err := NewClient(&Options{Timeout: 5 * time.Second}).Send(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("server could not parse the body: status=%d, body=%s", resp.StatusCode, readAll(t, resp.Body))
	}
}

func TestClientSend_Redirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/redirect" {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.Header().Set("Location", "/redirect")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer ts.Close()

	testCases := []struct {
		title           string
		followRedirects bool
		expectedStatus  int
	}{
		{title: "Not followed by default", followRedirects: false, expectedStatus: http.StatusMovedPermanently},
		{title: "Followed when enabled", followRedirects: true, expectedStatus: http.StatusCreated},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			r, err := BuildRequest(endpoint.New(ts.URL, "/"), Credentials{APIKey: "k"}, MethodGet, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			client := NewClient(&Options{Timeout: 5 * time.Second, FollowRedirects: tt.followRedirects})
			resp, err := client.Send(context.Background(), r)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("unexpected status: expected=%d, actual=%d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestClientSend_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	r, err := BuildRequest(endpoint.New(ts.URL, "/"), Credentials{APIKey: "k"}, MethodGet, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if _, err := NewClient(&Options{Timeout: time.Second}).Send(context.Background(), r); err == nil {
		t.Errorf("expected error for unreachable server")
	}
}
