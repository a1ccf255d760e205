package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
)

func newTestService(t *testing.T, whisperURL string) *Service {
	t.Helper()
	svc, err := NewService(&speechmodel.Config{
		WhisperURL:    whisperURL,
		ASRLanguage:   "en",
		TTSLanguage:   "en",
		TTSSpeed:      1.0,
		MinTranscript: 2,
		Timeout:       5,
	})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return svc
}

func TestTranscribeBuffer(t *testing.T) {
	var gotField string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("server failed to parse form: %v", err)
		}
		gotField = r.FormValue("response_format")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		io.WriteString(w, " [_BEG_]What causes rice blast?\n")
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	resp, err := svc.TranscribeBuffer(context.Background(), "s1", []byte("fake-wav-bytes"), "wav", "en")
	if err != nil {
		t.Fatalf("TranscribeBuffer err: %v", err)
	}
	if resp.Text != "What causes rice blast?" {
		t.Fatalf("unexpected transcript: %q", resp.Text)
	}
	if gotField != "text" {
		t.Fatalf("expected response_format=text, got %q", gotField)
	}
	if resp.RequestID == "" || resp.CreatedAt.IsZero() {
		t.Fatal("response missing generated fields")
	}
}

func TestTranscribeBufferEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "   \n")
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	_, err := svc.TranscribeBuffer(context.Background(), "s1", []byte("silence"), "wav", "en")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
}

func TestTranscribeBufferServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	if _, err := svc.TranscribeBuffer(context.Background(), "s1", []byte("audio"), "wav", "en"); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestTranscribeBufferSTTDisabled(t *testing.T) {
	svc := newTestService(t, "")

	_, err := svc.TranscribeBuffer(context.Background(), "s1", []byte("audio"), "wav", "en")
	if !errors.Is(err, ErrSTTUnavailable) {
		t.Fatalf("expected ErrSTTUnavailable, got %v", err)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("**Rice Blast** is caused by <i>Magnaporthe oryzae</i>.")
	want := "Rice Blast is caused by Magnaporthe oryzae."
	if got != want {
		t.Fatalf("cleanText: got %q want %q", got, want)
	}
}
