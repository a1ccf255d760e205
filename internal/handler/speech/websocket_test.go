package speech

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/asantekofi/ricedoctor/internal/model/disease"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
)

func dialVoiceWS(t *testing.T, speechSvc SpeechService) (*websocket.Conn, *chatservice.Service, string, func()) {
	t.Helper()

	chatSvc := chatservice.NewService()
	qaSvc := qa.NewService(disease.NewMemoryStore(disease.Seed()), nil)

	r := chi.NewRouter()
	NewWebSocketHandler(speechSvc, qaSvc, chatSvc).RegisterWebSocketRoutes(r)

	server := httptest.NewServer(r)

	session, err := chatSvc.CreateSession(context.Background(), false)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws/" + session.ID
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial err: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected protocol switch, got %d", resp.StatusCode)
	}

	return conn, chatSvc, session.ID, func() {
		conn.Close()
		server.Close()
	}
}

func TestWebSocketTextQuestion(t *testing.T) {
	conn, chatSvc, sessionID, cleanup := dialVoiceWS(t, &fakeSpeechService{})
	defer cleanup()

	if err := conn.WriteJSON(inboundMessage{Type: "question", Text: "what causes rice blast?"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	var answer outboundMessage
	if err := conn.ReadJSON(&answer); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if answer.Type != "answer" || !answer.Matched {
		t.Fatalf("unexpected reply: %+v", answer)
	}
	if answer.Disease != "Rice Blast" {
		t.Fatalf("unexpected disease: %q", answer.Disease)
	}

	messages, _ := chatSvc.LoadTranscript(context.Background(), sessionID)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages after turn, got %d", len(messages))
	}
}

func TestWebSocketAudioQuestion(t *testing.T) {
	speechSvc := &fakeSpeechService{transcript: "tell me about tungro", stt: true}
	conn, _, _, cleanup := dialVoiceWS(t, speechSvc)
	defer cleanup()

	audio := base64.StdEncoding.EncodeToString([]byte("fake-wav"))
	if err := conn.WriteJSON(inboundMessage{Type: "audio", Audio: audio, Format: "wav"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	var transcript outboundMessage
	if err := conn.ReadJSON(&transcript); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if transcript.Type != "transcript" || transcript.Text != "tell me about tungro" {
		t.Fatalf("unexpected transcript message: %+v", transcript)
	}

	var answer outboundMessage
	if err := conn.ReadJSON(&answer); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if answer.Type != "answer" || answer.Disease != "Rice Tungro" {
		t.Fatalf("unexpected answer message: %+v", answer)
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	chatSvc := chatservice.NewService()
	qaSvc := qa.NewService(disease.NewMemoryStore(disease.Seed()), nil)

	r := chi.NewRouter()
	NewWebSocketHandler(&fakeSpeechService{}, qaSvc, chatSvc).RegisterWebSocketRoutes(r)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/voice/ws/missing"
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
}
