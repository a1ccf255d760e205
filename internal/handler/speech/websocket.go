package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/asantekofi/ricedoctor/internal/model/chat"
	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
	speechsvc "github.com/asantekofi/ricedoctor/internal/service/speech"
)

const writeTimeout = 10 * time.Second

// WebSocketHandler runs the voice chat loop over one connection: audio or
// text in, transcript plus answer out, MP3 reply when the session asks for
// voice. Messages are handled one at a time, in arrival order.
type WebSocketHandler struct {
	speechSvc SpeechService
	qaSvc     *qa.Service
	chatSvc   *chatservice.Service
	upgrader  websocket.Upgrader
}

// NewWebSocketHandler creates the websocket voice handler.
func NewWebSocketHandler(speechSvc SpeechService, qaSvc *qa.Service, chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		speechSvc: speechSvc,
		qaSvc:     qaSvc,
		chatSvc:   chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/voice/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type     string `json:"type"` // "question" or "audio"
	Text     string `json:"text,omitempty"`
	Audio    string `json:"audio,omitempty"` // base64
	Format   string `json:"format,omitempty"`
	Language string `json:"language,omitempty"`
}

type outboundMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Text      string `json:"text,omitempty"`
	Disease   string `json:"disease,omitempty"`
	Matched   bool   `json:"matched,omitempty"`
	Format    string `json:"format,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice-ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[voice-ws] connected session=%s", sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[voice-ws] read error: %v", err)
			}
			return
		}

		switch inbound.Type {
		case "question":
			h.processQuestion(r.Context(), conn, sessionID, inbound.Text)
		case "audio":
			h.processAudio(r.Context(), conn, sessionID, inbound)
		default:
			h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) processAudio(ctx context.Context, conn *websocket.Conn, sessionID string, inbound inboundMessage) {
	if h.speechSvc == nil || !h.speechSvc.STTEnabled() {
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "speech recognition is not configured"})
		return
	}

	audio, err := base64.StdEncoding.DecodeString(inbound.Audio)
	if err != nil {
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "invalid audio payload"})
		return
	}

	format := inbound.Format
	if format == "" {
		format = "wav"
	}

	resp, err := h.speechSvc.TranscribeAudio(ctx, &speechmodel.ASRRequest{
		SessionID: sessionID,
		AudioData: bytes.NewReader(audio),
		Format:    format,
		Language:  inbound.Language,
	})
	if errors.Is(err, speechsvc.ErrEmptyTranscript) {
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "could not hear a question, please try again or type it"})
		return
	}
	if err != nil {
		log.Printf("[voice-ws] ASR error: %v", err)
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "speech recognition failed"})
		return
	}

	h.send(conn, outboundMessage{Type: "transcript", SessionID: sessionID, Text: resp.Text})
	h.processQuestion(ctx, conn, sessionID, resp.Text)
}

func (h *WebSocketHandler) processQuestion(ctx context.Context, conn *websocket.Conn, sessionID, question string) {
	result, err := h.qaSvc.Ask(ctx, question)
	if errors.Is(err, qa.ErrEmptyQuestion) {
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "question is required"})
		return
	}
	if err != nil {
		log.Printf("[voice-ws] QA error: %v", err)
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "failed to answer question"})
		return
	}

	if err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   question,
	}); err != nil {
		log.Printf("[voice-ws] failed to save user message: %v", err)
	}
	if err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleBot,
		Content:   result.Answer,
		Disease:   result.Disease,
	}); err != nil {
		log.Printf("[voice-ws] failed to save bot message: %v", err)
	}

	h.send(conn, outboundMessage{
		Type:      "answer",
		SessionID: sessionID,
		Text:      result.Answer,
		Disease:   result.Disease,
		Matched:   result.Matched,
	})

	h.maybeSpeakReply(ctx, conn, sessionID, result.Answer)
}

// maybeSpeakReply synthesizes the answer when the session's response mode
// asks for voice. Synthesis failures are reported inline and never undo the
// already delivered text answer.
func (h *WebSocketHandler) maybeSpeakReply(ctx context.Context, conn *websocket.Conn, sessionID, answer string) {
	session, err := h.chatSvc.GetSession(ctx, sessionID)
	if err != nil || !session.VoiceReply {
		return
	}
	if h.speechSvc == nil || !h.speechSvc.TTSEnabled() {
		return
	}

	resp, err := h.speechSvc.SynthesizeToBuffer(ctx, sessionID, answer)
	if err != nil {
		log.Printf("[voice-ws] TTS error: %v", err)
		h.send(conn, outboundMessage{Type: "error", SessionID: sessionID, Error: "speech synthesis failed"})
		return
	}

	h.send(conn, outboundMessage{Type: "audio_reply", SessionID: sessionID, Format: resp.Format})
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, resp.AudioData); err != nil {
		log.Printf("[voice-ws] failed to write audio frame: %v", err)
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msg outboundMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[voice-ws] failed to write message: %v", err)
	}
}
