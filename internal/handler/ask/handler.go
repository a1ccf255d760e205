package ask

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/asantekofi/ricedoctor/internal/model/chat"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
	"github.com/asantekofi/ricedoctor/pkg/utils"
)

// Handler answers questions for a session: it appends the user message, runs
// the QA pipeline and appends the bot reply. One question is processed to
// completion per request.
type Handler struct {
	qaSvc   *qa.Service
	chatSvc *chatservice.Service
}

// New creates the ask handler.
func New(qaSvc *qa.Service, chatSvc *chatservice.Service) *Handler {
	return &Handler{qaSvc: qaSvc, chatSvc: chatSvc}
}

// RegisterRoutes mounts the question endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask/{sessionID}", h.handleAsk)
	r.Get("/stream/{sessionID}", h.handleAskStream)
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	result, err := h.qaSvc.Ask(r.Context(), payload.Question)
	if errors.Is(err, qa.ErrEmptyQuestion) {
		// Nothing is appended to history for an empty question.
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	h.saveTurn(r, sessionID, payload.Question, result)
	utils.RespondJSON(w, http.StatusOK, result)
}

// streamEvent is one SSE frame of a streamed answer.
type streamEvent struct {
	Event     string `json:"event"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Disease   string `json:"disease,omitempty"`
	Matched   bool   `json:"matched,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleAskStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	question := r.URL.Query().Get("question")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	if question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question query parameter is required")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, streamEvent{Event: "start", SessionID: sessionID})

	result, stream, err := h.qaSvc.AskStream(r.Context(), question)
	if err != nil {
		utils.SendSSEChunk(w, flusher, streamEvent{Event: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	if stream == nil {
		// Final answer already decided: no match, no provider, or fallback.
		utils.SendSSEChunk(w, flusher, streamEvent{
			Event:     "message",
			SessionID: sessionID,
			Content:   result.Answer,
			Disease:   result.Disease,
			Matched:   result.Matched,
		})
	} else {
		content, streamErr := h.relayStream(w, flusher, sessionID, stream)
		if streamErr != nil {
			log.Printf("[ask] stream relay failed: %v", streamErr)
			utils.SendSSEChunk(w, flusher, streamEvent{Event: "error", SessionID: sessionID, Error: "answer stream failed"})
			return
		}
		result.Answer = content
	}

	h.saveTurn(r, sessionID, question, result)

	utils.SendSSEChunk(w, flusher, streamEvent{
		Event:     "end",
		SessionID: sessionID,
		Disease:   result.Disease,
		Matched:   result.Matched,
		Finished:  true,
	})
}

func (h *Handler) relayStream(w http.ResponseWriter, flusher http.Flusher, sessionID string, stream *schema.StreamReader[*schema.Message]) (string, error) {
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			utils.SendSSEChunk(w, flusher, streamEvent{
				Event:     "delta",
				SessionID: sessionID,
				Content:   chunk.Content,
			})
		}
	}

	full, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return full.Content, nil
}

func (h *Handler) saveTurn(r *http.Request, sessionID, question string, result qa.Result) {
	ctx := r.Context()

	if err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   question,
	}); err != nil {
		log.Printf("[ask] failed to save user message: %v", err)
	}

	if err := h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleBot,
		Content:   result.Answer,
		Disease:   result.Disease,
	}); err != nil {
		log.Printf("[ask] failed to save bot message: %v", err)
	}
}
