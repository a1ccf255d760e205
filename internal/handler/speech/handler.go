package speech

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
	speechsvc "github.com/asantekofi/ricedoctor/internal/service/speech"
)

// SpeechService abstracts the speech business logic for tests.
type SpeechService interface {
	TranscribeAudio(ctx context.Context, req *speechmodel.ASRRequest) (*speechmodel.ASRResponse, error)
	SynthesizeToBuffer(ctx context.Context, sessionID, text string) (*speechmodel.TTSResponse, error)
	STTEnabled() bool
	TTSEnabled() bool
}

// Handler exposes transcription and synthesis over HTTP.
type Handler struct {
	speechSvc SpeechService
}

// New creates the speech handler.
func New(speechSvc SpeechService) *Handler {
	return &Handler{speechSvc: speechSvc}
}

// RegisterRoutes mounts the speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/speech", func(speechRouter chi.Router) {
		speechRouter.Post("/transcribe/{sessionID}", h.handleTranscribe)
		speechRouter.Post("/synthesize/{sessionID}", h.handleSynthesize)
		speechRouter.Get("/health", h.handleHealth)
	})
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !h.speechSvc.STTEnabled() {
		h.respondError(w, http.StatusServiceUnavailable, "speech recognition is not configured")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	language := r.FormValue("language")

	asrReq := &speechmodel.ASRRequest{
		SessionID: sessionID,
		AudioData: file,
		Format:    inferAudioFormat(header.Filename),
		Language:  language,
	}

	resp, err := h.speechSvc.TranscribeAudio(r.Context(), asrReq)
	if errors.Is(err, speechsvc.ErrEmptyTranscript) {
		// Silent or too-short audio counts as no question; the client
		// prompts the user to retype instead of appending to history.
		h.respondError(w, http.StatusUnprocessableEntity, "could not hear a question, please try again or type it")
		return
	}
	if err != nil {
		log.Printf("[speech] ASR error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "speech recognition failed")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !h.speechSvc.TTSEnabled() {
		h.respondError(w, http.StatusServiceUnavailable, "speech synthesis is not configured")
		return
	}

	var req speechmodel.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		h.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	resp, err := h.speechSvc.SynthesizeToBuffer(r.Context(), sessionID, req.Text)
	if err != nil {
		log.Printf("[speech] TTS error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.AudioData)))
	w.Header().Set("X-Audio-Duration-Ms", strconv.FormatInt(resp.Duration, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.AudioData); err != nil {
		log.Printf("failed to write audio response: %v", err)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"stt":    h.speechSvc.STTEnabled(),
		"tts":    h.speechSvc.TTSEnabled(),
	})
}

func inferAudioFormat(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp3":
		return "mp3"
	case ".wav":
		return "wav"
	case ".webm":
		return "webm"
	case ".m4a":
		return "m4a"
	case ".ogg":
		return "ogg"
	default:
		return "wav"
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
