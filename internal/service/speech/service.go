package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
)

var (
	// ErrEmptyTranscript marks audio that produced no usable question.
	// Callers treat it as "no question submitted" and leave history alone.
	ErrEmptyTranscript = errors.New("transcript is empty or too short")
	ErrSTTUnavailable  = errors.New("speech-to-text is not configured")
	ErrTTSUnavailable  = errors.New("text-to-speech is not configured")
)

// Service bundles the speech collaborators behind one API.
type Service struct {
	config *speechmodel.Config
	stt    *WhisperClient
	tts    *TTSClient
}

// NewService wires the configured speech clients. Either side may be absent;
// the corresponding calls then fail with an unavailable error.
func NewService(config *speechmodel.Config) (*Service, error) {
	svc := &Service{config: config}

	if config.WhisperURL != "" {
		svc.stt = NewWhisperClient(config)
	}

	if config.TTSEnabled {
		tts, err := NewTTSClient(config.TTSLanguage, config.TTSSpeed)
		if err != nil {
			return nil, fmt.Errorf("failed to init tts client: %w", err)
		}
		svc.tts = tts
	}

	return svc, nil
}

// STTEnabled reports whether transcription is available.
func (s *Service) STTEnabled() bool { return s.stt != nil }

// TTSEnabled reports whether synthesis is available.
func (s *Service) TTSEnabled() bool { return s.tts != nil }

// TranscribeAudio reads the request's audio stream and transcribes it.
func (s *Service) TranscribeAudio(ctx context.Context, req *speechmodel.ASRRequest) (*speechmodel.ASRResponse, error) {
	if req == nil || req.AudioData == nil {
		return nil, fmt.Errorf("audio data is required")
	}
	audio, err := io.ReadAll(req.AudioData)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	return s.TranscribeBuffer(ctx, req.SessionID, audio, req.Format, req.Language)
}

// TranscribeBuffer writes the audio to a scoped temporary file, runs the
// transcription client against it, and removes the file on every exit path.
func (s *Service) TranscribeBuffer(ctx context.Context, sessionID string, audio []byte, format, language string) (*speechmodel.ASRResponse, error) {
	if s.stt == nil {
		return nil, ErrSTTUnavailable
	}
	if len(audio) == 0 {
		return nil, ErrEmptyTranscript
	}
	if format == "" {
		format = "wav"
	}
	if language == "" {
		language = s.config.ASRLanguage
	}

	tmp, err := os.CreateTemp("", "ricedoctor-asr-*."+format)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp audio file: %w", err)
	}

	transcript, err := s.stt.TranscribeFile(ctx, tmp.Name(), language)
	if err != nil {
		return nil, err
	}

	transcript = strings.TrimSpace(transcript)
	if len(transcript) < s.minTranscript() {
		return nil, ErrEmptyTranscript
	}

	return &speechmodel.ASRResponse{
		SessionID: sessionID,
		Text:      transcript,
		RequestID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SynthesizeToBuffer converts text to MP3 bytes for playback in the UI.
func (s *Service) SynthesizeToBuffer(_ context.Context, sessionID, text string) (*speechmodel.TTSResponse, error) {
	if s.tts == nil {
		return nil, ErrTTSUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	audio, err := s.tts.Synthesize(text)
	if err != nil {
		return nil, err
	}

	return &speechmodel.TTSResponse{
		SessionID: sessionID,
		AudioData: audio,
		Duration:  mp3Duration(audio).Milliseconds(),
		Format:    "mp3",
		RequestID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) minTranscript() int {
	if s.config.MinTranscript > 0 {
		return s.config.MinTranscript
	}
	return 2
}
