package speech

import "io"

// ASRRequest is one transcription request.
type ASRRequest struct {
	SessionID string    `json:"sessionId"`
	AudioData io.Reader `json:"-"`
	Format    string    `json:"format"`   // mp3, wav, webm, ...
	Language  string    `json:"language"` // en, fr, ...
}

// TTSRequest is one synthesis request.
type TTSRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
	Language  string `json:"language"`
}
