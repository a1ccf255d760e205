package speech

import "time"

// ASRResponse is the outcome of a transcription request.
type ASRResponse struct {
	SessionID string    `json:"sessionId"`
	Text      string    `json:"text"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TTSResponse is the outcome of a synthesis request.
type TTSResponse struct {
	SessionID string    `json:"sessionId"`
	AudioData []byte    `json:"-"`
	Duration  int64     `json:"duration"` // milliseconds, 0 when unknown
	Format    string    `json:"format"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
