package chat

import "time"

// Session captures one browser session of the assistant. VoiceReply records
// the user's response-mode choice (text only vs text plus voice).
type Session struct {
	ID         string    `json:"id"`
	VoiceReply bool      `json:"voiceReply"`
	CreatedAt  time.Time `json:"createdAt"`
}
