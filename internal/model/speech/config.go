package speech

// Config carries the settings for the speech collaborators.
type Config struct {
	WhisperURL    string
	ASRLanguage   string
	TTSLanguage   string
	TTSSpeed      float32
	MinTranscript int
	Timeout       int
	TTSEnabled    bool
}
