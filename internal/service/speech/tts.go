package speech

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	google_translate_tts "github.com/GrailFinder/google-translate-tts"
	"github.com/GrailFinder/google-translate-tts/handlers"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var htmlTagRE = regexp.MustCompile(`<[^>]*>`)

// TTSClient synthesizes MP3 audio through the Google Translate voice
// endpoint. Long answers are split into sentences first because the endpoint
// rejects long inputs; the per-sentence MP3 chunks concatenate cleanly.
type TTSClient struct {
	language  string
	speed     float32
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewTTSClient builds a synthesis client for the given language.
func NewTTSClient(language string, speed float32) (*TTSClient, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}
	if speed <= 0 {
		speed = 1.0
	}
	return &TTSClient{language: language, speed: speed, tokenizer: tokenizer}, nil
}

// Synthesize converts text to MP3 bytes. Every call works in a fresh
// temporary directory that is removed before returning, so no synthesized
// audio survives the request.
func (c *TTSClient) Synthesize(text string) ([]byte, error) {
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("nothing to synthesize after cleaning text")
	}

	workDir, err := os.MkdirTemp("", "ricedoctor-tts-")
	if err != nil {
		return nil, fmt.Errorf("failed to create tts work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	speech := &google_translate_tts.Speech{
		Folder:   workDir,
		Language: c.language,
		Speed:    c.speed,
		Handler:  &handlers.Beep{},
	}

	var audio bytes.Buffer
	for _, sentence := range c.tokenizer.Tokenize(cleaned) {
		chunk := strings.TrimSpace(sentence.Text)
		if chunk == "" {
			continue
		}
		reader, err := speech.GenerateSpeech(chunk)
		if err != nil {
			return nil, fmt.Errorf("generate speech failed: %w", err)
		}
		if _, err := io.Copy(&audio, reader); err != nil {
			return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
		}
	}

	if audio.Len() == 0 {
		return nil, fmt.Errorf("synthesis produced no audio")
	}
	return audio.Bytes(), nil
}

// mp3Duration decodes the MP3 to report playback length. A decode failure is
// not fatal; callers fall back to zero duration.
func mp3Duration(data []byte) time.Duration {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		log.Printf("[speech] failed to decode mp3 for duration: %v", err)
		return 0
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len())
}

// cleanText removes markup that reads badly when spoken aloud.
func cleanText(text string) string {
	for _, marker := range []string{"*", "#", "_", "~", "`", "[", "]"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = htmlTagRE.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
