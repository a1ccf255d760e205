package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
)

// specialTokenRE strips decoder artifacts like [_BEG_] from transcripts.
var specialTokenRE = regexp.MustCompile(`\[.*?\]`)

// WhisperClient talks to a whisper.cpp-compatible transcription server.
type WhisperClient struct {
	serverURL  string
	httpClient *http.Client
}

// NewWhisperClient builds a client for the configured transcription endpoint.
func NewWhisperClient(cfg *speechmodel.Config) *WhisperClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WhisperClient{
		serverURL:  cfg.WhisperURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TranscribeFile posts the audio file at path to the transcription server and
// returns the plain-text transcript.
func (c *WhisperClient) TranscribeFile(ctx context.Context, path, language string) (string, error) {
	audio, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer audio.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to copy audio into form: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	transcript := strings.TrimRight(string(raw), "\n")
	transcript = specialTokenRE.ReplaceAllString(transcript, "")
	return strings.TrimSpace(transcript), nil
}
