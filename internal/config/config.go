package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates all service configuration.
type Config struct {
	Server ServerConfig
	QA     QAConfig
	Speech SpeechConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	qa, err := loadQAConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, QA: qa, Speech: speech}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// QAConfig describes the hosted model that answers questions.
type QAConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Stream      bool
}

// Enabled reports whether the required credentials are present.
func (c QAConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel constructs the underlying model client from the configuration.
func (c QAConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("QA model credentials missing: provide ARK_API_KEY + QA_MODEL or AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadQAConfig() (QAConfig, error) {
	temperature, err := parseOptionalFloatEnv("QA_TEMPERATURE")
	if err != nil {
		return QAConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("QA_TOP_P")
	if err != nil {
		return QAConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("QA_MAX_TOKENS")
	if err != nil {
		return QAConfig{}, err
	}

	stream, err := parseBoolEnv("QA_STREAM", true)
	if err != nil {
		return QAConfig{}, err
	}

	return QAConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("QA_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Stream:      stream,
	}, nil
}

// SpeechConfig describes the speech-to-text and text-to-speech collaborators.
type SpeechConfig struct {
	WhisperURL    string
	ASRLanguage   string
	TTSLanguage   string
	TTSSpeed      float32
	MinTranscript int
	Timeout       int
	TTSEnabled    bool
}

// STTEnabled reports whether a transcription endpoint was configured.
func (c SpeechConfig) STTEnabled() bool {
	return c.WhisperURL != ""
}

// Enabled reports whether any speech capability is available.
func (c SpeechConfig) Enabled() bool {
	return c.STTEnabled() || c.TTSEnabled
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	speed, err := parseOptionalFloat32Env("SPEECH_TTS_SPEED")
	if err != nil {
		return SpeechConfig{}, err
	}
	ttsSpeed := float32(1.0)
	if speed != nil {
		ttsSpeed = *speed
	}

	minTranscript := 2
	if override, err := parseOptionalIntEnv("SPEECH_MIN_TRANSCRIPT"); err != nil {
		return SpeechConfig{}, err
	} else if override != nil && *override > 0 {
		minTranscript = *override
	}

	// The translate voice endpoint needs no credentials, so TTS defaults on.
	ttsEnabled, err := parseBoolEnv("SPEECH_TTS_ENABLED", true)
	if err != nil {
		return SpeechConfig{}, err
	}

	return SpeechConfig{
		WhisperURL:    strings.TrimSpace(os.Getenv("WHISPER_URL")),
		ASRLanguage:   getEnvOrDefault("SPEECH_ASR_LANGUAGE", "en"),
		TTSLanguage:   getEnvOrDefault("SPEECH_TTS_LANGUAGE", "en"),
		TTSSpeed:      ttsSpeed,
		MinTranscript: minTranscript,
		Timeout:       timeoutSeconds,
		TTSEnabled:    ttsEnabled,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
