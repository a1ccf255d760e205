// voicetester exercises the speech clients directly, without the HTTP layer.
//
//	voicetester -mode=asr -audio=question.wav
//	voicetester -mode=tts -text="Rice blast is caused by a fungus." -out=reply.mp3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/asantekofi/ricedoctor/internal/config"
	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
	speechservice "github.com/asantekofi/ricedoctor/internal/service/speech"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "", "test mode: asr or tts")
	audioPath := flag.String("audio", "", "ASR input audio file")
	text := flag.String("text", "", "TTS input text")
	outputPath := flag.String("out", "reply.mp3", "TTS output file")
	language := flag.String("lang", "", "language code, defaults to configuration")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if *mode != "asr" && *mode != "tts" {
		flag.Usage()
		log.Fatal("specify -mode=asr or -mode=tts")
	}

	svc, err := speechservice.NewService(&speechmodel.Config{
		WhisperURL:    cfg.Speech.WhisperURL,
		ASRLanguage:   cfg.Speech.ASRLanguage,
		TTSLanguage:   cfg.Speech.TTSLanguage,
		TTSSpeed:      cfg.Speech.TTSSpeed,
		MinTranscript: cfg.Speech.MinTranscript,
		Timeout:       cfg.Speech.Timeout,
		TTSEnabled:    cfg.Speech.TTSEnabled,
	})
	if err != nil {
		log.Fatalf("failed to init speech services: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sessionID := fmt.Sprintf("manual-%d", time.Now().UnixNano())

	switch *mode {
	case "asr":
		runASR(ctx, svc, sessionID, *audioPath, *language)
	case "tts":
		runTTS(ctx, svc, sessionID, *text, *outputPath)
	}
}

func runASR(ctx context.Context, svc *speechservice.Service, sessionID, audioPath, language string) {
	if audioPath == "" {
		log.Fatal("-audio is required in asr mode")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		log.Fatalf("failed to read audio file: %v", err)
	}

	resp, err := svc.TranscribeBuffer(ctx, sessionID, audio, formatFromPath(audioPath), language)
	if err != nil {
		log.Fatalf("transcription failed: %v", err)
	}

	log.Printf("transcript: %s", resp.Text)
}

func runTTS(ctx context.Context, svc *speechservice.Service, sessionID, text, outputPath string) {
	if text == "" {
		log.Fatal("-text is required in tts mode")
	}

	resp, err := svc.SynthesizeToBuffer(ctx, sessionID, text)
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}

	if err := os.WriteFile(outputPath, resp.AudioData, 0o644); err != nil {
		log.Fatalf("failed to write output file: %v", err)
	}

	log.Printf("wrote %d bytes (%dms) to %s", len(resp.AudioData), resp.Duration, outputPath)
}

func formatFromPath(path string) string {
	for _, ext := range []string{".mp3", ".wav", ".webm", ".m4a", ".ogg"} {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return ext[1:]
		}
	}
	return "wav"
}
