package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/asantekofi/ricedoctor/internal/config"
	"github.com/asantekofi/ricedoctor/internal/handler"
	speechhandler "github.com/asantekofi/ricedoctor/internal/handler/speech"
	"github.com/asantekofi/ricedoctor/internal/model/disease"
	speechmodel "github.com/asantekofi/ricedoctor/internal/model/speech"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
	speechservice "github.com/asantekofi/ricedoctor/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	diseaseStore := disease.NewMemoryStore(disease.Seed())
	chatService := chatservice.NewService()

	// The QA model is optional: without credentials the assistant still
	// answers from the raw knowledge-base passages.
	var provider qa.Provider
	if cfg.QA.Enabled() {
		arkProvider, err := qa.NewArkProvider(ctx, cfg.QA)
		if err != nil {
			log.Printf("warning: failed to initialize QA model: %v", err)
			log.Println("continuing without extractive answers - replies will quote the knowledge base")
		} else {
			provider = arkProvider
			log.Println("QA model initialized successfully")
		}
	} else {
		log.Println("QA model credentials not configured, replies will quote the knowledge base")
	}
	qaService := qa.NewService(diseaseStore, provider)

	var speechService speechhandler.SpeechService
	if cfg.Speech.Enabled() {
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
			log.Printf("warning: failed to initialize speech services: %v", err)
		} else {
			speechService = svc
			log.Printf("speech services initialized (stt=%v tts=%v)", svc.STTEnabled(), svc.TTSEnabled())
		}
	} else {
		log.Println("speech services not configured, voice input and output disabled")
	}

	router := handler.NewRouter(diseaseStore, chatService, qaService, speechService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("rice doctor backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
