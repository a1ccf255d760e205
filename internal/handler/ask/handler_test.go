package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/asantekofi/ricedoctor/internal/model/disease"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
)

type spanProvider struct {
	answer string
}

func (p *spanProvider) Answer(_ context.Context, _, _ string) (string, error) {
	return p.answer, nil
}

func (p *spanProvider) Stream(_ context.Context, _, _ string) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](1)
	go func() {
		sw.Send(schema.AssistantMessage(p.answer, nil), nil)
		sw.Close()
	}()
	return sr, nil
}

func setup(answer string) (*chi.Mux, *chatservice.Service) {
	store := disease.NewMemoryStore(disease.Seed())
	qaSvc := qa.NewService(store, &spanProvider{answer: answer})
	chatSvc := chatservice.NewService()

	r := chi.NewRouter()
	New(qaSvc, chatSvc).RegisterRoutes(r)
	return r, chatSvc
}

func postAsk(t *testing.T, r http.Handler, sessionID, question string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"question": question})
	req := httptest.NewRequest(http.MethodPost, "/ask/"+sessionID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAskMatchedQuestionAppendsTurn(t *testing.T) {
	r, chatSvc := setup("the fungus Magnaporthe oryzae")
	ctx := context.Background()
	session, _ := chatSvc.CreateSession(ctx, false)

	resp := postAsk(t, r, session.ID, "What causes rice blast?")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result qa.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Matched || result.Disease != "Rice Blast" {
		t.Fatalf("unexpected result: %+v", result)
	}

	messages, _ := chatSvc.LoadTranscript(ctx, session.ID)
	// greeting + user + bot
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[2].Content != "the fungus Magnaporthe oryzae" {
		t.Fatalf("unexpected bot message: %q", messages[2].Content)
	}
}

func TestAskNoMatchReturnsFixedReply(t *testing.T) {
	r, chatSvc := setup("unused")
	session, _ := chatSvc.CreateSession(context.Background(), false)

	resp := postAsk(t, r, session.ID, "tell me about aliens")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result qa.Result
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Matched {
		t.Fatal("expected unmatched result")
	}
	if result.Answer != qa.NotFoundReply {
		t.Fatalf("expected fixed not-found reply, got %q", result.Answer)
	}
}

func TestAskEmptyQuestionLeavesHistoryUntouched(t *testing.T) {
	r, chatSvc := setup("unused")
	ctx := context.Background()
	session, _ := chatSvc.CreateSession(ctx, false)

	resp := postAsk(t, r, session.ID, "   ")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	messages, _ := chatSvc.LoadTranscript(ctx, session.ID)
	if len(messages) != 1 {
		t.Fatalf("history should be unchanged, got %d messages", len(messages))
	}
}

func TestAskUnknownSession(t *testing.T) {
	r, _ := setup("unused")

	resp := postAsk(t, r, "missing", "what is rice blast?")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAskStreamDeliversAnswer(t *testing.T) {
	r, chatSvc := setup("a viral disease spread by the brown planthopper")
	ctx := context.Background()
	session, _ := chatSvc.CreateSession(ctx, false)

	req := httptest.NewRequest(http.MethodGet, "/stream/"+session.ID+"?question=what+is+grassy+stunt", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected SSE content type, got %q", ct)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("planthopper")) {
		t.Fatalf("expected streamed answer content, got %s", resp.Body.String())
	}

	messages, _ := chatSvc.LoadTranscript(ctx, session.ID)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages after stream, got %d", len(messages))
	}
}
