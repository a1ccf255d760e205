package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/asantekofi/ricedoctor/internal/handler/ask"
	chathandler "github.com/asantekofi/ricedoctor/internal/handler/chat"
	diseasehandler "github.com/asantekofi/ricedoctor/internal/handler/disease"
	speechhandler "github.com/asantekofi/ricedoctor/internal/handler/speech"
	"github.com/asantekofi/ricedoctor/internal/handler/web"
	middlewarePkg "github.com/asantekofi/ricedoctor/internal/middleware"
	diseasemodel "github.com/asantekofi/ricedoctor/internal/model/disease"
	chatservice "github.com/asantekofi/ricedoctor/internal/service/chat"
	"github.com/asantekofi/ricedoctor/internal/service/qa"
	"github.com/asantekofi/ricedoctor/pkg/utils"
)

// NewRouter wires HTTP routes to core services. speechSvc may be nil when no
// speech capability is configured; the speech routes then answer 501.
func NewRouter(diseases diseasemodel.Store, chatSvc *chatservice.Service, qaSvc *qa.Service, speechSvc speechhandler.SpeechService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(chatSvc)
	askHandler := ask.New(qaSvc, chatSvc)
	diseaseHandler := diseasehandler.New(diseases)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		askHandler.RegisterRoutes(api)
		diseaseHandler.RegisterRoutes(api)

		if speechSvc != nil {
			speechHandler := speechhandler.New(speechSvc)
			speechHandler.RegisterRoutes(api)

			wsHandler := speechhandler.NewWebSocketHandler(speechSvc, qaSvc, chatSvc)
			wsHandler.RegisterWebSocketRoutes(api)
		} else {
			api.HandleFunc("/speech/*", func(w http.ResponseWriter, _ *http.Request) {
				utils.RespondError(w, http.StatusNotImplemented, "speech services not available")
			})
		}
	})

	web.RegisterRoutes(r)

	return r
}
