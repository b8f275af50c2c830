package ui

import (
	"net/http"

	"github.com/joeblew999/plat-contact/internal/errorx"
	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/relay"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

// Handlers serves the browser contact page.
type Handlers struct {
	relay *relay.Relay
}

// NewHandlers creates new UI handlers.
func NewHandlers(r *relay.Relay) *Handlers {
	return &Handlers{relay: r}
}

// Routes returns the UI routes for registration with rest.Server.
func (h *Handlers) Routes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/", Handler: h.handleContactPage},
		{Method: http.MethodGet, Path: "/contact", Handler: h.handleContactPage},
		{Method: http.MethodPost, Path: "/ui/contact", Handler: h.handleContact},
	}
}

// contactSignals is the subset of page signals posted by the form.
type contactSignals struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handlers) handleContactPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ContactPage().Render(w); err != nil {
		logx.Errorf("render contact page: %v", err)
	}
}

func (h *Handlers) handleContact(w http.ResponseWriter, r *http.Request) {
	var signals contactSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		logx.WithContext(r.Context()).Errorf("read contact signals: %v", err)
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  errorx.MsgInvalidBody,
		})
		return
	}

	_, err := h.relay.Submit(r.Context(), contact.Submission{
		Name:    signals.Name,
		Email:   signals.Email,
		Subject: signals.Subject,
		Message: signals.Message,
	})
	if err != nil {
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  contact.RejectedNotice(errorx.FromSubmit(err).Msg),
		})
		return
	}

	h.sendDatastarSignals(w, r, map[string]any{
		"name":    "",
		"email":   "",
		"subject": "",
		"message": "",
		"sending": false,
		"result":  contact.NoticeSent,
	})
}

func (h *Handlers) sendDatastarSignals(w http.ResponseWriter, r *http.Request, signals map[string]any) {
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(signals); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}
