package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/chat-session", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/site", h.LoadSite)
		r.Post("/{id}/document", h.UploadDocument)
		r.Post("/{id}/message", h.SendMessage)
		r.Post("/{id}/reset", h.ResetSession)
		r.Delete("/{id}", h.DeleteSession)
	})
}
