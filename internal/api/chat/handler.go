package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
	"github.com/myebookchess-cloud/jyro-demo/internal/pkg/logger"
	"github.com/myebookchess-cloud/jyro-demo/internal/pkg/response"
	"github.com/myebookchess-cloud/jyro-demo/internal/pkg/validator"
)

// User-facing messages name the stage that failed, because remediation
// differs: a failed fetch wants a different URL, unreadable content wants a
// re-exported document.
const (
	msgSiteFetchFailed    = "Error while fetching the website"
	msgDocumentReadFailed = "Error while reading the document"
	msgNoReadableSiteText = "The page contains no readable text, so a conversation cannot be started. Try a different page of the site."
	msgNoReadableDocText  = "No readable text could be extracted from this document. If it is a scanned PDF, re-export it with selectable text and upload it again."
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
	uploadCfg config.FileUploadConfig
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator, uploadCfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		uploadCfg: uploadCfg,
	}
}

// CreateSession handles POST /api/chat-session - start a new browsing session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	sess := h.usecase.StartSession(ctx)

	ctxzap.Info(ctx, "chat session started", zap.String("session_id", sess.ID))

	response.Created(w, toSessionDTO(sess))
}

// GetSession handles GET /api/chat-session/{id} - session state + transcript
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GetSession")

	sess, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(sess))
}

// LoadSite handles POST /api/chat-session/{id}/site - load a website as the
// session's knowledge source
func (h *Handler) LoadSite(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "LoadSite")

	var req entity.LoadSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateLoadSite(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("url", req.URL))

	sess, err := h.usecase.LoadSite(ctx, sessionID, req.URL)
	if err != nil {
		h.handleLoadError(ctx, w, err, msgSiteFetchFailed, msgNoReadableSiteText)
		return
	}

	ctxzap.Info(ctx, "site loaded for session")

	response.Success(w, toSourceLoadedDTO(sess))
}

// UploadDocument handles POST /api/chat-session/{id}/document - upload a PDF
// as the session's knowledge source
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "UploadDocument")

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid multipart body", err)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "document file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateDocumentUpload(header); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "could not read uploaded document", err)
		return
	}

	filename := validator.SanitizeFilename(header.Filename)
	ctx = logger.AddFields(ctx, zap.String("filename", filename))

	sess, err := h.usecase.LoadDocument(ctx, sessionID, filename, content)
	if err != nil {
		h.handleLoadError(ctx, w, err, msgDocumentReadFailed, msgNoReadableDocText)
		return
	}

	ctxzap.Info(ctx, "document loaded for session")

	response.Success(w, toSourceLoadedDTO(sess))
}

// SendMessage handles POST /api/chat-session/{id}/message - ask a question
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "SendMessage")

	var req entity.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSendMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	sess, err := h.usecase.SendMessage(ctx, sessionID, req.Message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "message exchanged", zap.Int("transcript_turns", len(sess.Turns)))

	response.Success(w, toExchangeDTO(sess))
}

// ResetSession handles POST /api/chat-session/{id}/reset - clear transcript
// and loaded source
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ResetSession")

	sess, err := h.usecase.ResetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session reset")

	response.Success(w, toSessionDTO(sess))
}

// DeleteSession handles DELETE /api/chat-session/{id} - end the session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "DeleteSession")

	if err := h.usecase.EndSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session ended")

	response.NoContent(w)
}

// Helper methods

func (h *Handler) sessionContext(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)
	return ctx, sessionID
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

// handleLoadError maps source-loading failures. A retrieval failure and an
// empty-content condition are distinct stages with distinct remediation, so
// they must never collapse into one message.
func (h *Handler) handleLoadError(ctx context.Context, w http.ResponseWriter, err error, fetchMsg, noContentMsg string) {
	var fetchErr *entity.FetchError
	switch {
	case errors.As(err, &fetchErr):
		h.respondError(ctx, w, http.StatusBadGateway,
			fmt.Sprintf("%s: %v", fetchMsg, fetchErr.Err), err)
	case errors.Is(err, entity.ErrNoContent):
		h.respondError(ctx, w, http.StatusUnprocessableEntity, noContentMsg, err)
	default:
		h.handleUsecaseError(ctx, w, err)
	}
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "chat session not found", err)
	case errors.Is(err, entity.ErrNoSourceLoaded):
		h.respondError(ctx, w, http.StatusConflict, "load a website or document before asking questions", err)
	case errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrInvalidFile):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
