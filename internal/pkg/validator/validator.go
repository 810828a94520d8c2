package validator

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

var allowedExtensions = map[string]bool{
	".pdf": true,
}

// Validator validates incoming chat requests and document uploads.
type Validator struct {
	cfg config.FileUploadConfig
}

func New(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateLoadSite checks that the submitted URL is an absolute http(s) URL.
func (v *Validator) ValidateLoadSite(req *entity.LoadSiteRequest) error {
	if req.URL == "" {
		return fmt.Errorf("%w: url", entity.ErrMissingField)
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("%w: url: %v", entity.ErrInvalidParameter, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: url must be absolute http or https", entity.ErrInvalidParameter)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: url has no host", entity.ErrInvalidParameter)
	}

	return nil
}

// ValidateSendMessage checks that the message body is non-empty.
func (v *Validator) ValidateSendMessage(req *entity.SendMessageRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}

	return nil
}

// ValidateDocumentUpload validates an uploaded document file header.
func (v *Validator) ValidateDocumentUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fmt.Errorf("%w: document", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file %q is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// SanitizeFilename strips any path components from an uploaded filename.
func SanitizeFilename(filename string) string {
	return filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
}
