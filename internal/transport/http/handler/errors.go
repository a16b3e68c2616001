package handler

import (
	"errors"
	"net/http"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/gin-gonic/gin"
)

// Stable API error codes. Keep these strings fixed; clients branch on them.
const (
	errMissingFields   = "missing_fields"
	errMissingEmail    = "missing_email"
	errMissingQuestion = "missing_question"
	errMissingPDFID    = "missing_pdfId"
	errNoFile          = "no_file"
	errEmailExists     = "email_exists"
	errPhoneExists     = "phone_exists"
	errNotRegistered   = "not_registered"
	errNoOTP           = "no_otp"
	errOTPExpired      = "expired"
	errOTPWrong        = "wrong"
	errUnsupportedType = "unsupported_type"
	errTooLarge        = "too_large"
	errPDFNotFound     = "pdf_not_found"
	errLLM             = "llm_error"
	errServer          = "server_error"
)

// fail writes the API's uniform error shape.
func fail(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"ok": false, "error": code})
}

// domainStatus maps a domain error to its HTTP status and API code. The
// boolean is false for unexpected errors, which callers log and surface as
// a generic server_error.
func domainStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, errEmailExists, true
	case errors.Is(err, domain.ErrPhoneExists):
		return http.StatusBadRequest, errPhoneExists, true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, errNotRegistered, true
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusBadRequest, errNoOTP, true
	case errors.Is(err, domain.ErrChallengeExpired):
		return http.StatusBadRequest, errOTPExpired, true
	case errors.Is(err, domain.ErrChallengeMismatch):
		return http.StatusBadRequest, errOTPWrong, true
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest, errUnsupportedType, true
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, errTooLarge, true
	case errors.Is(err, domain.ErrMissingQuestion):
		return http.StatusBadRequest, errMissingQuestion, true
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, errPDFNotFound, true
	case errors.Is(err, domain.ErrInferenceFailed):
		return http.StatusInternalServerError, errLLM, true
	default:
		return 0, "", false
	}
}
