// internal/web/handler.go

// Package web wires the HTTP surface of dogedayd: the signup endpoint,
// health and metrics endpoints, and the static site.
package web

import (
	"errors"
	"net/http"

	"github.com/ownthedoge/dogeday/internal/httputil"
	"github.com/ownthedoge/dogeday/internal/mail"
	"github.com/ownthedoge/dogeday/internal/metrics"
	"github.com/ownthedoge/dogeday/internal/signup"
	"go.uber.org/zap"
)

// SignupHandler handles POST /api/signup: decode, validate, format, dispatch.
type SignupHandler struct {
	dispatcher *mail.Dispatcher
	logger     *zap.Logger
}

// NewSignupHandler builds the signup endpoint handler.
func NewSignupHandler(dispatcher *mail.Dispatcher, logger *zap.Logger) *SignupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignupHandler{dispatcher: dispatcher, logger: logger}
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, att, err := signup.DecodeRequest(r)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	if err := signup.Validate(sub); err != nil {
		h.reject(w, r, err)
		return
	}

	msg := signup.Format(sub)
	metrics.ObserveSubmission(sub.FormType)

	// Dispatch outcomes never change the response: the submitter already did
	// their part, and the notification channel is non-critical. Skips and
	// failures are logged and counted by the dispatcher.
	if _, err := h.dispatcher.Dispatch(r.Context(), sub, msg, att); err != nil {
		h.logger.Warn("signup accepted but notification undelivered",
			zap.String("variant", sub.FormType),
			zap.Error(err),
		)
	}

	httputil.JSONOK(w)
}

// reject writes the rejection for a StatusError; anything else is an
// unexpected internal failure.
func (h *SignupHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	var se signup.StatusError
	if errors.As(err, &se) {
		h.logger.Info("signup rejected",
			zap.Int("status", se.HTTPStatus()),
			zap.String("reason", se.Error()),
			zap.String("remote_ip", r.RemoteAddr),
		)
		httputil.JSONError(w, se.HTTPStatus(), se.Error())
		return
	}

	h.logger.Error("signup handler internal error", zap.Error(err))
	httputil.JSONError(w, http.StatusInternalServerError, "internal server error")
}
