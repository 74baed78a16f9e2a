package handler

import (
	"context"
	"net/http"

	"gympoint/internal/model"
	"gympoint/internal/response"
	"gympoint/internal/validation"

	"github.com/sirupsen/logrus"
)

type SessionService interface {
	SignIn(ctx context.Context, in validation.Session) (*model.User, string, error)
}

type SessionHandler struct {
	sessionService SessionService
	log            logrus.FieldLogger
}

func NewSessionHandler(sessionService SessionService, log logrus.FieldLogger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, log: log}
}

type sessionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	User  sessionUser `json:"user"`
	Token string      `json:"token"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.Session
	if !decode(w, r, &in) {
		return
	}

	user, token, err := h.sessionService.SignIn(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sessionResponse{
		User:  sessionUser{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
