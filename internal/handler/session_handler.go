package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
	appErrors "github.com/learningflow/api/pkg/errors"
	"github.com/learningflow/api/pkg/response"
)

// SessionHandler manages wrong notes, saved study data and the file list.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// SaveWrongNote godoc
// @Summary Record a wrong answer
// @Description Save one wrong answer as a wrong note attached to an upload session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveWrongNoteRequest true "Wrong note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /wrongnotes [post]
func (h *SessionHandler) SaveWrongNote(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveWrongNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid wrong note payload"))
		return
	}

	note, err := h.service.SaveWrongNote(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, note)
}

// ListWrongNotes godoc
// @Summary List wrong notes
// @Description Return the authenticated user's wrong notes, newest first
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /wrongnotes [get]
func (h *SessionHandler) ListWrongNotes(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	notes, err := h.service.ListWrongNotes(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, notes, nil)
}

// SaveStudy godoc
// @Summary Save a study outcome
// @Description Persist the summary, quiz and wrong-note blobs for a session; a repeated save overwrites the previous blobs
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveStudyRequest true "Study payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /study/save [post]
func (h *SessionHandler) SaveStudy(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid study payload"))
		return
	}

	if err := h.service.SaveStudy(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"saved": true}, nil)
}

// ListFiles godoc
// @Summary List uploaded files
// @Description Return the authenticated user's upload sessions, newest first
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /mypage/files [get]
func (h *SessionHandler) ListFiles(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	files, err := h.service.ListFiles(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, files, nil)
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Description Remove an upload session and its stored document
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mypage/files/{id} [delete]
func (h *SessionHandler) DeleteFile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteFile(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
