package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
	appErrors "github.com/learningflow/api/pkg/errors"
	"github.com/learningflow/api/pkg/response"
)

// ContentHandler serves quiz generation, document chat and explanations.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler creates a new handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{service: svc}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Create quiz questions from already-extracted document text
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.GenerateQuizRequest true "Quiz request"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} response.Envelope
// @Router /generate-quiz [post]
func (h *ContentHandler) GenerateQuiz(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quiz payload"))
		return
	}

	quiz, err := h.service.GenerateQuiz(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateQuizResponse{QuizData: *quiz})
}

// Chat godoc
// @Summary Ask about the document
// @Description Answer a free-form question grounded on the uploaded document text
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} response.Envelope
// @Router /chat [post]
func (h *ContentHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}

	answer, err := h.service.Chat(c.Request.Context(), req.Question, req.PDFText)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Answer: answer})
}

// Explain godoc
// @Summary Explain a passage
// @Description Produce a beginner-level explanation of a text fragment. Model failures degrade to a canned explanation rather than an error.
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.ExplainRequest true "Explain request"
// @Success 200 {object} dto.ExplainResponse
// @Failure 400 {object} response.Envelope
// @Router /explain [post]
func (h *ContentHandler) Explain(c *gin.Context) {
	var req dto.ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid explain payload"))
		return
	}

	explanation := h.service.Explain(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, dto.ExplainResponse{Success: true, Explanation: explanation})
}
