package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
)

func TestFeedbackHandlerCorrectAnswer(t *testing.T) {
	handler := NewGradingHandler(service.NewGradingService(nil, zap.NewNop()))

	c, w := newJSONContext(t, http.MethodPost, "/feedback", `{"question":"capital of France?","user_answer":"Paris","correct_answer":"Paris"}`)
	handler.Feedback(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.FeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsCorrect)
}

func TestFeedbackHandlerWrongAnswer(t *testing.T) {
	handler := NewGradingHandler(service.NewGradingService(nil, zap.NewNop()))

	c, w := newJSONContext(t, http.MethodPost, "/feedback", `{"question":"capital of France?","user_answer":"London","correct_answer":"Paris"}`)
	handler.Feedback(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.FeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsCorrect)
	assert.Contains(t, resp.Feedback, "Paris")
}

func TestFeedbackHandlerMissingFields(t *testing.T) {
	handler := NewGradingHandler(service.NewGradingService(nil, zap.NewNop()))

	c, w := newJSONContext(t, http.MethodPost, "/feedback", `{"user_answer":"Paris"}`)
	handler.Feedback(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
