package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ai-24/word-warmup/internal/http/response"
	"github.com/ai-24/word-warmup/internal/quiz"
	"github.com/ai-24/word-warmup/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Start(c *gin.Context) {
	state, err := qh.quizService.Start(c.Request.Context(), currentUserID(c), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondQuizState(c, state)
}

func (qh *QuizHandler) Answer(c *gin.Context) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, record, err := qh.quizService.Answer(c.Request.Context(), currentSessionID(c), req.Answer)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	payload := gin.H{
		"answered":      len(state.Answers),
		"total":         len(state.Questions),
		"all_answered":  state.AllAnswered(),
		"last_question": state.LastQuestion(),
	}
	if record != nil {
		payload["result"] = record.Result
		// Wrong or omitted answers are shown what would have counted.
		if record.Result != quiz.ResultCorrect && state.Index > 0 {
			payload["correct_answers"] = state.Questions[state.Index-1].Answers
		}
	}
	if next := state.Current(); next != nil {
		payload["question"] = gin.H{"prompt": next.Prompt}
	}
	response.RespondOK(c, payload)
}

func (qh *QuizHandler) Result(c *gin.Context) {
	lists, err := qh.quizService.Result(c.Request.Context(), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, lists)
}

func (qh *QuizHandler) Save(c *gin.Context) {
	var req services.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	outcome, err := qh.quizService.Save(c.Request.Context(), currentUserID(c), currentSessionID(c), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, outcome)
}

func (qh *QuizHandler) Retry(c *gin.Context) {
	state, err := qh.quizService.Retry(c.Request.Context(), currentUserID(c), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondQuizState(c, state)
}

func respondQuizState(c *gin.Context, state quiz.State) {
	payload := gin.H{"total": len(state.Questions)}
	if q := state.Current(); q != nil {
		payload["question"] = gin.H{"prompt": q.Prompt}
	}
	response.RespondOK(c, payload)
}
