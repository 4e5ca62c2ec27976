package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/http/response"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/services"
	"github.com/ai-24/word-warmup/internal/wizard"
)

type WizardHandler struct {
	wizardService services.WizardService
}

func NewWizardHandler(wizardService services.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

func (wh *WizardHandler) Start(c *gin.Context) {
	state, err := wh.wizardService.Start(c.Request.Context(), currentUserID(c), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondWizardState(c, state, nil)
}

func (wh *WizardHandler) StartEdit(c *gin.Context) {
	expressionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", pkgerrors.ErrInvalidArgument)
		return
	}
	state, err := wh.wizardService.StartEdit(c.Request.Context(), currentUserID(c), currentSessionID(c), expressionID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondWizardState(c, state, nil)
}

func (wh *WizardHandler) Step(c *gin.Context) {
	var req struct {
		Step int             `json:"step"`
		Form wizard.StepForm `json:"form"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, fieldErrs, err := wh.wizardService.Submit(c.Request.Context(), currentSessionID(c), req.Step, req.Form)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondWizardState(c, state, fieldErrs)
}

func (wh *WizardHandler) Back(c *gin.Context) {
	state, err := wh.wizardService.Back(c.Request.Context(), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	respondWizardState(c, state, nil)
}

func (wh *WizardHandler) Finalize(c *gin.Context) {
	expr, err := wh.wizardService.Finalize(c.Request.Context(), currentUserID(c), currentSessionID(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"expression_id": expr.ID})
}

func respondWizardState(c *gin.Context, state wizard.State, fieldErrs wizard.FieldErrors) {
	payload := gin.H{
		"state":    state,
		"progress": state.Progress(),
	}
	if len(fieldErrs) > 0 {
		payload["field_errors"] = fieldErrs
	}
	response.RespondOK(c, payload)
}
