package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/http/response"
	"github.com/ai-24/word-warmup/internal/pkg/ctxutil"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/services"
)

type ExpressionHandler struct {
	expressionService services.ExpressionService
}

func NewExpressionHandler(expressionService services.ExpressionService) *ExpressionHandler {
	return &ExpressionHandler{expressionService: expressionService}
}

func (eh *ExpressionHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	kind := services.ListKind(c.Query("list"))

	expressions, err := eh.expressionService.List(c.Request.Context(), userID, kind)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"expressions": expressions})
}

func (eh *ExpressionHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", pkgerrors.ErrInvalidArgument)
		return
	}
	kind := services.ListKind(c.Query("list"))

	detail, err := eh.expressionService.Get(c.Request.Context(), userID, id, kind)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func currentUserID(c *gin.Context) uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}

func currentSessionID(c *gin.Context) uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.SessionID
}
