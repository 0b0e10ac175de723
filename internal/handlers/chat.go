// internal/handlers/chat.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autorunai/moto-backend/internal/i18n"
	"github.com/autorunai/moto-backend/internal/nocodb"
	"github.com/autorunai/moto-backend/internal/services"
	"github.com/autorunai/moto-backend/internal/utils"
)

type ChatHandler struct {
	chat *services.ChatwootService
}

func NewChatHandler(chat *services.ChatwootService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// SendInterest handles POST /v1/chat/interes — the "Me interesa" button.
func (h *ChatHandler) SendInterest(c *gin.Context) {
	var req services.InterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	lang := utils.GetLangFromContext(c)

	if err := h.chat.SendInterest(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrChatwootNotConfigured):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "CHAT_NOT_CONFIGURED",
				i18n.T(lang, i18n.KeyChatNotConfigured), nil)
		case errors.Is(err, nocodb.ErrRecordNotFound):
			utils.NotFoundResponse(c, "moto")
		default:
			utils.UpstreamErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyChatSent)})
}
