// internal/services/chatwoot_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/autorunai/moto-backend/internal/chatwoot"
	"github.com/autorunai/moto-backend/internal/models"
	"github.com/autorunai/moto-backend/internal/utils"
)

// ErrChatwootNotConfigured is returned when the instance has no Chatwoot
// credentials; the front end then falls back to plain WhatsApp links.
var ErrChatwootNotConfigured = errors.New("chatwoot is not configured")

// ChatwootMessenger is what the interest flow needs from the Chatwoot API.
type ChatwootMessenger interface {
	Configured() bool
	SendMessage(ctx context.Context, conversationID int, content string, private bool) error
	AssignConversation(ctx context.Context, conversationID, agentID int) error
	SetCustomAttributes(ctx context.Context, conversationID int, attrs map[string]any) error
}

var _ ChatwootMessenger = (*chatwoot.Client)(nil)

// InterestRequest is the payload behind the "Me interesa" button: which
// moto, which model year, whose widget conversation, and which advisor the
// conversation belongs to.
type InterestRequest struct {
	ConversationID int    `json:"conversation_id" validate:"required,min=1"`
	MotoID         int    `json:"moto_id" validate:"required,min=1"`
	Year           string `json:"year,omitempty"`
	AdvisorID      int    `json:"asesor_id,omitempty"`
}

type ChatwootService struct {
	messenger ChatwootMessenger
	motos     *MotoService
	agentMap  map[int]int
}

func NewChatwootService(messenger ChatwootMessenger, motos *MotoService, agentMap map[int]int) *ChatwootService {
	return &ChatwootService{
		messenger: messenger,
		motos:     motos,
		agentMap:  agentMap,
	}
}

// SendInterest posts the moto summary into the visitor's conversation and
// assigns it to the advisor's agent. The message is the deliverable;
// assignment and attribute tagging are best effort and only logged when
// they fail, so a misconfigured agent mapping never loses a lead.
func (s *ChatwootService) SendInterest(ctx context.Context, req *InterestRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if !s.messenger.Configured() {
		return ErrChatwootNotConfigured
	}

	moto, err := s.motos.GetByID(ctx, req.MotoID)
	if err != nil {
		return fmt.Errorf("interest moto %d: %w", req.MotoID, err)
	}

	year := utils.ParseYear(req.Year)
	prices := utils.ComputePrices(moto, year)
	message := buildInterestMessage(moto, year, prices)

	if err := s.messenger.SendMessage(ctx, req.ConversationID, message, false); err != nil {
		return fmt.Errorf("send interest message: %w", err)
	}

	if req.AdvisorID > 0 {
		if agentID, ok := s.agentMap[req.AdvisorID]; ok {
			if err := s.messenger.AssignConversation(ctx, req.ConversationID, agentID); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"conversation_id": req.ConversationID,
					"advisor_id":      req.AdvisorID,
					"agent_id":        agentID,
				}).Warn("Failed to assign conversation")
			}
		} else {
			logrus.WithField("advisor_id", req.AdvisorID).Warn("No Chatwoot agent mapping for advisor")
		}
	}

	attrs := map[string]any{
		"moto_modelo": moto.Model,
		"moto_marca":  moto.Brand,
		"moto_year":   string(year),
	}
	if req.AdvisorID > 0 {
		attrs["asesor_id"] = req.AdvisorID
	}
	if err := s.messenger.SetCustomAttributes(ctx, req.ConversationID, attrs); err != nil {
		logrus.WithError(err).WithField("conversation_id", req.ConversationID).
			Warn("Failed to set conversation attributes")
	}

	logrus.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"moto_id":         moto.ID,
		"year":            year,
	}).Info("Interest message delivered")
	return nil
}

// buildInterestMessage renders the chat summary the advisor sees. Prices
// that are unavailable for the selected year are simply omitted.
func buildInterestMessage(moto *models.Moto, year utils.YearOption, prices utils.PriceSet) string {
	var b strings.Builder
	b.WriteString("🏍️ **Me interesa esta moto:**\n\n")
	fmt.Fprintf(&b, "**%s %s** modelo **%s**\n", moto.Brand, moto.Model, year)

	if prices.Available {
		b.WriteString("\n💰 **Precios:**\n")
		fmt.Fprintf(&b, "• Precio comercial: %s\n", utils.FormatPrice(prices.Commercial))
		fmt.Fprintf(&b, "• Cuota inicial (%.0f%%): %s\n", prices.Percentage*100, utils.FormatPrice(prices.DownPayment))
		fmt.Fprintf(&b, "• Precio de contado: %s\n", utils.FormatPrice(prices.Cash))
	}

	b.WriteString("\n¿Me pueden dar más información?")
	return b.String()
}
