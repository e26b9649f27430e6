package chat

import (
	"context"
	"fmt"
	"strings"

	"foodcourt/internal/repository"

	"github.com/rs/zerolog"
)

// fallbackReply is returned whenever the model call fails. The customer
// sees an apology rather than an error.
const fallbackReply = "Sorry, I can't help with that right now. Please try again in a moment."

const menuLimit = 50

// Assistant answers customer questions about the menu. The current catalogue
// is embedded into every prompt so the model only recommends foods that
// actually exist.
type Assistant struct {
	client   Client
	foodRepo repository.FoodRepository
	logger   zerolog.Logger
}

// NewAssistant creates a menu assistant.
func NewAssistant(client Client, foodRepo repository.FoodRepository, logger zerolog.Logger) *Assistant {
	return &Assistant{
		client:   client,
		foodRepo: foodRepo,
		logger:   logger.With().Str("service", "assistant").Logger(),
	}
}

// Reply answers a customer message. Failures are absorbed into a fallback
// reply; the chat endpoint never surfaces an error to the customer.
func (a *Assistant) Reply(ctx context.Context, message string) string {
	if a.client == nil {
		return fallbackReply
	}

	prompt, err := a.buildPrompt(ctx, message)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to build prompt")
		return fallbackReply
	}

	reply, err := a.client.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn().Err(err).Msg("assistant reply failed")
		return fallbackReply
	}

	return strings.TrimSpace(reply)
}

func (a *Assistant) buildPrompt(ctx context.Context, message string) (string, error) {
	foods, err := a.foodRepo.GetAll(ctx, menuLimit, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load menu: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a friendly assistant for a food delivery app. ")
	b.WriteString("Answer the customer's question using only the menu below. ")
	b.WriteString("Keep the reply short and do not invent foods that are not listed.\n\nMenu:\n")
	for _, food := range foods {
		fmt.Fprintf(&b, "- %s ($%.2f, %d kcal, rated %.1f)\n", food.Title, food.Price, food.Calorie, food.Star)
	}
	b.WriteString("\nCustomer: ")
	b.WriteString(message)
	return b.String(), nil
}
