// Package email sends transactional mail through the EmailJS REST API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodcourt/internal/config"
	"foodcourt/internal/model"

	"github.com/rs/zerolog"
)

// Sender delivers order receipts to customers.
type Sender interface {
	SendReceipt(ctx context.Context, toEmail, toName string, order *model.Order) error
}

// Client talks to the EmailJS send endpoint.
type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an EmailJS client from configuration. Returns nil when
// email delivery is disabled, which callers treat as "do not send".
func NewClient(cfg config.EmailConfig, logger zerolog.Logger) *Client {
	if !cfg.Enabled {
		return nil
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("service", "email").Logger(),
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendReceipt posts a receipt for the given order to EmailJS.
func (c *Client) SendReceipt(ctx context.Context, toEmail, toName string, order *model.Order) error {
	payload := sendRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.publicKey,
		TemplateParams: map[string]string{
			"to_email":     toEmail,
			"to_name":      toName,
			"order_id":     order.ShortRef(),
			"items_list":   itemsList(order.Lines),
			"total_amount": fmt.Sprintf("%.2f", order.Total()),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email send returned status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

// itemsList renders order lines one per row, e.g. "Pizza × 2".
func itemsList(lines []model.OrderLine) string {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, fmt.Sprintf("%s × %d", line.Title, line.Quantity))
	}
	return strings.Join(rows, "\n")
}
