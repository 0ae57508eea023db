package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
)

// ConfirmationRequest é o corpo de POST /api/send-confirmation.
type ConfirmationRequest struct {
	To   string `json:"to"`
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

func RequestFrom(c domain.Confirmation) ConfirmationRequest {
	return ConfirmationRequest{
		To:   c.Email,
		Name: c.Name,
		Date: c.Date,
		Time: c.Time,
	}
}

// HTTPNotifier chama o endpoint de confirmação. Qualquer status fora de 2xx é falha.
type HTTPNotifier struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewHTTPNotifier(url, apiKey string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPNotifier{
		url:        url,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (n *HTTPNotifier) SendConfirmation(ctx context.Context, c domain.Confirmation) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	data, err := json.Marshal(RequestFrom(c))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set(APIKeyHeader, n.apiKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send confirmation: http %d", resp.StatusCode)
	}
	return nil
}

// APIKeyHeader autentica a chamada interna ao endpoint de confirmação.
const APIKeyHeader = "X-Api-Key"

// Noop is used when notifications are switched off.
type Noop struct{}

func (Noop) SendConfirmation(ctx context.Context, c domain.Confirmation) error {
	return domain.ErrNotificationDisabled
}

var (
	_ domain.Notifier = (*HTTPNotifier)(nil)
	_ domain.Notifier = Noop{}
)
