package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEmailTimeout = 10 * time.Second

type emailMessage struct {
	To      string         `json:"to"`
	Subject string         `json:"subject"`
	Text    string         `json:"text"`
	Type    Kind           `json:"type"`
	Data    map[string]any `json:"data,omitempty"`
}

// EmailNotifier posts customer emails to the mail endpoint at
// <base>/api/sendEmail. Only order_ready and reservation_confirmed events
// produce an email; everything else is ignored.
type EmailNotifier struct {
	endpoint string
	client   *http.Client
}

func NewEmailNotifier(baseURL string, timeout time.Duration) *EmailNotifier {
	if timeout <= 0 {
		timeout = DefaultEmailTimeout
	}
	return &EmailNotifier{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/sendEmail",
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, e Event) error {
	msg, ok := composeEmail(e)
	if !ok {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email for %s: %w", describe(e), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send email for %s: endpoint returned %s", describe(e), resp.Status)
	}
	return nil
}

func composeEmail(e Event) (emailMessage, bool) {
	if e.Email == "" {
		return emailMessage{}, false
	}
	name := e.Name
	if name == "" {
		name = "there"
	}

	msg := emailMessage{To: e.Email, Type: e.Kind, Data: e.Data}
	switch e.Kind {
	case KindOrderReady:
		msg.Subject = fmt.Sprintf("Your order %s is ready for pickup", e.Key)
		msg.Text = fmt.Sprintf("Hi %s,\n\nYour pre-order %s is ready. Show this code at the counter when you arrive.\n\nTomato", name, e.Key)
	case KindReservationConfirmed:
		msg.Subject = "Your reservation is confirmed"
		msg.Text = fmt.Sprintf("Hi %s,\n\nYour table for %v on %v at %v is confirmed. We look forward to seeing you.\n\nTomato",
			name, e.Data["guests"], e.Data["date"], e.Data["time"])
	default:
		return emailMessage{}, false
	}
	return msg, true
}
