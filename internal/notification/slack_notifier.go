package notification

import (
	"context"
	"errors"
	"net/http"

	"github.com/slack-go/slack"
)

var ErrMissingWebhookURL = errors.New("slack webhook url not set")

type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewSlackNotifier(webhookURL string, client *http.Client) *SlackNotifier {
	if client == nil {
		client = &http.Client{}
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     client,
	}
}

func (n *SlackNotifier) Notify(ctx context.Context, message string) error {
	if n.webhookURL == "" {
		return ErrMissingWebhookURL
	}

	return slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.client, &slack.WebhookMessage{
		Text: message,
	})
}
