package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "todo-digest.com/todo-digest/internal/errors"
	"todo-digest.com/todo-digest/internal/generation"
	"todo-digest.com/todo-digest/internal/notification"
)

const (
	EmptySummary = "No todos found"

	summaryInstruction  = "Summarize the following to-do tasks into a concise and meaningful summary:"
	summaryMaxTokens    = 100
	summaryTemperature  = 0.7
	notificationHeading = "📝 *AI-Generated Todo Summary*:"
)

// TodoSource yields the text of every todo in id order.
type TodoSource interface {
	ListTexts(ctx context.Context) ([]string, error)
}

type DeliveryStatus string

const (
	DeliverySkipped   DeliveryStatus = "skipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Delivery is the outcome of the best-effort broadcast. Err is set only
// when Status is DeliveryFailed.
type Delivery struct {
	Status DeliveryStatus
	Err    error
}

type Summary struct {
	Text     string
	Delivery Delivery
}

type SummaryConfig struct {
	GenerateTimeout time.Duration
	NotifyTimeout   time.Duration
}

type SummaryService struct {
	todos     TodoSource
	generator generation.Generator
	notifier  notification.Notifier
	cfg       SummaryConfig
	logger    *slog.Logger
}

// NewSummaryService wires the pipeline. A nil notifier disables the
// broadcast step.
func NewSummaryService(
	todos TodoSource,
	generator generation.Generator,
	notifier notification.Notifier,
	cfg SummaryConfig,
	logger *slog.Logger,
) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{
		todos:     todos,
		generator: generator,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// Summarize generates a digest of all todos and relays it to the
// notification channel. Only generation and store failures are returned.
func (s *SummaryService) Summarize(ctx context.Context) (*Summary, error) {
	// Once started, a summary runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	texts, err := s.todos.ListTexts(ctx)
	if err != nil {
		return nil, err
	}

	if len(texts) == 0 {
		return &Summary{
			Text:     EmptySummary,
			Delivery: Delivery{Status: DeliverySkipped},
		}, nil
	}

	text, err := s.generate(ctx, BuildPrompt(texts))
	if err != nil {
		return nil, err
	}

	return &Summary{
		Text:     text,
		Delivery: s.broadcast(ctx, text),
	}, nil
}

func (s *SummaryService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	raw, err := s.generator.Generate(ctx, generation.Request{
		Prompt:      prompt,
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", &apperrors.SummaryGenerationError{Err: err}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &apperrors.SummaryGenerationError{Err: errors.New("generated text is empty")}
	}
	return text, nil
}

func (s *SummaryService) broadcast(ctx context.Context, summary string) Delivery {
	if s.notifier == nil {
		return Delivery{Status: DeliverySkipped}
	}

	ctx, cancel := withOptionalTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, FormatNotification(summary)); err != nil {
		notifyErr := &apperrors.NotificationError{Err: err}
		s.logger.Error("summary notification failed", slog.String("error", notifyErr.Error()))
		return Delivery{Status: DeliveryFailed, Err: notifyErr}
	}

	s.logger.Info("summary notification delivered")
	return Delivery{Status: DeliveryDelivered}
}

func BuildPrompt(texts []string) string {
	return summaryInstruction + "\n\n" + strings.Join(texts, "\n")
}

func FormatNotification(summary string) string {
	return notificationHeading + "\n" + summary
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
