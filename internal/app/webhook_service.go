// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"kuritterweight/internal/domain"
)

// ErrMissingDependency is returned when a service is built without a
// required collaborator.
var ErrMissingDependency = errors.New("missing dependency")

// Reply texts sent back to the user.
const (
	MsgInvalidData     = "体重データが不正です"
	MsgDeleted         = "最新の記録を削除しました"
	MsgNothingToDelete = "削除する記録がありません"
	MsgDeleteFailed    = "削除に失敗しました"
	MsgNoHistory       = "まだ記録がありません"
	MsgHistoryFailed   = "履歴の取得に失敗しました"
	msgHistoryHeader   = "直近の記録"
)

// HistoryLimit is how many readings the history command shows.
const HistoryLimit = 5

// Status values reported for a processed webhook.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Outcome is the result of handling one webhook request.
type Outcome struct {
	Status string
}

// OK reports whether the request completed successfully.
func (o Outcome) OK() bool { return o.Status == StatusOK }

// WebhookService turns an inbound event batch into at most one stored or
// deleted reading and one reply.
type WebhookService struct {
	repo      domain.WeightRepository
	notifier  domain.Notifier
	publisher domain.RecordPublisher
	now       domain.Clock
	logger    *log.Logger
}

// WebhookOption configures optional collaborators of a WebhookService.
type WebhookOption func(*WebhookService)

// WithPublisher announces every stored reading through p.
func WithPublisher(p domain.RecordPublisher) WebhookOption {
	return func(s *WebhookService) { s.publisher = p }
}

// WithClock overrides the source of the current time.
func WithClock(c domain.Clock) WebhookOption {
	return func(s *WebhookService) { s.now = c }
}

// WithLogger sends service logs to l.
func WithLogger(l *log.Logger) WebhookOption {
	return func(s *WebhookService) { s.logger = l }
}

// NewWebhookService creates a WebhookService backed by the given repository
// and notifier.
func NewWebhookService(repo domain.WeightRepository, notifier domain.Notifier, opts ...WebhookOption) (*WebhookService, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: weight repository", ErrMissingDependency)
	}
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier", ErrMissingDependency)
	}
	s := &WebhookService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s, nil
}

// Handle processes one webhook batch.
func (s *WebhookService) Handle(ctx context.Context, events []domain.Event) Outcome {
	ev, ok := domain.SelectTextEvent(events)
	if !ok {
		s.logger.Printf("webhook: no text message in %d event(s)", len(events))
		return Outcome{Status: StatusOK}
	}

	userID := ev.Source.UserID
	switch cmd := domain.ParseCommand(ev.Message.Text).(type) {
	case domain.DeleteCommand:
		return s.handleDelete(ctx, ev.ReplyToken, userID)
	case domain.HistoryCommand:
		return s.handleHistory(ctx, ev.ReplyToken, userID)
	case domain.ReadingCommand:
		if userID == "" {
			return s.handleInvalid(ctx, ev.ReplyToken)
		}
		return s.handleReading(ctx, ev.ReplyToken, userID, cmd.Weight)
	case domain.InvalidCommand:
		return s.handleInvalid(ctx, ev.ReplyToken)
	default:
		panic(fmt.Sprintf("app: unhandled command %T", cmd))
	}
}

func (s *WebhookService) handleDelete(ctx context.Context, replyToken, userID string) Outcome {
	deleted, err := s.repo.DeleteLatestWeight(ctx, userID)
	if err != nil {
		s.logger.Printf("webhook: delete latest weight for %s: %v", userID, err)
		s.reply(ctx, replyToken, MsgDeleteFailed)
		return Outcome{Status: StatusError}
	}
	if deleted {
		s.reply(ctx, replyToken, MsgDeleted)
	} else {
		s.reply(ctx, replyToken, MsgNothingToDelete)
	}
	return Outcome{Status: StatusOK}
}

func (s *WebhookService) handleHistory(ctx context.Context, replyToken, userID string) Outcome {
	items, err := s.repo.ListUserWeights(ctx, userID, HistoryLimit)
	if err != nil {
		s.logger.Printf("webhook: list weights for %s: %v", userID, err)
		s.reply(ctx, replyToken, MsgHistoryFailed)
		return Outcome{Status: StatusError}
	}
	s.reply(ctx, replyToken, FormatHistory(userID, items))
	return Outcome{Status: StatusOK}
}

// handleReading stores the reading before replying: a failed reply never
// loses a reading, a failed insert never sends a reply.
func (s *WebhookService) handleReading(ctx context.Context, replyToken, userID string, weight float64) Outcome {
	prev, err := s.repo.LatestWeight(ctx, userID)
	if err != nil {
		s.logger.Printf("webhook: latest weight for %s: %v", userID, err)
		return Outcome{Status: StatusError}
	}
	if prev == nil {
		// First-ever readings are dropped without a reply; kept as observed.
		s.logger.Printf("webhook: no previous reading for %s, ignoring %v", userID, weight)
		return Outcome{Status: StatusOK}
	}

	msg := domain.FormatDelta(*prev, weight)
	ts := domain.FormatTimestamp(s.now())
	id, err := s.repo.AddWeight(ctx, userID, weight, ts)
	if err != nil {
		s.logger.Printf("webhook: add weight for %s: %v", userID, err)
		return Outcome{Status: StatusError}
	}

	s.reply(ctx, replyToken, msg)
	if s.publisher != nil {
		ev := domain.RecordedEvent{ID: id, UserID: userID, Date: ts, Weight: weight, Previous: *prev}
		if err := s.publisher.PublishRecorded(ctx, ev); err != nil {
			s.logger.Printf("webhook: publish record %d: %v", id, err)
		}
	}
	return Outcome{Status: StatusOK}
}

func (s *WebhookService) handleInvalid(ctx context.Context, replyToken string) Outcome {
	s.reply(ctx, replyToken, MsgInvalidData)
	return Outcome{Status: StatusError}
}

// reply is best effort; failures are only logged.
func (s *WebhookService) reply(ctx context.Context, replyToken, text string) {
	if err := s.notifier.Reply(ctx, replyToken, text); err != nil {
		s.logger.Printf("webhook: reply: %v", err)
	}
}

// FormatHistory renders up to HistoryLimit of userID's readings as a
// numbered list.
func FormatHistory(userID string, items []domain.WeightRecord) string {
	var b strings.Builder
	n := 0
	for _, it := range items {
		if it.UserID != userID {
			continue
		}
		if n == HistoryLimit {
			break
		}
		n++
		if n == 1 {
			b.WriteString(msgHistoryHeader)
		}
		b.WriteString("\n" + strconv.Itoa(n) + ". " + it.Date + " " + strconv.FormatFloat(it.Weight, 'f', -1, 64) + "kg")
	}
	if n == 0 {
		return MsgNoHistory
	}
	return b.String()
}
