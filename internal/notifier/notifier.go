// Package notifier публикует снимки списка участников в RabbitMQ.
package notifier

import (
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/rabbitmq"
)

// SnapshotNotifier — подписчик хранилища, отправляющий каждый снимок в exchange.
// Ошибки публикации только логируются и не влияют на хранилище.
type SnapshotNotifier struct {
	ch         rabbitmq.Publisher
	exchange   string
	routingKey string
	log        *slog.Logger
	now        func() time.Time
}

// New создаёт SnapshotNotifier.
func New(ch rabbitmq.Publisher, exchange, routingKey string, log *slog.Logger) *SnapshotNotifier {
	return &SnapshotNotifier{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		log:        log,
		now:        time.Now,
	}
}

// OnSnapshot публикует снимок как models.SnapshotEvent.
func (n *SnapshotNotifier) OnSnapshot(members []models.Member) {
	const op = "notifier.OnSnapshot"

	event := NewEvent(members, n.now())
	if err := rabbitmq.PublishMessage(n.ch, n.exchange, n.routingKey, event); err != nil {
		n.log.Error("failed to publish snapshot", sl.Op(op), sl.Err(err))
		return
	}
	n.log.Debug("snapshot published", sl.Op(op), slog.Int("total", event.Total))
}

// NewEvent собирает событие снимка со счётчиками активных и неактивных участников.
func NewEvent(members []models.Member, at time.Time) models.SnapshotEvent {
	event := models.SnapshotEvent{
		Total:       len(members),
		Members:     members,
		PublishedAt: at.UTC(),
	}
	if event.Members == nil {
		event.Members = []models.Member{}
	}
	for _, m := range members {
		if m.IsActive {
			event.Active++
		} else {
			event.Inactive++
		}
	}
	return event
}
