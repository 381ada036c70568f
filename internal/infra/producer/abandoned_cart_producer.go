package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// 以userID為key做分區，同一個用戶的事件落在同一分區
type AbandonedCartEvent struct {
	CartID    uint      `json:"cart_id"`
	UserID    uint      `json:"user_id"`
	ItemCount int       `json:"item_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

type IAbandonedCartProducer interface {
	PublishAbandonedCarts(ctx context.Context, carts []model.Cart) error
	Close() error
}

type AbandonedCartProducer struct {
	writer *kafka.Writer
}

func NewAbandonedCartProducer(brokers []string, topic string) *AbandonedCartProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return &AbandonedCartProducer{writer: writer}
}

// PublishAbandonedCarts 同步發送，block到所有消息都寫入
func (p *AbandonedCartProducer) PublishAbandonedCarts(ctx context.Context, carts []model.Cart) error {
	if len(carts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(carts))
	for _, cart := range carts {
		value, err := json.Marshal(AbandonedCartEvent{
			CartID:    cart.CartID,
			UserID:    cart.UserID,
			ItemCount: len(cart.Items),
			UpdatedAt: cart.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal abandoned cart event: %w", err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(fmt.Sprintf("%d", cart.UserID)),
			Value: value,
			Headers: []kafka.Header{
				{
					Key:   "event_type",
					Value: []byte("cart.abandoned"),
				},
			},
		})
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *AbandonedCartProducer) Close() error {
	return p.writer.Close()
}

var _ IAbandonedCartProducer = (*AbandonedCartProducer)(nil)
