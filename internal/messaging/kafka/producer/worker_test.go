package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/mock"
	"go-leave/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failKey string
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == f.failKey {
			return errors.New("broker unavailable")
		}
		f.written = append(f.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ClaimDue(gomock.Any(), 50, time.Minute).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "req-1", AggregateType: "leave", AggregateID: "l-1", EventType: "leave.submitted", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		if assert.Len(t, writer.written, 1) {
			msg := writer.written[0]
			assert.Equal(t, "l-1", string(msg.Key))
			assert.Equal(t, "hr.leave.lifecycle.v1", msg.Topic)
			assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})
		}
	})

	t.Run("negative broker failure reschedules and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failKey: "l-1"}

		repo.EXPECT().ClaimDue(gomock.Any(), 50, time.Minute).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "l-1", Topic: "t", Payload: []byte(`{}`), RetryCount: 3},
			{ID: "o-2", AggregateID: "l-2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().Reschedule(gomock.Any(), "o-1", 3, "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("negative claim failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ClaimDue(gomock.Any(), 50, time.Minute).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})
}
