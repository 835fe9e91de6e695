package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got model.Activity
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Kind != model.ActivityBorrow || got.BookID != 3 || !got.At.Equal(at) {
			return errors.Errorf("unexpected activity %+v", got)
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	q := NewEnqueuer(producer, "library-view.activity")
	require.NoError(t, q.Enqueue(model.Activity{Kind: model.ActivityBorrow, UserID: 7, BookID: 3, At: at}))
	require.ErrorIs(t, q.Enqueue(model.Activity{Kind: model.ActivityReturn, At: at}), sarama.ErrOutOfBrokers)
}

func TestEnqueuer_Disabled(t *testing.T) {
	t.Parallel()
	require.NoError(t, NewEnqueuer(nil, "").Enqueue(model.Activity{Kind: model.ActivityLogin}))
}
