package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEvent(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w)

	require.NoError(t, p.PublishEvent(context.Background(), "order_events", "17", map[string]any{"type": "order_created", "orderID": 17}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order_events", w.msgs[0].Topic)
	assert.Equal(t, []byte("17"), w.msgs[0].Key)

	var event map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, "order_created", event["type"])
	assert.EqualValues(t, 17, event["orderID"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishEventWriteError(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{err: errors.New("broker down")})
	err := p.PublishEvent(context.Background(), "cart_events", "1", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart_events")
}

func TestPublishEventMarshalError(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{})
	require.Error(t, p.PublishEvent(context.Background(), "t", "k", make(chan int)))
}
