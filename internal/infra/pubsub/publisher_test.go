package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coderr/config"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.OrderEvent {
	order := &entity.Order{
		ID:             uuid.New(),
		CustomerUserID: uuid.New(),
		BusinessUserID: uuid.New(),
		Status:         entity.OrderStatusCompleted,
	}
	event := service.NewOrderEvent(entity.OrderEventStatusChanged, order, entity.OrderStatusInProgress, time.Now().UTC())
	event.RequestID = "req-123"

	return event
}

func TestLocalPublisher_PublishOrderEvent(t *testing.T) {
	event := sampleEvent()

	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalPublisher(server.URL, time.Second, discardLogger())
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))

	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, string(entity.OrderEventStatusChanged), received.Message.Attributes["event_type"])
	assert.Equal(t, event.OrderID.String(), received.Message.Attributes["order_id"])
	assert.Equal(t, event.BusinessUserID.String(), received.Message.Attributes["business_user"])
	assert.Equal(t, string(entity.OrderStatusInProgress), received.Message.Attributes["previous_status"])
	assert.Equal(t, event.OrderID.String(), received.Message.OrderingKey)
	assert.NotEmpty(t, received.Message.MessageID)

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.OrderEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, entity.OrderStatusCompleted, decoded.Status)
	assert.Equal(t, entity.OrderStatusInProgress, decoded.PreviousStatus)
	assert.NoError(t, publisher.Close())
}

func TestLocalPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("subscriber down\n"))
	}))
	defer server.Close()

	publisher := NewLocalPublisher(server.URL, time.Second, discardLogger())
	err := publisher.PublishOrderEvent(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "subscriber down")
}

func TestLocalPublisher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	defer close(release)

	publisher := &boundedPublisher{
		EventPublisher: NewLocalPublisher(server.URL, time.Minute, discardLogger()),
		timeout:        20 * time.Millisecond,
	}

	err := publisher.PublishOrderEvent(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewOrderMessage(t *testing.T) {
	_, err := newOrderMessage(nil)
	require.Error(t, err)

	event := sampleEvent()
	event.RequestID = ""
	event.PreviousStatus = ""

	msg, err := newOrderMessage(event)
	require.NoError(t, err)
	assert.NotContains(t, msg.attributes, "request_id")
	assert.NotContains(t, msg.attributes, "previous_status")
	assert.Equal(t, string(entity.OrderStatusCompleted), msg.attributes["status"])
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
		wantOp  bool
	}{
		{name: "not configured", cfg: nil, wantOp: true},
		{name: "empty provider", cfg: &config.PubSubConfig{}, wantOp: true},
		{name: "local", cfg: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:9999"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}, wantErr: true},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google", TopicID: "orders"}, wantErr: true},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: "google", ProjectID: "p"}, wantErr: true},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: discardLogger(),
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, publisher)

			if tt.wantOp {
				_, ok := publisher.(*noopPublisher)
				assert.True(t, ok)
				assert.NoError(t, publisher.PublishOrderEvent(context.Background(), sampleEvent()))
			} else {
				bounded, ok := publisher.(*boundedPublisher)
				require.True(t, ok)
				assert.Equal(t, defaultPublishTimeout, bounded.timeout)
			}

			lc.RequireStart()
			lc.RequireStop()
		})
	}
}
