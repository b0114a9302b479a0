package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/order-events"
	maxErrorBodyBytes = 512
)

// PushMessage is the body a Pub/Sub push subscription delivers to an endpoint.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localPublisher imitates a push subscription by POSTing each order event
// to a development endpoint.
type localPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewLocalPublisher creates a publisher that pushes to endpoint.
func NewLocalPublisher(endpoint string, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &localPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("endpoint", endpoint)),
		now:        time.Now,
	}
}

func (p *localPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	msg, err := newOrderMessage(event)
	if err != nil {
		return err
	}

	push := PushMessage{Subscription: localSubscription}
	push.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	push.Message.Attributes = msg.attributes
	push.Message.MessageID = uuid.NewString()
	push.Message.OrderingKey = msg.orderingKey
	push.Message.PublishTime = p.now().UTC().Format(time.RFC3339Nano)

	body, err := json.Marshal(push)
	if err != nil {
		return errors.Wrap(err, "encode push message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build push request")
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push %s event of order %s", event.Type, event.OrderID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return errors.Errorf("push endpoint answered %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	p.logger.Debug("Order event pushed",
		slog.String("event_type", string(event.Type)),
		slog.String("order_id", event.OrderID.String()),
		slog.String("message_id", push.Message.MessageID),
	)

	return nil
}

func (p *localPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
