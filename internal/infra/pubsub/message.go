package pubsub

import (
	"encoding/json"

	"coderr/internal/domain/service"

	"github.com/pkg/errors"
)

// orderMessage is the transport independent form of an order event.
type orderMessage struct {
	data       []byte
	attributes map[string]string
	// orderingKey keeps the events of one order in publish order.
	orderingKey string
}

func newOrderMessage(event *service.OrderEvent) (*orderMessage, error) {
	if event == nil {
		return nil, errors.New("order event is required")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "encode order event")
	}

	attributes := map[string]string{
		"event_type":    string(event.Type),
		"order_id":      event.OrderID.String(),
		"customer_user": event.CustomerUserID.String(),
		"business_user": event.BusinessUserID.String(),
		"status":        string(event.Status),
	}
	if event.PreviousStatus != "" {
		attributes["previous_status"] = string(event.PreviousStatus)
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &orderMessage{
		data:        data,
		attributes:  attributes,
		orderingKey: event.OrderID.String(),
	}, nil
}
