package stream

import (
	"encoding/json"
	"log"
)

// Event tags the server sends.
const (
	EventConnectStatus      = "connect_status"
	EventSubscriptionStatus = "subscription_status"
	EventPriceUpdate        = "price_update"
	EventError              = "error"
)

// Frame is the envelope of every server message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ConnectStatus is the payload of a connect_status frame.
type ConnectStatus struct {
	ConnectionID string `json:"connection_id"`
}

// SubscriptionStatus is the payload of a subscription_status frame.
type SubscriptionStatus struct {
	Status string `json:"status"`
	Ticker string `json:"ticker,omitempty"`
}

// PriceUpdate is the payload of a price_update frame. CurrentPrice is
// pulled out of the nested data object; Fields carries the full object
// for consumers that want more than the headline price.
type PriceUpdate struct {
	Ticker       string
	CurrentPrice float64
	Fields       map[string]interface{}
}

// ServerError is the payload of an error frame.
type ServerError struct {
	Message string `json:"message"`
}

// EventHandler receives dispatched frames. Methods are invoked
// synchronously from the read loop, so they must not block indefinitely.
type EventHandler interface {
	OnConnect(ConnectStatus)
	OnSubscription(SubscriptionStatus)
	OnPriceUpdate(PriceUpdate)
	OnServerError(ServerError)
}

// Dispatch parses one raw frame and routes it to the matching handler
// method. A frame that is not valid JSON, or that carries an unknown
// event tag, is logged and dropped; the session is never terminated by
// a bad frame.
func Dispatch(h EventHandler, msg []byte) {
	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		log.Printf("Dropping unparseable frame: %v", err)
		return
	}

	switch frame.Event {
	case EventConnectStatus:
		var status ConnectStatus
		if err := json.Unmarshal(frame.Data, &status); err != nil {
			log.Printf("Bad connect_status payload: %v", err)
			return
		}
		h.OnConnect(status)

	case EventSubscriptionStatus:
		var status SubscriptionStatus
		if err := json.Unmarshal(frame.Data, &status); err != nil {
			log.Printf("Bad subscription_status payload: %v", err)
			return
		}
		h.OnSubscription(status)

	case EventPriceUpdate:
		var payload struct {
			Ticker string                 `json:"ticker"`
			Data   map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			log.Printf("Bad price_update payload: %v", err)
			return
		}
		update := PriceUpdate{Ticker: payload.Ticker, Fields: payload.Data}
		if v, ok := payload.Data["currentPrice"].(float64); ok {
			update.CurrentPrice = v
		}
		h.OnPriceUpdate(update)

	case EventError:
		var serverErr ServerError
		if err := json.Unmarshal(frame.Data, &serverErr); err != nil {
			log.Printf("Bad error payload: %v", err)
			return
		}
		h.OnServerError(serverErr)

	default:
		log.Printf("Unknown event type: %q", frame.Event)
	}
}
