package notification

import "github.com/alumnet-lab/backend/internal/model"

type Event interface {
	Op() string
}

type NotificationEvent struct {
	model.Notification
}

func (*NotificationEvent) Op() string {
	return "notification"
}

type Metadata struct {
	To string `json:"to"`
}

// EventRequest is the message published to the notification topic.
type EventRequest struct {
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

// EventResponse is the message written to websocket clients.
type EventResponse struct {
	Op   string `json:"o"`
	Data any    `json:"d"`
}

func NewEvent(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

func Format(event *EventRequest) *EventResponse {
	return &EventResponse{
		Op:   event.Op,
		Data: event.Data,
	}
}
