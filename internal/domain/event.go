package domain

// Event is one inbound webhook event. Only the fields the pipeline reads are
// modelled; everything else in the payload is ignored.
type Event struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken,omitempty"`
	Source     EventSource   `json:"source"`
	Message    *EventMessage `json:"message,omitempty"`
}

// EventSource identifies who sent an event.
type EventSource struct {
	Type   string `json:"type,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// EventMessage is the message payload of a "message" event.
type EventMessage struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// SelectTextEvent returns the first text message event in events. The second
// result is false when the batch holds no such event.
func SelectTextEvent(events []Event) (Event, bool) {
	for _, ev := range events {
		if ev.Type != "message" || ev.Message == nil {
			continue
		}
		if ev.Message.Type != "text" {
			continue
		}
		return ev, true
	}
	return Event{}, false
}
