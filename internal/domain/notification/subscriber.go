package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alumnet-lab/backend/pkg/pubsub"
	"github.com/alumnet-lab/backend/pkg/ws"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// NewSubscribeHandler forwards notification events to the websocket clients of
// the receiver which are connected to this process.
func NewSubscribeHandler(hub *ws.Hub) pubsub.SubscribeHandler {
	return func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
		var ev EventRequest
		if err := json.Unmarshal(pack.Msg, &ev); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal notification event: %v", err)
			return
		}

		if ev.Metadata.To == "" || !hub.Online(ev.Metadata.To) {
			return
		}

		b, err := json.Marshal(Format(&ev))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal notification response: %v", err)
			return
		}

		sent := hub.SendToUser(ev.Metadata.To, b)
		xcontext.Logger(ctx).Debugf("Sent notification to %d clients of %s", sent, ev.Metadata.To)
	}
}
