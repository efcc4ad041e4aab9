package kafka

import (
	"context"

	"github.com/Shopify/sarama"
	"github.com/alumnet-lab/backend/pkg/pubsub"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type subscriber struct {
	topics  []string
	client  sarama.ConsumerGroup
	handler pubsub.SubscribeHandler
}

func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	config := sarama.NewConfig()
	config.ClientID = groupID
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return &subscriber{topics: topics, client: client, handler: handler}, nil
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}

// Subscribe consumes in background until ctx is done. Consume returns on every
// rebalance, so it is called in a loop.
func (s *subscriber) Subscribe(ctx context.Context) {
	handler := &consumerGroupHandler{fn: s.handler}
	go func() {
		for {
			if err := s.client.Consume(ctx, s.topics, handler); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot consume topics %v: %v", s.topics, err)
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()
}

type consumerGroupHandler struct {
	fn pubsub.SubscribeHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for message := range claim.Messages() {
		h.fn(session.Context(), &pubsub.Pack{Key: message.Key, Msg: message.Value}, message.Timestamp)
		session.MarkMessage(message, "")
	}

	return nil
}
