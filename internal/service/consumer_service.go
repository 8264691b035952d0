package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"smart-librarian-be/internal/dto"
	"smart-librarian-be/internal/pkg/logger"
	"smart-librarian-be/pkg/media"
)

// IConsumerService drains the media topic: each message produces the audio
// file for the answer and, when a title was chosen, its cover image. Failures
// are logged and the message is acked anyway; the HTTP response already went
// out with precomputed URLs, so retrying here cannot change what the client
// saw.
type IConsumerService interface {
	StartConsume(ctx context.Context) error
}

type consumerService struct {
	topicName   string
	pubSub      *gochannel.GoChannel
	synthesizer *media.Synthesizer
	covers      *media.CoverGenerator
	log         logger.ILogger
}

func NewConsumerService(
	topicName string,
	pubSub *gochannel.GoChannel,
	synthesizer *media.Synthesizer,
	covers *media.CoverGenerator,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		topicName:   topicName,
		pubSub:      pubSub,
		synthesizer: synthesizer,
		covers:      covers,
		log:         log,
	}
}

func (s *consumerService) StartConsume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go s.process(ctx, messages)

	s.log.Info("ConsumerService", "Listening for media synthesis jobs", map[string]interface{}{
		"topic": s.topicName,
	})
	return nil
}

func (s *consumerService) process(ctx context.Context, messages <-chan *message.Message) {
	for msg := range messages {
		var payload dto.SynthesizeMediaMessage
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.log.Error("ConsumerService", "Dropping malformed media message", map[string]interface{}{
				"message_id": msg.UUID,
				"error":      err.Error(),
			})
			msg.Ack()
			continue
		}

		s.logResult(s.synthesizer.Synthesize(ctx, payload.Answer, payload.Voice))
		if payload.Title != "" {
			s.logResult(s.covers.Generate(ctx, payload.Title, payload.Short, payload.Tags, ""))
		}

		msg.Ack()
	}
}

func (s *consumerService) logResult(res media.Result) {
	details := map[string]interface{}{
		"kind": res.Kind,
		"path": res.Path,
	}
	switch {
	case !res.Ok():
		details["error"] = res.Err.Error()
		s.log.Error("ConsumerService", "Media synthesis failed", details)
	case res.Skipped:
		s.log.Info("ConsumerService", "Media already on disk, skipped", details)
	default:
		s.log.Info("ConsumerService", "Media synthesized", details)
	}
}
