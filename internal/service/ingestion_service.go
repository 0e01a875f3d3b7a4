package service

import (
	"context"
	"encoding/json"
	"fmt"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/websocket"
	"docchat-be/pkg/events"
	"docchat-be/pkg/ingest"
	"docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	EventLoadingProgress = "loading_progress"
	EventUpdateProgress  = "update_progress"
	EventUpdateComplete  = "update_complete"
)

// IIngestionService triggers index syncs and reports progress over the
// websocket hub.
type IIngestionService interface {
	TriggerSync(ctx context.Context, replyRoom string) error
	Consume(ctx context.Context) error
}

type ingestionService struct {
	publisher     IPublisherService
	pubSub        *gochannel.GoChannel
	topicName     string
	orchestrator  *ingest.Orchestrator
	hub           *websocket.Hub
	natsPublisher *nats.Publisher
	logger        logger.ILogger
}

func NewIngestionService(
	publisher IPublisherService,
	pubSub *gochannel.GoChannel,
	topicName string,
	orchestrator *ingest.Orchestrator,
	hub *websocket.Hub,
	natsPublisher *nats.Publisher,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		publisher:     publisher,
		pubSub:        pubSub,
		topicName:     topicName,
		orchestrator:  orchestrator,
		hub:           hub,
		natsPublisher: natsPublisher,
		logger:        log,
	}
}

// TriggerSync enqueues an index sync; the heavy work happens on the
// consumer side so callers return immediately.
func (is *ingestionService) TriggerSync(ctx context.Context, replyRoom string) error {
	payload, err := json.Marshal(dto.PublishIngestMessage{ReplyRoom: replyRoom})
	if err != nil {
		return fmt.Errorf("marshal ingest message: %w", err)
	}
	if err := is.publisher.Publish(ctx, payload); err != nil {
		return fmt.Errorf("publish ingest message: %w", err)
	}
	return nil
}

func (is *ingestionService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *ingestionService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		is.logger.Error("IngestionService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid messages never become valid, do not retry
		return
	}

	report, err := is.orchestrator.Run(ctx, is.progressSink(payload.ReplyRoom))
	if err != nil {
		is.logger.Error("IngestionService", "Index sync failed", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	is.logger.Info("IngestionService", "Index sync finished", map[string]interface{}{
		"candidates": report.Candidates,
		"loaded":     report.Loaded,
		"skipped":    report.Skipped,
		"added":      report.Added,
	})

	if is.natsPublisher != nil {
		if err := is.natsPublisher.Publish(ctx, events.NewIngestionCompleted(report.Added)); err != nil {
			is.logger.Warn("IngestionService", "Failed to publish ingestion event", map[string]interface{}{"error": err.Error()})
		}
	}
	msg.Ack()
}

// progressSink maps pipeline events onto websocket events for the
// requesting room. A sync triggered without a room runs silently.
func (is *ingestionService) progressSink(replyRoom string) ingest.EventSink {
	if replyRoom == "" {
		return func(ingest.Event) {}
	}
	return func(ev ingest.Event) {
		switch e := ev.(type) {
		case ingest.LoadProgress:
			is.hub.Publish(replyRoom, EventLoadingProgress, dto.LoadingProgressEvent{
				Current: e.Current,
				Total:   e.Total,
			})
		case ingest.IndexingStarted:
			is.hub.Publish(replyRoom, EventUpdateProgress, dto.UpdateProgressEvent{Stage: "indexing"})
		case ingest.Completed:
			is.hub.Publish(replyRoom, EventUpdateComplete, dto.UpdateCompleteEvent{ChunksAdded: e.Added})
		}
	}
}
