package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docchat-be/internal/config"
	"docchat-be/pkg/events"
	"docchat-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails the event bus: prints every completed answer and ingestion run.
// Useful for watching a running deployment without attaching a socket.
func main() {
	cfg := config.Load()

	subscriber, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	printEvent := func(_ context.Context, event events.Event) error {
		payload, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}
		color.Cyan("[%s] %s", event.EventType(), payload)
		return nil
	}

	if err := subscriber.Subscribe(events.TypeAnswerCompleted, "events-tail-answers", printEvent); err != nil {
		log.Fatalf("Unable to subscribe to %s: %v", events.TypeAnswerCompleted, err)
	}
	if err := subscriber.Subscribe(events.TypeIngestionCompleted, "events-tail-ingestions", printEvent); err != nil {
		log.Fatalf("Unable to subscribe to %s: %v", events.TypeIngestionCompleted, err)
	}

	color.Green("Listening for events, Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
