package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/railtrace/railway-assets/internal/core/events"
	"github.com/railtrace/railway-assets/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus debugging commands",
	Long:  `Publish test events to the in-process bus to verify subscriber wiring`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event of the given type (for example session.changed) and log its delivery`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

func publishTestEvent(eventType string) {
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)
	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	if err := eventBus.PublishSync(context.Background(), testEvent); err != nil {
		lg.Error("failed to publish event", "error", err)
		return
	}

	lg.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
