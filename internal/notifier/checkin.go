package notifier

import (
	"context"
	"log"
	"time"
)

type TextSender interface {
	SendText(ctx context.Context, text string) error
}

// Периодически напоминает в чате про чекин
type CheckIn struct {
	sender   TextSender
	message  string
	interval time.Duration
}

func NewCheckIn(sender TextSender, message string, interval time.Duration) *CheckIn {
	return &CheckIn{
		sender:   sender,
		message:  message,
		interval: interval,
	}
}

func (c *CheckIn) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.send(ctx)

	for {
		select {
		case <-ticker.C:
			c.send(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *CheckIn) send(ctx context.Context) {
	if err := c.sender.SendText(ctx, c.message); err != nil {
		log.Printf("[ERROR] failed to send check-in message: %v", err)
		return
	}

	log.Println("check-in message sent")
}
