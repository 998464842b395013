package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tagtrack/internal/config"
	"tagtrack/internal/notify"
	"tagtrack/internal/queue"
	"tagtrack/internal/store"
)

// Worker relays queued scan events to the push transport the dashboards
// subscribe to (Redis pub/sub or a durable AMQP queue).
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "tagtrack:scans")
	}

	var sink notify.Notifier
	switch cfg.NotifySink {
	case "amqp":
		pub, closeFn, err := notify.NewAMQPPublisher(cfg.AMQPURL, "")
		if err != nil {
			log.Fatalf("amqp connect failed: %v", err)
		}
		defer closeFn()
		sink = pub
		log.Println("relaying scan events to AMQP queue", notify.AMQPQueue)
	default:
		sink = notify.NewRedisPublisher(redisClient.Client, "")
		log.Println("relaying scan events to Redis channel", notify.Channel)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for scan events...")
	for msg := range messages {
		if msg.Type != notify.EventType {
			continue
		}

		var evt notify.ScanEvent
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			log.Printf("drop malformed scan event: %v", err)
			continue
		}

		if err := sink.Publish(ctx, evt); err != nil {
			log.Printf("relay failed for student %d: %v", evt.StudentID, err)
			continue
		}
		log.Printf("relayed %s for student %d (in_school=%v)", evt.Type, evt.StudentID, evt.NewStatus)
	}

	log.Println("worker stopped")
}
