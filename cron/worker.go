package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"halo/config"
	"halo/services/notification"
	"halo/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueRedisOpt is the asynq connection for the email queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitEmailWorker runs the email delivery worker in background and returns the
// server so the caller can shut it down.
func InitEmailWorker(mailer notification.Mailer) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, HandleEmailTask(mailer))

	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

// HandleEmailTask delivers one queued email. A returned error makes asynq retry.
func HandleEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseEmailTask(task)
		if err != nil {
			log.Printf("[EmailHandler] invalid payload: %v", err)
			return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := mailer.Send(ctx, p); err != nil {
			log.Printf("[EmailHandler] failed to deliver email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}
