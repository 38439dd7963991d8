package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dealdesk-backend/internal/bootstrap"
	"dealdesk-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	if cfg.QueueType != "sqs" {
		log.Fatal("QUEUE=sqs is required for the worker binary")
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Dispatcher.Start(ctx)
	log.Printf("worker started queue=%s workers=%d", cfg.SQSQueueURL, cfg.PipelineWorkers)

	<-ctx.Done()
	log.Printf("shutdown requested, waiting for in-flight pipelines")
	app.Dispatcher.Wait()
}
