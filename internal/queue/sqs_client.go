package queue

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

const sqsWaitSeconds = 20

// SQSClient sends and receives queue messages via AWS SQS for multi-process
// deployments where the API and workers run separately.
type SQSClient struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSClient constructs an SQS-backed queue client from the environment.
func NewSQSClient(ctx context.Context) (*SQSClient, error) {
	queueURL := strings.TrimSpace(os.Getenv("DD_SQS_QUEUE_URL"))
	if queueURL == "" {
		return nil, fmt.Errorf("DD_SQS_QUEUE_URL is required")
	}

	region := strings.TrimSpace(os.Getenv("AWS_REGION"))
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSClient{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Send delivers a message to the configured SQS queue.
func (s *SQSClient) Send(ctx context.Context, msg Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode sqs message: %w", err)
	}

	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	return nil
}

// Receive long-polls the queue and deletes the message once decoded. Loops
// until a message arrives or the context is done.
func (s *SQSClient) Receive(ctx context.Context) (Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Message{}, err
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: 1,
			WaitTimeSeconds:     sqsWaitSeconds,
		})
		if err != nil {
			return Message{}, fmt.Errorf("sqs receive message: %w", err)
		}
		if len(out.Messages) == 0 {
			continue
		}

		raw := out.Messages[0]
		msg, err := DecodeMessage([]byte(aws.ToString(raw.Body)))
		if err != nil {
			// Drop undecodable payloads so they do not redeliver forever.
			_, _ = s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: raw.ReceiptHandle,
			})
			return Message{}, fmt.Errorf("decode sqs message: %w", err)
		}

		if _, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(s.queueURL),
			ReceiptHandle: raw.ReceiptHandle,
		}); err != nil {
			return Message{}, fmt.Errorf("sqs delete message: %w", err)
		}
		return msg, nil
	}
}

var (
	_ Client   = (*SQSClient)(nil)
	_ Receiver = (*SQSClient)(nil)
)
