package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced   = "order.placed"
	EventStatusChanged = "order.status_changed"
)

// OrderEvent is published after an order is placed or changes status.
type OrderEvent struct {
	Type         string          `json:"type"`
	OrderID      uint            `json:"orderId"`
	Reference    string          `json:"reference"`
	UserID       uint            `json:"userId"`
	RestaurantID uint            `json:"restaurantId"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	At           time.Time       `json:"at"`
}

type OrderNotifier interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

// LogNotifier only logs events. Used when no queue is configured.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Publish(_ context.Context, ev OrderEvent) error {
	n.Log.Info("order event",
		zap.String("type", ev.Type),
		zap.String("order", ev.Reference),
		zap.String("status", ev.Status),
	)
	return nil
}

// SQSAPI is the part of *sqs.Client the notifier needs.
type SQSAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSNotifier sends each event as a JSON message to QueueURL.
type SQSNotifier struct {
	Client   SQSAPI
	QueueURL string
}

func NewSQSNotifier(client SQSAPI, queueURL string) *SQSNotifier {
	return &SQSNotifier{Client: client, QueueURL: queueURL}
}

func (n *SQSNotifier) Publish(ctx context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("sqs: encode event: %w", err)
	}
	_, err = n.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(ev.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("sqs: send %s: %w", ev.Type, err)
	}
	return nil
}
