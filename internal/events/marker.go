package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

type dynamoAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// EmailMarker flips the emailSent flag on a booking document. The flip is
// conditional, so concurrent deliveries of the same stream record race on the
// flag and exactly one wins.
type EmailMarker struct {
	client dynamoAPI
	logger *logging.Logger
}

// NewEmailMarker creates an EmailMarker backed by DynamoDB.
func NewEmailMarker(client dynamoAPI, logger *logging.Logger) *EmailMarker {
	if client == nil {
		panic("events: dynamodb client is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &EmailMarker{client: client, logger: logger}
}

// Mark sets emailSent on the booking with the given id. It returns true when
// this call performed the flip, false when another worker already had.
func (m *EmailMarker) Mark(ctx context.Context, tableName, bookingID string) (bool, error) {
	_, err := m.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: bookingID},
		},
		UpdateExpression:    aws.String("SET emailSent = :t, emailSentAt = :ts"),
		ConditionExpression: aws.String("attribute_exists(id) AND emailSent = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":  &types.AttributeValueMemberBOOL{Value: true},
			":f":  &types.AttributeValueMemberBOOL{Value: false},
			":ts": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			m.logger.Info("booking already marked as emailed", "table", tableName, "booking_id", bookingID)
			return false, nil
		}
		return false, fmt.Errorf("events: mark email sent: %w", err)
	}
	return true, nil
}
