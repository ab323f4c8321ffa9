package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

type dynamoAPI interface {
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store persists availability slots to DynamoDB. The table is keyed by
// providerId (partition) and slotKey = "date#startTime" (sort), so a day's
// slots are one key-ordered Query.
type Store struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewStore builds a slot store backed by the provided DynamoDB client.
func NewStore(client dynamoAPI, tableName string, logger *logging.Logger) *Store {
	if client == nil {
		panic("schedule: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("schedule: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{client: client, tableName: tableName, logger: logger}
}

// ListDay fetches all slots for one provider on one calendar day, ascending
// by start time.
func (s *Store) ListDay(ctx context.Context, providerID, date string) ([]Slot, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("providerId = :p AND slotKey BETWEEN :dayStart AND :dayEnd"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p":        &types.AttributeValueMemberS{Value: providerID},
			":dayStart": &types.AttributeValueMemberS{Value: Key(date, "00:00")},
			":dayEnd":   &types.AttributeValueMemberS{Value: Key(date, "23:59")},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("schedule: failed to query slots: %w", err)
	}

	slots := make([]Slot, 0, len(out.Items))
	for _, item := range out.Items {
		var slot Slot
		if err := attributevalue.UnmarshalMap(item, &slot); err != nil {
			return nil, fmt.Errorf("schedule: failed to decode slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// CountOpenFrom counts unreserved slots with keys at or after the given date.
// Pagination matters here: COUNT queries still page at 1MB of scanned items.
func (s *Store) CountOpenFrom(ctx context.Context, providerID, fromDate string) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("providerId = :p AND slotKey >= :from"),
			FilterExpression:       aws.String("isReserved = :f"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":p":    &types.AttributeValueMemberS{Value: providerID},
				":from": &types.AttributeValueMemberS{Value: fromDate + "#"},
				":f":    &types.AttributeValueMemberBOOL{Value: false},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("schedule: failed to count open slots: %w", err)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return total, nil
}

// Put inserts a new slot. The key condition guards against a concurrent
// insert at the same start time.
func (s *Store) Put(ctx context.Context, slot *Slot) error {
	if slot == nil {
		return errors.New("schedule: slot cannot be nil")
	}
	if slot.CreatedAt == "" {
		slot.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	slot.SlotKey = Key(slot.Date, slot.StartTime)

	item, err := attributevalue.MarshalMap(slot)
	if err != nil {
		return fmt.Errorf("schedule: failed to marshal slot: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(slotKey)"),
	})
	if err != nil {
		return fmt.Errorf("schedule: failed to persist slot: %w", err)
	}
	return nil
}

// Delete removes a slot by its key. Reservation checks happen in the manager
// before this is called.
func (s *Store) Delete(ctx context.Context, providerID, slotKey string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"providerId": &types.AttributeValueMemberS{Value: providerID},
			"slotKey":    &types.AttributeValueMemberS{Value: slotKey},
		},
		ConditionExpression: aws.String("attribute_exists(slotKey)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("schedule: failed to delete slot %s: %w", slotKey, err)
	}
	return nil
}

// ReserveItem returns a transaction element that flips a slot to reserved,
// failing the whole transaction if the slot is already consumed. Used by the
// booking flow so the appointment insert and the reservation commit together.
func (s *Store) ReserveItem(providerID, slotKey string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"providerId": &types.AttributeValueMemberS{Value: providerID},
				"slotKey":    &types.AttributeValueMemberS{Value: slotKey},
			},
			UpdateExpression:    aws.String("SET isReserved = :t"),
			ConditionExpression: aws.String("attribute_exists(slotKey) AND isReserved = :f"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":t": &types.AttributeValueMemberBOOL{Value: true},
				":f": &types.AttributeValueMemberBOOL{Value: false},
			},
		},
	}
}
