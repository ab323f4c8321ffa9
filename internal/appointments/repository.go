package appointments

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

// ErrNotFound indicates the referenced appointment does not exist.
var ErrNotFound = errors.New("appointments: appointment not found")

type dynamoAPI interface {
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Repository persists appointments to DynamoDB. The table is keyed by
// providerId (partition) and apptKey = "date#startTime#id" (sort), so every
// date filter below is a single key-condition Query and results arrive
// already ordered by (date, startTime).
type Repository struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewRepository builds an appointment repository backed by DynamoDB.
func NewRepository(client dynamoAPI, tableName string, logger *logging.Logger) *Repository {
	if client == nil {
		panic("appointments: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("appointments: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Repository{client: client, tableName: tableName, logger: logger}
}

// keyCondition translates a date filter into a sort-key condition relative
// to the given day. "#" sorts below any "HH:MM" suffix and "~" above, so the
// ranges cover whole days.
func keyCondition(filter DateFilter, today string) (expr string, extra map[string]types.AttributeValue) {
	switch filter {
	case FilterToday:
		return "providerId = :p AND apptKey BETWEEN :dayStart AND :dayEnd", map[string]types.AttributeValue{
			":dayStart": &types.AttributeValueMemberS{Value: today + "#"},
			":dayEnd":   &types.AttributeValueMemberS{Value: today + "#~"},
		}
	case FilterUpcoming:
		return "providerId = :p AND apptKey >= :dayStart", map[string]types.AttributeValue{
			":dayStart": &types.AttributeValueMemberS{Value: today + "#"},
		}
	case FilterPast:
		return "providerId = :p AND apptKey < :dayStart", map[string]types.AttributeValue{
			":dayStart": &types.AttributeValueMemberS{Value: today + "#"},
		}
	default:
		return "providerId = :p", nil
	}
}

// List fetches a provider's appointments under the given date filter,
// ascending by (date, startTime). today is the current calendar day in
// DateLayout form.
func (r *Repository) List(ctx context.Context, providerID string, filter DateFilter, today string) ([]Appointment, error) {
	expr, extra := keyCondition(filter, today)
	values := map[string]types.AttributeValue{
		":p": &types.AttributeValueMemberS{Value: providerID},
	}
	for k, v := range extra {
		values[k] = v
	}

	var appts []Appointment
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String(expr),
			ExpressionAttributeValues: values,
			ScanIndexForward:          aws.Bool(true),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("appointments: failed to query: %w", err)
		}
		for _, item := range out.Items {
			var a Appointment
			if err := attributevalue.UnmarshalMap(item, &a); err != nil {
				return nil, fmt.Errorf("appointments: failed to decode appointment: %w", err)
			}
			appts = append(appts, a)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	if appts == nil {
		appts = []Appointment{}
	}
	return appts, nil
}

// Count returns the number of appointments matching the filter without
// fetching the items. COUNT queries still page at 1MB of scanned items, so
// the partial counts are summed across pages.
func (r *Repository) Count(ctx context.Context, providerID string, filter DateFilter, today string) (int, error) {
	expr, extra := keyCondition(filter, today)
	values := map[string]types.AttributeValue{
		":p": &types.AttributeValueMemberS{Value: providerID},
	}
	for k, v := range extra {
		values[k] = v
	}

	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String(expr),
			ExpressionAttributeValues: values,
			Select:                    types.SelectCount,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("appointments: failed to count: %w", err)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return total, nil
}

// UpdateStatus persists a new status plus updatedAt. Transition legality is
// the service's concern; this only guards against updating a missing row.
func (r *Repository) UpdateStatus(ctx context.Context, providerID, apptKey string, to Status) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"providerId": &types.AttributeValueMemberS{Value: providerID},
			"apptKey":    &types.AttributeValueMemberS{Value: apptKey},
		},
		UpdateExpression:    aws.String("SET #status = :status, updatedAt = :updated"),
		ConditionExpression: aws.String("attribute_exists(apptKey)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(to)},
			":updated": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("appointments: failed to update status: %w", err)
	}
	return nil
}

// InsertItem returns a transaction element inserting a new appointment, for
// the booking flow to pair with the slot reservation.
func (r *Repository) InsertItem(appt *Appointment) (types.TransactWriteItem, error) {
	if appt == nil {
		return types.TransactWriteItem{}, errors.New("appointments: appointment cannot be nil")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if appt.CreatedAt == "" {
		appt.CreatedAt = now
	}
	appt.UpdatedAt = now
	appt.ApptKey = Key(appt.Date, appt.StartTime, appt.ID)

	item, err := attributevalue.MarshalMap(appt)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("appointments: failed to marshal appointment: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(apptKey)"),
		},
	}, nil
}
