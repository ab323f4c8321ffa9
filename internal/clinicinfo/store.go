package clinicinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

type dynamoAPI interface {
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// inboxID partitions all contact messages under one key so the newest-first
// listing is a single descending Query.
const inboxID = "inbox"

// Store persists the clinic contact card and the contact-form inbox.
type Store struct {
	client        dynamoAPI
	contactTable  string
	messagesTable string
	logger        *logging.Logger
	now           func() time.Time
}

// NewStore builds a clinicinfo store backed by DynamoDB.
func NewStore(client dynamoAPI, contactTable, messagesTable string, logger *logging.Logger) *Store {
	if client == nil {
		panic("clinicinfo: dynamodb client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		client:        client,
		contactTable:  contactTable,
		messagesTable: messagesTable,
		logger:        logger,
		now:           time.Now,
	}
}

// GetContact loads the contact card. A deployment that has never saved one
// gets an empty card, not an error.
func (s *Store) GetContact(ctx context.Context) (*ContactInfo, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.contactTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: contactDocID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("clinicinfo: failed to load contact info: %w", err)
	}
	info := &ContactInfo{ID: contactDocID}
	if len(out.Item) == 0 {
		return info, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, info); err != nil {
		return nil, fmt.Errorf("clinicinfo: failed to decode contact info: %w", err)
	}
	return info, nil
}

// UpdateContact merges the provided fields into the contact card, creating
// the document on first write, and returns the updated card.
func (s *Store) UpdateContact(ctx context.Context, update *ContactUpdate) (*ContactInfo, error) {
	if update == nil || update.Empty() {
		return s.GetContact(ctx)
	}

	sets := []string{"updatedAt = :updatedAt"}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: s.now().UTC().Format(time.RFC3339)},
	}
	names := map[string]string{}

	add := func(attr string, v *string) {
		if v == nil {
			return
		}
		placeholder := "#" + attr
		names[placeholder] = attr
		sets = append(sets, fmt.Sprintf("%s = :%s", placeholder, attr))
		values[":"+attr] = &types.AttributeValueMemberS{Value: *v}
	}
	add("phone", update.Phone)
	add("emergencyPhone", update.EmergencyPhone)
	add("email", update.Email)
	add("address", update.Address)
	add("hours", update.Hours)

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.contactTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: contactDocID},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("clinicinfo: failed to update contact info: %w", err)
	}

	info := &ContactInfo{}
	if err := attributevalue.UnmarshalMap(out.Attributes, info); err != nil {
		return nil, fmt.Errorf("clinicinfo: failed to decode contact info: %w", err)
	}
	return info, nil
}

// InsertMessage stores a contact-form submission.
func (s *Store) InsertMessage(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	msg.ID = uuid.NewString()
	msg.BoxID = inboxID
	msg.CreatedAt = s.now().UTC().Format(time.RFC3339Nano)
	msg.MsgKey = msg.CreatedAt + "#" + msg.ID

	item, err := attributevalue.MarshalMap(msg)
	if err != nil {
		return fmt.Errorf("clinicinfo: failed to marshal message: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.messagesTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(msgKey)"),
	})
	if err != nil {
		return fmt.Errorf("clinicinfo: failed to persist message: %w", err)
	}
	s.logger.Info("contact message received", "message_id", msg.ID, "from", msg.Email)
	return nil
}

// ListMessages returns up to limit messages, newest first.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(s.messagesTable),
		KeyConditionExpression: aws.String("boxId = :box"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":box": &types.AttributeValueMemberS{Value: inboxID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := s.client.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("clinicinfo: failed to list messages: %w", err)
	}
	msgs := make([]Message, 0, len(out.Items))
	for _, item := range out.Items {
		var m Message
		if err := attributevalue.UnmarshalMap(item, &m); err != nil {
			return nil, fmt.Errorf("clinicinfo: failed to decode message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
