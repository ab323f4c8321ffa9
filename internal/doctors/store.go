package doctors

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

type dynamoAPI interface {
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store persists doctor profiles. The table is keyed by providerId alone;
// the roster is small enough that the public listing is a Scan.
type Store struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
	now       func() time.Time
}

// NewStore builds a doctor profile store backed by DynamoDB.
func NewStore(client dynamoAPI, tableName string, logger *logging.Logger) *Store {
	if client == nil {
		panic("doctors: dynamodb client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{client: client, tableName: tableName, logger: logger, now: time.Now}
}

// Get loads one profile by provider id.
func (s *Store) Get(ctx context.Context, providerID string) (*Profile, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"providerId": &types.AttributeValueMemberS{Value: providerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("doctors: failed to load profile %s: %w", providerID, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var p Profile
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("doctors: failed to decode profile: %w", err)
	}
	return &p, nil
}

// List returns all doctor profiles.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("doctors: failed to list profiles: %w", err)
		}
		for _, item := range out.Items {
			var p Profile
			if err := attributevalue.UnmarshalMap(item, &p); err != nil {
				return nil, fmt.Errorf("doctors: failed to decode profile: %w", err)
			}
			profiles = append(profiles, p)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return profiles, nil
}

// Save writes the full profile document, stamping CreatedAt on first write.
func (s *Store) Save(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	now := s.now().UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("doctors: failed to marshal profile: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("doctors: failed to persist profile %s: %w", p.ProviderID, err)
	}
	return nil
}
