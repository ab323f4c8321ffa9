package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	queryIn  *dynamodb.QueryInput
	queryOut *dynamodb.QueryOutput
	queryErr error

	putIn  *dynamodb.PutItemInput
	putErr error

	deleteIn  *dynamodb.DeleteItemInput
	deleteErr error
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryIn = in
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryOut == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteIn = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestStoreListDayQueriesWholeDay(t *testing.T) {
	slot := Slot{ID: "s1", ProviderID: "dr-1", Date: "2026-09-14", StartTime: "09:00", EndTime: "10:00"}
	item, err := attributevalue.MarshalMap(slot)
	if err != nil {
		t.Fatal(err)
	}
	fake := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}}
	store := NewStore(fake, "slots", nil)

	got, err := store.ListDay(context.Background(), "dr-1", "2026-09-14")
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("got %+v", got)
	}

	vals := fake.queryIn.ExpressionAttributeValues
	if v := vals[":dayStart"].(*types.AttributeValueMemberS).Value; v != "2026-09-14#00:00" {
		t.Errorf(":dayStart = %q", v)
	}
	if v := vals[":dayEnd"].(*types.AttributeValueMemberS).Value; v != "2026-09-14#23:59" {
		t.Errorf(":dayEnd = %q", v)
	}
}

func TestStorePutSetsKeyAndGuard(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewStore(fake, "slots", nil)

	slot := &Slot{ID: "s1", ProviderID: "dr-1", Date: "2026-09-14", StartTime: "09:00", EndTime: "10:00"}
	if err := store.Put(context.Background(), slot); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if slot.SlotKey != "2026-09-14#09:00" {
		t.Errorf("SlotKey = %q", slot.SlotKey)
	}
	if slot.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
	if got := aws.ToString(fake.putIn.ConditionExpression); got != "attribute_not_exists(slotKey)" {
		t.Errorf("ConditionExpression = %q", got)
	}
}

func TestStoreDeleteMapsConditionFailure(t *testing.T) {
	fake := &fakeDynamo{deleteErr: &types.ConditionalCheckFailedException{}}
	store := NewStore(fake, "slots", nil)

	err := store.Delete(context.Background(), "dr-1", "2026-09-14#09:00")
	if !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("err = %v, want ErrSlotNotFound", err)
	}
}

func TestStoreReserveItemShape(t *testing.T) {
	store := NewStore(&fakeDynamo{}, "slots", nil)

	item := store.ReserveItem("dr-1", "2026-09-14#09:00")
	if item.Update == nil {
		t.Fatal("expected an Update transact item")
	}
	if got := aws.ToString(item.Update.ConditionExpression); got != "attribute_exists(slotKey) AND isReserved = :f" {
		t.Errorf("ConditionExpression = %q", got)
	}
	if got := aws.ToString(item.Update.UpdateExpression); got != "SET isReserved = :t" {
		t.Errorf("UpdateExpression = %q", got)
	}
}
