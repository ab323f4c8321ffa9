package events

import (
	"testing"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertRecord(image map[string]lambdaevents.DynamoDBAttributeValue) lambdaevents.DynamoDBEventRecord {
	return lambdaevents.DynamoDBEventRecord{
		EventName: string(lambdaevents.DynamoDBOperationTypeInsert),
		Change: lambdaevents.DynamoDBStreamRecord{
			NewImage: image,
		},
	}
}

func TestKindFromStreamARN(t *testing.T) {
	tests := []struct {
		name string
		arn  string
		kind BookingKind
		ok   bool
	}{
		{
			name: "boarding table",
			arn:  "arn:aws:dynamodb:us-east-1:123456789012:table/boarding_bookings/stream/2026-09-01T00:00:00.000",
			kind: KindBoarding,
			ok:   true,
		},
		{
			name: "transport table",
			arn:  "arn:aws:dynamodb:us-east-1:123456789012:table/pet_transportation/stream/2026-09-01T00:00:00.000",
			kind: KindTransport,
			ok:   true,
		},
		{
			name: "unrelated table",
			arn:  "arn:aws:dynamodb:us-east-1:123456789012:table/appointments/stream/2026-09-01T00:00:00.000",
			ok:   false,
		},
		{
			name: "garbage arn",
			arn:  "not-an-arn",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindFromStreamARN(tt.arn, "boarding_bookings", "pet_transportation")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestDecodeBoarding(t *testing.T) {
	record := insertRecord(map[string]lambdaevents.DynamoDBAttributeValue{
		"id":         lambdaevents.NewStringAttribute("b-1"),
		"ownerName":  lambdaevents.NewStringAttribute("Dana Reyes"),
		"ownerEmail": lambdaevents.NewStringAttribute("dana@example.com"),
		"petName":    lambdaevents.NewStringAttribute("Biscuit"),
		"petType":    lambdaevents.NewStringAttribute("dog"),
		"startDate":  lambdaevents.NewStringAttribute("2026-09-20"),
		"endDate":    lambdaevents.NewStringAttribute("2026-09-24"),
		"emailSent":  lambdaevents.NewBooleanAttribute(false),
		"createdAt":  lambdaevents.NewStringAttribute("2026-09-01T10:00:00Z"),
	})

	b, err := DecodeBoarding(record)
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, "Dana Reyes", b.OwnerName)
	assert.Equal(t, "Biscuit", b.PetName)
	assert.Equal(t, "2026-09-20", b.StartDate)
	assert.False(t, b.EmailSent)
}

func TestDecodeTransport(t *testing.T) {
	record := insertRecord(map[string]lambdaevents.DynamoDBAttributeValue{
		"id":            lambdaevents.NewStringAttribute("t-1"),
		"ownerName":     lambdaevents.NewStringAttribute("Dana Reyes"),
		"ownerEmail":    lambdaevents.NewStringAttribute("dana@example.com"),
		"petName":       lambdaevents.NewStringAttribute("Biscuit"),
		"pickupAddress": lambdaevents.NewStringAttribute("12 Elm St"),
		"dropoffAddress": lambdaevents.NewStringAttribute("Clinic"),
		"date":          lambdaevents.NewStringAttribute("2026-09-21"),
		"time":          lambdaevents.NewStringAttribute("09:30"),
		"emailSent":     lambdaevents.NewBooleanAttribute(false),
	})

	tr, err := DecodeTransport(record)
	require.NoError(t, err)
	assert.Equal(t, "t-1", tr.ID)
	assert.Equal(t, "12 Elm St", tr.Pickup)
	assert.Equal(t, "Clinic", tr.Dropoff)
	assert.Equal(t, "09:30", tr.Time)
}

func TestDecode_RejectsNonInsert(t *testing.T) {
	record := lambdaevents.DynamoDBEventRecord{
		EventName: string(lambdaevents.DynamoDBOperationTypeModify),
		Change: lambdaevents.DynamoDBStreamRecord{
			NewImage: map[string]lambdaevents.DynamoDBAttributeValue{
				"id": lambdaevents.NewStringAttribute("b-1"),
			},
		},
	}

	_, err := DecodeBoarding(record)
	assert.ErrorIs(t, err, ErrNotInsert)
}

func TestDecode_EmptyImage(t *testing.T) {
	record := insertRecord(nil)
	_, err := DecodeBoarding(record)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotInsert)
}
