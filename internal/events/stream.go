package events

import (
	"errors"
	"fmt"
	"strings"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/brightpaw/vetcare-platform/internal/booking"
)

// BookingKind identifies which bookings table a stream record came from.
type BookingKind string

const (
	KindBoarding  BookingKind = "boarding"
	KindTransport BookingKind = "transport"
)

// ErrNotInsert is returned for stream records that are not new-document inserts.
var ErrNotInsert = errors.New("events: record is not an insert")

// KindFromStreamARN extracts the booking kind from a stream record's source
// table. The ARN embeds the table name as .../table/<name>/stream/<ts>.
func KindFromStreamARN(arn, boardingTable, transportTable string) (BookingKind, bool) {
	parts := strings.Split(arn, "/")
	for i, p := range parts {
		if p == "table" && i+1 < len(parts) {
			switch parts[i+1] {
			case boardingTable:
				return KindBoarding, true
			case transportTable:
				return KindTransport, true
			}
			return "", false
		}
	}
	return "", false
}

// DecodeBoarding unmarshals a boarding booking from a stream record's new image.
func DecodeBoarding(record lambdaevents.DynamoDBEventRecord) (*booking.BoardingBooking, error) {
	image, err := newImage(record)
	if err != nil {
		return nil, err
	}
	var b booking.BoardingBooking
	if err := attributevalue.UnmarshalMap(image, &b); err != nil {
		return nil, fmt.Errorf("events: decode boarding booking: %w", err)
	}
	return &b, nil
}

// DecodeTransport unmarshals a transport booking from a stream record's new image.
func DecodeTransport(record lambdaevents.DynamoDBEventRecord) (*booking.TransportBooking, error) {
	image, err := newImage(record)
	if err != nil {
		return nil, err
	}
	var t booking.TransportBooking
	if err := attributevalue.UnmarshalMap(image, &t); err != nil {
		return nil, fmt.Errorf("events: decode transport booking: %w", err)
	}
	return &t, nil
}

func newImage(record lambdaevents.DynamoDBEventRecord) (map[string]types.AttributeValue, error) {
	if record.EventName != string(lambdaevents.DynamoDBOperationTypeInsert) {
		return nil, ErrNotInsert
	}
	if len(record.Change.NewImage) == 0 {
		return nil, fmt.Errorf("events: insert record has no new image")
	}
	return convertImage(record.Change.NewImage)
}

// convertImage bridges the Lambda event attribute representation to the SDK's
// so the documents can be unmarshaled with the same dynamodbav tags the
// writers use.
func convertImage(image map[string]lambdaevents.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		av, err := convertValue(v)
		if err != nil {
			return nil, fmt.Errorf("events: attribute %q: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

func convertValue(v lambdaevents.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch v.DataType() {
	case lambdaevents.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}, nil
	case lambdaevents.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}, nil
	case lambdaevents.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}, nil
	case lambdaevents.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: v.IsNull()}, nil
	case lambdaevents.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}, nil
	case lambdaevents.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}, nil
	case lambdaevents.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}, nil
	case lambdaevents.DataTypeList:
		list := make([]types.AttributeValue, 0, len(v.List()))
		for _, item := range v.List() {
			av, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case lambdaevents.DataTypeMap:
		m, err := convertImage(v.Map())
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %v", v.DataType())
	}
}
