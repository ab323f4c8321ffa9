package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightpaw/vetcare-platform/internal/appointments"
	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/internal/schedule"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

var tracer = otel.Tracer("vetcare/booking")

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	TransactWriteItems(context.Context, *dynamodb.TransactWriteItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Service creates booking documents and books slots. Booking a slot is one
// transaction that inserts the appointment and flips the slot to reserved,
// so the two collections cannot drift for this path.
type Service struct {
	client         dynamoAPI
	slotStore      *schedule.Store
	apptRepo       *appointments.Repository
	boardingTable  string
	transportTable string
	metrics        *metrics.BookingMetrics
	logger         *logging.Logger
}

// NewService builds the booking service.
func NewService(client dynamoAPI, slotStore *schedule.Store, apptRepo *appointments.Repository,
	boardingTable, transportTable string, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if client == nil {
		panic("booking: dynamodb client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		client:         client,
		slotStore:      slotStore,
		apptRepo:       apptRepo,
		boardingTable:  boardingTable,
		transportTable: transportTable,
		metrics:        m,
		logger:         logger,
	}
}

// BookSlot inserts a confirmed appointment and reserves its slot atomically.
// Returns ErrSlotTaken when the slot is missing or already reserved.
func (s *Service) BookSlot(ctx context.Context, req *SlotBookingRequest) (*appointments.Appointment, error) {
	ctx, span := tracer.Start(ctx, "booking.BookSlot")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("provider_id", req.ProviderID),
		attribute.String("date", req.Date),
	)

	appt := &appointments.Appointment{
		ID:           uuid.NewString(),
		ProviderID:   req.ProviderID,
		ProviderName: req.ProviderName,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		PetName:      req.PetName,
		Notes:        req.Notes,
		Status:       appointments.StatusConfirmed,
	}
	insert, err := s.apptRepo.InsertItem(appt)
	if err != nil {
		return nil, err
	}
	reserve := s.slotStore.ReserveItem(req.ProviderID, schedule.Key(req.Date, req.StartTime))

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{insert, reserve},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) && hasConditionFailure(canceled) {
			s.metrics.ObserveBooking("slot", "conflict")
			return nil, ErrSlotTaken
		}
		s.metrics.ObserveBooking("slot", "error")
		return nil, fmt.Errorf("booking: failed to book slot: %w", err)
	}

	s.metrics.ObserveBooking("slot", "ok")
	s.logger.Info("slot booked",
		"provider_id", req.ProviderID,
		"date", req.Date,
		"start_time", req.StartTime,
		"appointment_id", appt.ID,
	)
	return appt, nil
}

// CreateBoarding inserts a boarding booking document. The notifier trigger
// picks it up from the table's stream; no email is sent inline.
func (s *Service) CreateBoarding(ctx context.Context, b *BoardingBooking) (*BoardingBooking, error) {
	ctx, span := tracer.Start(ctx, "booking.CreateBoarding")
	defer span.End()

	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.ID = uuid.NewString()
	b.EmailSent = false
	b.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.putDocument(ctx, s.boardingTable, b); err != nil {
		s.metrics.ObserveBooking("boarding", "error")
		return nil, fmt.Errorf("booking: failed to create boarding booking: %w", err)
	}
	s.metrics.ObserveBooking("boarding", "ok")
	s.logger.Info("boarding booking created", "booking_id", b.ID, "pet", b.PetName)
	return b, nil
}

// CreateTransport inserts a pet-transportation booking document.
func (s *Service) CreateTransport(ctx context.Context, b *TransportBooking) (*TransportBooking, error) {
	ctx, span := tracer.Start(ctx, "booking.CreateTransport")
	defer span.End()

	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.ID = uuid.NewString()
	b.EmailSent = false
	b.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.putDocument(ctx, s.transportTable, b); err != nil {
		s.metrics.ObserveBooking("transport", "error")
		return nil, fmt.Errorf("booking: failed to create transport booking: %w", err)
	}
	s.metrics.ObserveBooking("transport", "ok")
	s.logger.Info("transport booking created", "booking_id", b.ID, "pet", b.PetName)
	return b, nil
}

func (s *Service) putDocument(ctx context.Context, table string, doc any) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	return err
}

func hasConditionFailure(canceled *types.TransactionCanceledException) bool {
	for _, reason := range canceled.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
