package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/brightpaw/vetcare-platform/cmd/mainconfig"
	appconfig "github.com/brightpaw/vetcare-platform/internal/config"
	"github.com/brightpaw/vetcare-platform/internal/events"
	"github.com/brightpaw/vetcare-platform/internal/notify"
	"github.com/brightpaw/vetcare-platform/internal/observability/metrics"
	"github.com/brightpaw/vetcare-platform/pkg/logging"
)

// marker is the post-send bookkeeping port, split out for tests.
type marker interface {
	Mark(ctx context.Context, tableName, bookingID string) (bool, error)
}

// notifier handles booking-created stream events: render, send, mark.
type notifier struct {
	mailer         *notify.Mailer
	marker         marker
	boardingTable  string
	transportTable string
	logger         *logging.Logger
}

// handle processes one stream batch. A send failure returns an error so the
// batch is redelivered; the emailSent mark keeps redelivery from emailing
// twice for documents that already went out.
func (n *notifier) handle(ctx context.Context, evt lambdaevents.DynamoDBEvent) error {
	for _, record := range evt.Records {
		kind, ok := events.KindFromStreamARN(record.EventSourceArn, n.boardingTable, n.transportTable)
		if !ok {
			n.logger.Warn("stream record from unexpected table", "arn", record.EventSourceArn)
			continue
		}
		if err := n.handleRecord(ctx, kind, record); err != nil {
			return err
		}
	}
	return nil
}

func (n *notifier) handleRecord(ctx context.Context, kind events.BookingKind, record lambdaevents.DynamoDBEventRecord) error {
	switch kind {
	case events.KindBoarding:
		b, err := events.DecodeBoarding(record)
		if err != nil {
			return n.skipBadRecord(record, err)
		}
		if b.EmailSent {
			n.logger.Info("boarding booking already emailed, skipping", "booking_id", b.ID)
			return nil
		}
		if err := n.mailer.SendBoardingEmails(ctx, b); err != nil {
			return fmt.Errorf("boarding booking %s: %w", b.ID, err)
		}
		return n.mark(ctx, n.boardingTable, b.ID)

	case events.KindTransport:
		t, err := events.DecodeTransport(record)
		if err != nil {
			return n.skipBadRecord(record, err)
		}
		if t.EmailSent {
			n.logger.Info("transport booking already emailed, skipping", "booking_id", t.ID)
			return nil
		}
		if err := n.mailer.SendTransportEmails(ctx, t); err != nil {
			return fmt.Errorf("transport booking %s: %w", t.ID, err)
		}
		return n.mark(ctx, n.transportTable, t.ID)
	}
	return nil
}

// skipBadRecord drops non-insert and undecodable records. Returning an error
// for these would wedge the shard behind a poison record.
func (n *notifier) skipBadRecord(record lambdaevents.DynamoDBEventRecord, err error) error {
	if errors.Is(err, events.ErrNotInsert) {
		return nil
	}
	n.logger.Error("undecodable stream record, skipping", "error", err, "event_id", record.EventID)
	return nil
}

func (n *notifier) mark(ctx context.Context, table, bookingID string) error {
	won, err := n.marker.Mark(ctx, table, bookingID)
	if err != nil {
		// The email went out; surfacing the error would resend it on retry.
		n.logger.Error("failed to mark booking as emailed", "error", err, "booking_id", bookingID)
		return nil
	}
	if !won {
		n.logger.Info("booking was marked by a concurrent delivery", "booking_id", bookingID)
	}
	return nil
}

func buildSender(cfg *appconfig.Config, sesClient *sesv2.Client, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			return s
		}
	case "ses":
		if s := notify.NewSESSender(sesClient, notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s
		}
	}
	logger.Warn("no email provider configured, using stub sender", "provider", cfg.EmailProvider)
	return notify.NewStubEmailSender(logger)
}

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	sender := buildSender(cfg, sesv2.NewFromConfig(awsCfg), logger)
	// Registered against the default registerer so the collector is visible
	// to whatever exporter the runtime attaches.
	emailMetrics := metrics.NewNotifyMetrics(nil)
	n := &notifier{
		mailer:         notify.NewMailer(sender, cfg.BusinessEmail, cfg.FromName, emailMetrics, logger),
		marker:         events.NewEmailMarker(dynamodb.NewFromConfig(awsCfg), logger),
		boardingTable:  cfg.BoardingTable,
		transportTable: cfg.TransportTable,
		logger:         logger,
	}

	lambda.Start(n.handle)
}

var _ marker = (*events.EmailMarker)(nil)
