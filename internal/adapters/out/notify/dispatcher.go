// Package notify fans assignment lifecycle events out over Twilio SMS and
// SendGrid email. Delivery is best effort: a channel that fails is logged and
// skipped, the other channel still runs, and the dispatcher never reports a
// partial failure back to its caller as fatal.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fieldwork/internal/adapters/out/postgres/userrepo"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

var (
	// ErrFromPhoneIsRequired happens when the dispatcher is constructed
	// without a sending phone number.
	ErrFromPhoneIsRequired = errors.New("notification from phone is required")

	// ErrFromEmailIsRequired happens when the dispatcher is constructed
	// without a sending email address.
	ErrFromEmailIsRequired = errors.New("notification from email is required")

	// ErrOpsEmailIsRequired happens when the dispatcher is constructed
	// without an operations team address.
	ErrOpsEmailIsRequired = errors.New("operations team email is required")

	// ErrTwilioClientIsRequired happens when the dispatcher is constructed
	// without a Twilio client.
	ErrTwilioClientIsRequired = errors.New("twilio client is required")

	// ErrSendGridClientIsRequired happens when the dispatcher is constructed
	// without a SendGrid client.
	ErrSendGridClientIsRequired = errors.New("sendgrid client is required")
)

// Config carries the sender identities the dispatcher signs messages with.
type Config struct {
	FromName  string
	FromPhone string
	FromEmail string
	OpsEmail  string
}

func (c Config) validate() error {
	if c.FromPhone == "" {
		return ErrFromPhoneIsRequired
	}
	if c.FromEmail == "" {
		return ErrFromEmailIsRequired
	}
	if c.OpsEmail == "" {
		return ErrOpsEmailIsRequired
	}

	return nil
}

// contact is a resolved notification recipient.
type contact struct {
	Name  string
	Phone string
	Email string
}

// smsSender and emailSender wrap the vendor clients so dispatch logic can be
// tested without network calls.
type smsSender interface {
	Send(to string, body string) error
}

type emailSender interface {
	Send(toName string, toEmail string, subject string, body string) error
}

type twilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

func (s twilioSMSSender) Send(to string, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

type sendgridEmailSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func (s sendgridEmailSender) Send(toName string, toEmail string, subject string, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	_, err := s.client.Send(message)
	return err
}

// Dispatcher implements ports.NotificationDispatcher. Recipient contacts are
// resolved from the database at dispatch time, so callers only hand over
// identifiers.
type Dispatcher struct {
	db     *gorm.DB
	users  *userrepo.GormUserReader
	sms    smsSender
	email  emailSender
	ops    contact
	logger *slog.Logger
}

// NewDispatcher creates a notification dispatcher. All sender configuration
// is required up front; a half-configured dispatcher fails here rather than
// on the first lifecycle event.
func NewDispatcher(
	db *gorm.DB,
	twilioClient *twilio.RestClient,
	sendgridClient *sendgrid.Client,
	config Config,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if twilioClient == nil {
		return nil, ErrTwilioClientIsRequired
	}
	if sendgridClient == nil {
		return nil, ErrSendGridClientIsRequired
	}

	return &Dispatcher{
		db:    db,
		users: userrepo.NewGormUserReader(db),
		sms:   twilioSMSSender{client: twilioClient, from: config.FromPhone},
		email: sendgridEmailSender{
			client:    sendgridClient,
			fromName:  config.FromName,
			fromEmail: config.FromEmail,
		},
		ops:    contact{Name: "Operations", Email: config.OpsEmail},
		logger: logger.With("component", "notify"),
	}, nil
}

// NotifyWorkerAssigned tells the worker a new assignment is waiting for a
// response.
func (d *Dispatcher) NotifyWorkerAssigned(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error {
	worker, err := d.workerContact(ctx, bookingID)
	if err != nil {
		return err
	}

	subject := "New assignment"
	body := fmt.Sprintf(
		"Hi %s, you have a new assignment (%s). Please accept or reject it in the app.",
		worker.Name, assignmentID.String(),
	)
	d.deliver(ctx, worker, subject, body, assignmentID, bookingID)

	return nil
}

// NotifyAssignmentAccepted tells the customer their worker accepted.
func (d *Dispatcher) NotifyAssignmentAccepted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error {
	customer, err := d.customerContact(ctx, bookingID)
	if err != nil {
		return err
	}

	subject := "Your booking is confirmed"
	body := fmt.Sprintf(
		"Hi %s, a professional has accepted your booking and will arrive as scheduled.",
		customer.Name,
	)
	d.deliver(ctx, customer, subject, body, assignmentID, bookingID)

	return nil
}

// NotifyAssignmentRejected tells the operations team the booking needs a new
// worker.
func (d *Dispatcher) NotifyAssignmentRejected(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID, reason string) error {
	subject := "Assignment rejected"
	body := fmt.Sprintf(
		"Assignment %s on booking %s was rejected (%s). The booking needs reassignment.",
		assignmentID.String(), bookingID.String(), reason,
	)
	d.deliver(ctx, d.ops, subject, body, assignmentID, bookingID)

	return nil
}

// NotifyWorkerStarted tells the customer the work has begun.
func (d *Dispatcher) NotifyWorkerStarted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error {
	customer, err := d.customerContact(ctx, bookingID)
	if err != nil {
		return err
	}

	subject := "Work has started"
	body := fmt.Sprintf(
		"Hi %s, your professional has started working on your booking.",
		customer.Name,
	)
	d.deliver(ctx, customer, subject, body, assignmentID, bookingID)

	return nil
}

// NotifyWorkerCompleted tells the customer the work is done.
func (d *Dispatcher) NotifyWorkerCompleted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error {
	customer, err := d.customerContact(ctx, bookingID)
	if err != nil {
		return err
	}

	subject := "Service completed"
	body := fmt.Sprintf(
		"Hi %s, your booking has been completed. Thank you for using our service.",
		customer.Name,
	)
	d.deliver(ctx, customer, subject, body, assignmentID, bookingID)

	return nil
}

// deliver pushes one message through both channels. Channel failures are
// logged and swallowed; a recipient without a phone or email just skips that
// channel.
func (d *Dispatcher) deliver(
	ctx context.Context,
	recipient contact,
	subject string,
	body string,
	assignmentID kernel.UUID,
	bookingID kernel.UUID,
) {
	attrs := []any{
		"assignment_id", assignmentID.String(),
		"booking_id", bookingID.String(),
		"subject", subject,
	}

	if recipient.Phone != "" {
		if err := d.sms.Send(recipient.Phone, subject+": "+body); err != nil {
			d.logger.WarnContext(ctx, "sms delivery failed", append(attrs, "error", err)...)
		}
	}
	if recipient.Email != "" {
		if err := d.email.Send(recipient.Name, recipient.Email, subject, body); err != nil {
			d.logger.WarnContext(ctx, "email delivery failed", append(attrs, "error", err)...)
		}
	}
}

// customerContact resolves the customer who owns the booking.
func (d *Dispatcher) customerContact(ctx context.Context, bookingID kernel.UUID) (contact, error) {
	var rawUserID uuid.UUID
	err := d.db.WithContext(ctx).
		Raw("SELECT user_id FROM bookings WHERE id = ?", bookingID.Bytes()).
		Row().Scan(&rawUserID)
	if err != nil {
		return contact{}, err
	}

	userID, err := kernel.UUIDFromBytes(rawUserID[:])
	if err != nil {
		return contact{}, err
	}

	customer, err := d.users.GetContact(ctx, userID)
	if err != nil {
		return contact{}, err
	}

	return contact{Name: customer.Name, Phone: customer.Phone, Email: customer.Email}, nil
}

// workerContact resolves the worker on the booking's latest assignment.
func (d *Dispatcher) workerContact(ctx context.Context, bookingID kernel.UUID) (contact, error) {
	var recipient contact
	err := d.db.WithContext(ctx).Raw(`
		SELECT w.name, w.phone, w.email
		FROM workers w
		JOIN assignments a ON a.worker_id = w.user_id
		WHERE a.booking_id = ?
		ORDER BY a.assigned_at DESC
		LIMIT 1
	`, bookingID.Bytes()).Row().Scan(&recipient.Name, &recipient.Phone, &recipient.Email)
	if err != nil {
		return contact{}, err
	}

	return recipient, nil
}
