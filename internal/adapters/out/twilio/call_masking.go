package twilio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"github.com/twilio/twilio-go"
	"gorm.io/gorm"
)

// ErrProxyServiceSidIsRequired happens when the gateway is constructed
// without a Twilio Proxy service sid.
var ErrProxyServiceSidIsRequired = errors.New("twilio proxy service sid is required")

// participantPhones are the two real numbers a masked session bridges.
type participantPhones struct {
	CustomerPhone string
	CustomerName  string
	WorkerPhone   string
	WorkerName    string
}

// CallMaskingGateway implements ports.CallMaskingGateway on Twilio Proxy.
// Session state is kept in the database keyed by booking, which is what
// makes Enable and Disable safe to retry.
type CallMaskingGateway struct {
	db  *gorm.DB
	api proxyAPI
}

// NewCallMaskingGateway creates a call masking gateway on a Twilio client.
func NewCallMaskingGateway(db *gorm.DB, client *twilio.RestClient, proxyServiceSid string) (*CallMaskingGateway, error) {
	if proxyServiceSid == "" {
		return nil, ErrProxyServiceSidIsRequired
	}

	return &CallMaskingGateway{db: db, api: newRestProxyAPI(client, proxyServiceSid)}, nil
}

// Enable provisions a masked session for the booking. A booking with an
// active session is left alone.
func (g *CallMaskingGateway) Enable(ctx context.Context, bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	var existing CallMaskingSessionDTO
	err := g.db.WithContext(ctx).
		Where("booking_id = ? AND active", bookingID.Bytes()).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	phones, err := g.resolveParticipants(ctx, bookingID)
	if err != nil {
		return err
	}

	sid, err := g.api.CreateSession(fmt.Sprintf("booking-%s", bookingID.String()))
	if err != nil {
		return err
	}
	if err = g.api.AddParticipant(sid, phones.CustomerPhone, phones.CustomerName); err != nil {
		return err
	}
	if err = g.api.AddParticipant(sid, phones.WorkerPhone, phones.WorkerName); err != nil {
		return err
	}

	dto := CallMaskingSessionDTO{
		ID:         kernel.NewUUID().Bytes(),
		BookingID:  bookingID.Bytes(),
		SessionSid: sid,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	return g.db.WithContext(ctx).Create(&dto).Error
}

// Disable tears down the booking's masked session. A booking without an
// active session is a no-op.
func (g *CallMaskingGateway) Disable(ctx context.Context, bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	var existing CallMaskingSessionDTO
	err := g.db.WithContext(ctx).
		Where("booking_id = ? AND active", bookingID.Bytes()).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = g.api.DeleteSession(existing.SessionSid); err != nil {
		return err
	}

	closedAt := time.Now().UTC()
	return g.db.WithContext(ctx).
		Model(&CallMaskingSessionDTO{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"active":    false,
			"closed_at": closedAt,
		}).Error
}

// resolveParticipants loads the booking contact and the worker on the
// booking's live assignment. The worker join goes through user_id because
// assignments carry the worker's user identifier.
func (g *CallMaskingGateway) resolveParticipants(ctx context.Context, bookingID kernel.UUID) (participantPhones, error) {
	var phones participantPhones
	rows, err := g.db.WithContext(ctx).Raw(`
		SELECT b.contact_phone, b.contact_person, w.phone, w.name
		FROM bookings b
		JOIN assignments a ON a.booking_id = b.id
		JOIN workers w ON w.user_id = a.worker_id
		WHERE b.id = ? AND a.status IN ('accepted', 'in_progress')
		ORDER BY a.assigned_at DESC
		LIMIT 1
	`, bookingID.Bytes()).Rows()
	if err != nil {
		return participantPhones{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return participantPhones{}, err
		}
		return participantPhones{}, errs.NewObjectNotFoundError("booking", bookingID.String())
	}
	if err = rows.Scan(&phones.CustomerPhone, &phones.CustomerName, &phones.WorkerPhone, &phones.WorkerName); err != nil {
		return participantPhones{}, err
	}

	return phones, nil
}
