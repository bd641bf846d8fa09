package notify

import (
	"context"

	"github.com/rs/zerolog"

	"checkin_syria/internal/adapters/observability"
	"checkin_syria/internal/domain"
)

// Log writes confirmed bookings to the structured log. It is the default
// sink when no broker is configured.
type Log struct{ l zerolog.Logger }

func NewLog(l zerolog.Logger) *Log { return &Log{l: l} }

func (n *Log) BookingConfirmed(ctx context.Context, c domain.Confirmation, d domain.Draft) error {
	observability.ObserveConfirmation()
	n.l.Info().
		Str("submission", c.SubmissionID).
		Str("room", c.RoomID).
		Str("room_name", c.RoomName).
		Int("guests", c.Guests).
		Str("check_in", c.CheckIn.String()).
		Str("check_out", c.CheckOut.String()).
		Float64("total", c.Total).
		Str("email", d.Email).
		Bool("special_requests", d.SpecialRequests != "").
		Msg("booking submitted")
	return nil
}
