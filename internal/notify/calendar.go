package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/pkg/rabbitmq"
	"go.uber.org/zap"
)

// CalendarSync mirrors confirmed bookings into an external calendar.
// Best-effort only: the caller logs failures and keeps going.
type CalendarSync interface {
	CreateEvent(ctx context.Context, booking *models.Booking) (string, error)
	DeleteEvent(ctx context.Context, booking *models.Booking) error
}

type calendarCommand struct {
	EventID   string    `json:"event_id"`
	BookingID uint      `json:"booking_id"`
	TeacherID uint      `json:"teacher_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Title     string    `json:"title"`
}

type amqpCalendar struct {
	pub    *rabbitmq.Publisher
	logger *zap.Logger
}

// NewAMQPCalendar publishes calendar commands for an out-of-process sync
// worker. The event id is minted here so the booking row can reference it
// before the worker ever runs.
func NewAMQPCalendar(pub *rabbitmq.Publisher, logger *zap.Logger) CalendarSync {
	return &amqpCalendar{pub: pub, logger: logger}
}

func (c *amqpCalendar) CreateEvent(_ context.Context, booking *models.Booking) (string, error) {
	eventID := uuid.NewString()
	cmd := calendarCommand{
		EventID:   eventID,
		BookingID: booking.ID,
		TeacherID: booking.TeacherID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Title:     fmt.Sprintf("%s session", booking.SessionType),
	}
	if err := c.pub.Publish("calendar.event.create", cmd); err != nil {
		return "", err
	}
	return eventID, nil
}

func (c *amqpCalendar) DeleteEvent(_ context.Context, booking *models.Booking) error {
	if booking.CalendarEventID == "" {
		return nil
	}
	return c.pub.Publish("calendar.event.delete", calendarCommand{
		EventID:   booking.CalendarEventID,
		BookingID: booking.ID,
	})
}

type noopCalendar struct{}

func NewNoopCalendar() CalendarSync { return noopCalendar{} }

func (noopCalendar) CreateEvent(context.Context, *models.Booking) (string, error) {
	return uuid.NewString(), nil
}

func (noopCalendar) DeleteEvent(context.Context, *models.Booking) error { return nil }
