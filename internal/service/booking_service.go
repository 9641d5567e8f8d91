package service

import (
	"context"
	"errors"
	"time"

	"github.com/studiobook/studio-booking/internal/apperr"
	"github.com/studiobook/studio-booking/internal/clock"
	"github.com/studiobook/studio-booking/internal/ledger"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/notify"
	"github.com/studiobook/studio-booking/internal/repository"
	"github.com/studiobook/studio-booking/internal/scheduling"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RequestBookingInput struct {
	CustomerID     *uint
	TeacherID      uint // 0 = assign any free teacher
	PackageID      *uint
	SessionType    models.SessionType
	StartTime      time.Time
	EndTime        time.Time
	Notes          string
	CreatedBy      string
	IdempotencyKey string
	// AutoConfirm creates the booking directly confirmed, for sessions a
	// teacher enters manually. Debits the package immediately.
	AutoConfirm bool
}

type ConfirmInput struct {
	ConfirmedBy string
	// Optional slot override; both must be set to take effect. The new slot
	// is re-checked against capacity before the transition commits.
	StartTime *time.Time
	EndTime   *time.Time
}

type BlockInput struct {
	TeacherID uint
	StartTime time.Time
	EndTime   time.Time
	Notes     string
	CreatedBy string
}

type BookingService interface {
	RequestBooking(ctx context.Context, in RequestBookingInput) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, id uint, in ConfirmInput) (*models.Booking, error)
	RejectBooking(ctx context.Context, id uint, reason string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id uint, reason string) (*models.Booking, error)
	RequestCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error)
	ApproveCancellation(ctx context.Context, id uint) (*models.Booking, error)
	RejectCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error)
	MarkAttendance(ctx context.Context, id uint, outcome models.BookingStatus) (*models.Booking, error)
	CreateBlock(ctx context.Context, in BlockInput) (*models.Booking, error)
	RemoveBlock(ctx context.Context, id uint) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListTeacherBookings(ctx context.Context, teacherID uint, from, to time.Time) ([]models.Booking, error)
	CompleteElapsed(ctx context.Context) (int64, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	packages  repository.PackageRepository
	customers repository.CustomerRepository
	teachers  repository.TeacherRepository
	notifier  notify.Notifier
	calendar  notify.CalendarSync
	clock     clock.Clock
	logger    *zap.Logger
	advance   time.Duration
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	customers repository.CustomerRepository,
	teachers repository.TeacherRepository,
	notifier notify.Notifier,
	calendar notify.CalendarSync,
	clk clock.Clock,
	logger *zap.Logger,
	advanceDays int,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		packages:  packages,
		customers: customers,
		teachers:  teachers,
		notifier:  notifier,
		calendar:  calendar,
		clock:     clk,
		logger:    logger,
		advance:   time.Duration(advanceDays) * 24 * time.Hour,
	}
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.NotFound, msg, err)
	}
	return err
}

func (s *bookingService) RequestBooking(ctx context.Context, in RequestBookingInput) (*models.Booking, error) {
	switch in.SessionType {
	case models.SessionPrivate, models.SessionDuo, models.SessionGroup:
	case models.SessionBlocked:
		return nil, apperr.New(apperr.Validation, "blocks are created through the block endpoint, not as bookings")
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown session type %q", in.SessionType)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperr.New(apperr.Validation, "end time must be after start time")
	}
	if in.CustomerID == nil {
		return nil, apperr.New(apperr.Validation, "customer is required for a booking request")
	}

	now := s.clock.Now()
	if in.StartTime.Before(now) {
		return nil, apperr.New(apperr.Validation, "booking must start in the future")
	}
	if in.StartTime.After(now.Add(s.advance)) {
		return nil, apperr.Newf(apperr.Validation,
			"booking starts beyond the advance window of %d days", int(s.advance.Hours())/24)
	}

	// Replayed request: hand back the booking the first attempt created.
	if in.IdempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	interval := scheduling.Interval{Start: in.StartTime, End: in.EndTime}

	var result *models.Booking
	err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		// Serializes every check-then-create sequence studio-wide; without it
		// two concurrent requests can both pass the capacity check.
		if err := s.bookings.LockStudio(ctx, tx); err != nil {
			return err
		}

		if in.PackageID != nil {
			if err := s.checkPackage(ctx, tx, in, now); err != nil {
				return err
			}
		}

		overlapping, err := s.bookings.FindActiveOverlapping(ctx, tx, in.StartTime, in.EndTime)
		if err != nil {
			return err
		}

		// Double-booking is a harder error than capacity contention and
		// should fail first with a specific message.
		if _, ok := scheduling.ExistsOverlap(overlapping, interval, scheduling.ByCustomer(*in.CustomerID)); ok {
			return apperr.New(apperr.Conflict, "customer already has a booking overlapping this time")
		}

		teacherID := in.TeacherID
		if teacherID == 0 {
			teacherID, err = s.assignTeacher(ctx, overlapping, interval)
			if err != nil {
				return err
			}
		} else {
			if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
				return notFound(err, "teacher not found")
			}
			if _, ok := scheduling.ExistsOverlap(overlapping, interval, scheduling.ByTeacher(teacherID)); ok {
				return apperr.New(apperr.Conflict, "teacher already has a booking overlapping this time")
			}
		}

		verdict := scheduling.EvaluateSlot(overlapping, scheduling.Candidate{
			TeacherID:   teacherID,
			CustomerID:  in.CustomerID,
			SessionType: in.SessionType,
			Interval:    interval,
		})
		if verdict.Status == scheduling.SlotBlocked {
			return apperr.New(apperr.Conflict, verdict.Reason)
		}
		if !verdict.Allows(in.SessionType) {
			return apperr.New(apperr.Conflict, verdict.Reason)
		}

		booking := &models.Booking{
			CustomerID:  in.CustomerID,
			TeacherID:   teacherID,
			PackageID:   in.PackageID,
			SessionType: in.SessionType,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Status:      models.StatusPending,
			Notes:       in.Notes,
			CreatedBy:   in.CreatedBy,
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			booking.IdempotencyKey = &key
		}
		if in.AutoConfirm {
			booking.Status = models.StatusConfirmed
			booking.ConfirmedAt = &now
			booking.ConfirmedBy = in.CreatedBy
			if in.PackageID != nil {
				ok, err := s.packages.Debit(ctx, tx, *in.PackageID)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.New(apperr.State, "package has no remaining sessions")
				}
			}
		}

		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := "booking.requested"
	if result.Status == models.StatusConfirmed {
		event = "booking.confirmed"
		s.syncCalendar(ctx, result)
	}
	s.notifier.Send(ctx, event, result)

	s.logger.Info("booking created",
		zap.Uint("booking_id", result.ID),
		zap.Uint("teacher_id", result.TeacherID),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// checkPackage validates the package against the derived ledger, never the
// stored status column.
func (s *bookingService) checkPackage(ctx context.Context, tx *gorm.DB, in RequestBookingInput, now time.Time) error {
	pkg, err := s.packages.FindByIDForUpdate(ctx, tx, *in.PackageID)
	if err != nil {
		return notFound(err, "package not found")
	}
	if pkg.CustomerID != *in.CustomerID {
		return apperr.New(apperr.Validation, "package belongs to a different customer")
	}
	if !pkg.CoversTime(in.StartTime) {
		return apperr.New(apperr.Validation, "booking falls outside the package validity period")
	}

	history, err := s.bookings.FindByPackage(ctx, tx, pkg.ID)
	if err != nil {
		return err
	}
	snap := ledger.Build(pkg, history, now)
	if status := ledger.Status(pkg, snap.Debited, now); status != models.PackageActive {
		return apperr.Newf(apperr.State, "package is %s", status)
	}
	if snap.Available() <= 0 {
		return apperr.New(apperr.State, "package has no sessions available to book")
	}
	return nil
}

// assignTeacher picks the first active teacher without an overlapping booking.
func (s *bookingService) assignTeacher(ctx context.Context, overlapping []models.Booking, interval scheduling.Interval) (uint, error) {
	teachers, err := s.teachers.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range teachers {
		if _, ok := scheduling.ExistsOverlap(overlapping, interval, scheduling.ByTeacher(t.ID)); !ok {
			return t.ID, nil
		}
	}
	return 0, apperr.New(apperr.Conflict, "no teacher is available for this time")
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id uint, in ConfirmInput) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	now := s.clock.Now()
	override := in.StartTime != nil && in.EndTime != nil
	if override && !in.EndTime.After(*in.StartTime) {
		return nil, apperr.New(apperr.Validation, "end time must be after start time")
	}

	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		updates := map[string]any{
			"confirmed_at": now,
			"confirmed_by": in.ConfirmedBy,
		}

		if override {
			if err := s.bookings.LockStudio(ctx, tx); err != nil {
				return err
			}
			overlapping, err := s.bookings.FindActiveOverlapping(ctx, tx, *in.StartTime, *in.EndTime)
			if err != nil {
				return err
			}
			verdict := scheduling.EvaluateSlot(overlapping, scheduling.Candidate{
				TeacherID:        booking.TeacherID,
				CustomerID:       booking.CustomerID,
				SessionType:      booking.SessionType,
				Interval:         scheduling.Interval{Start: *in.StartTime, End: *in.EndTime},
				ExcludeBookingID: booking.ID,
			})
			if verdict.Status == scheduling.SlotBlocked || !verdict.Allows(booking.SessionType) {
				return apperr.New(apperr.Conflict, verdict.Reason)
			}
			updates["start_time"] = *in.StartTime
			updates["end_time"] = *in.EndTime
		}

		rows, err := s.bookings.UpdateStatusFrom(ctx, tx, id, models.StatusPending, models.StatusConfirmed, updates)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.New(apperr.State, "booking is not pending, already processed")
		}

		// The pending->confirmed transition happens exactly once per booking
		// lifetime, so this is the only debit it can ever take.
		if booking.PackageID != nil {
			ok, err := s.packages.Debit(ctx, tx, *booking.PackageID)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.New(apperr.State, "package has no remaining sessions")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.StatusConfirmed
	booking.ConfirmedAt = &now
	booking.ConfirmedBy = in.ConfirmedBy
	if override {
		booking.StartTime = *in.StartTime
		booking.EndTime = *in.EndTime
	}

	s.syncCalendar(ctx, booking)
	s.notifier.Send(ctx, "booking.confirmed", booking)

	s.logger.Info("booking confirmed", zap.Uint("booking_id", id))
	return booking, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	// A pending booking never debited its package, so no refund here.
	rows, err := s.bookings.UpdateStatusFrom(ctx, nil, id, models.StatusPending, models.StatusCancelled,
		map[string]any{"cancellation_reason": reason})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.New(apperr.State, "booking is not pending, already processed")
	}

	booking.Status = models.StatusCancelled
	booking.CancellationReason = reason
	s.notifier.Send(ctx, "booking.rejected", booking)

	s.logger.Info("booking rejected", zap.Uint("booking_id", id))
	return booking, nil
}

// CancelBooking is the staff direct-cancel path: pending or confirmed straight
// to cancelled, refunding only when the session had been debited.
func (s *bookingService) CancelBooking(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	from := booking.Status
	if from != models.StatusPending && from != models.StatusConfirmed {
		return nil, apperr.New(apperr.State, "booking is not active, already processed")
	}
	wasConfirmed := from == models.StatusConfirmed

	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.bookings.UpdateStatusFrom(ctx, tx, id, from, models.StatusCancelled,
			map[string]any{"cancellation_reason": reason})
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.New(apperr.State, "booking is not active, already processed")
		}
		if wasConfirmed && booking.PackageID != nil {
			if _, err := s.packages.Refund(ctx, tx, *booking.PackageID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.StatusCancelled
	booking.CancellationReason = reason
	if wasConfirmed {
		s.dropCalendarEvent(ctx, booking)
	}
	s.notifier.Send(ctx, "booking.cancelled", booking)

	s.logger.Info("booking cancelled by staff", zap.Uint("booking_id", id))
	return booking, nil
}

func (s *bookingService) RequestCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}
	if booking.Status != models.StatusConfirmed {
		return nil, apperr.New(apperr.State, "only a confirmed booking can be cancelled")
	}

	now := s.clock.Now()
	switch scheduling.DecideCancellation(now, booking.StartTime) {
	case scheduling.CancelRejectedStarted:
		return nil, apperr.New(apperr.Policy, "booking already started")
	case scheduling.CancelRejectedTooLate:
		return nil, apperr.Newf(apperr.Policy, "cannot cancel within %d hours of the session start",
			int(scheduling.MinCancelNotice.Hours()))
	case scheduling.CancelNeedsApproval:
		rows, err := s.bookings.UpdateStatusFrom(ctx, nil, id,
			models.StatusConfirmed, models.StatusCancellationRequested,
			map[string]any{"cancellation_reason": reason})
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, apperr.New(apperr.State, "booking is not confirmed, already processed")
		}
		booking.Status = models.StatusCancellationRequested
		booking.CancellationReason = reason
		s.notifier.Send(ctx, "booking.cancellation_requested", booking)
		s.logger.Info("cancellation requested, awaiting teacher approval", zap.Uint("booking_id", id))
		return booking, nil
	}

	// Enough notice: cancel directly with an immediate refund.
	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.bookings.UpdateStatusFrom(ctx, tx, id,
			models.StatusConfirmed, models.StatusCancelled,
			map[string]any{"cancellation_reason": reason})
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.New(apperr.State, "booking is not confirmed, already processed")
		}
		if booking.PackageID != nil {
			if _, err := s.packages.Refund(ctx, tx, *booking.PackageID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.StatusCancelled
	booking.CancellationReason = reason
	s.dropCalendarEvent(ctx, booking)
	s.notifier.Send(ctx, "booking.cancelled", booking)

	s.logger.Info("booking cancelled with refund", zap.Uint("booking_id", id))
	return booking, nil
}

func (s *bookingService) ApproveCancellation(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.bookings.UpdateStatusFrom(ctx, tx, id,
			models.StatusCancellationRequested, models.StatusCancelled, nil)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.New(apperr.State, "no cancellation request pending for this booking")
		}
		if booking.PackageID != nil {
			if _, err := s.packages.Refund(ctx, tx, *booking.PackageID); err != nil {
				return err
			}
		}
		// A late cancellation counts against the customer.
		if booking.CustomerID != nil {
			if err := s.customers.IncrementCancellations(ctx, tx, *booking.CustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.StatusCancelled
	s.dropCalendarEvent(ctx, booking)
	s.notifier.Send(ctx, "booking.cancelled", booking)

	s.logger.Info("cancellation approved", zap.Uint("booking_id", id))
	return booking, nil
}

func (s *bookingService) RejectCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	rows, err := s.bookings.UpdateStatusFrom(ctx, nil, id,
		models.StatusCancellationRequested, models.StatusConfirmed,
		map[string]any{"cancellation_reason": ""})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.New(apperr.State, "no cancellation request pending for this booking")
	}

	booking.Status = models.StatusConfirmed
	booking.CancellationReason = ""
	s.notifier.Send(ctx, "booking.cancellation_rejected", map[string]any{
		"booking_id": booking.ID,
		"reason":     reason,
	})

	s.logger.Info("cancellation rejected", zap.Uint("booking_id", id))
	return booking, nil
}

func (s *bookingService) MarkAttendance(ctx context.Context, id uint, outcome models.BookingStatus) (*models.Booking, error) {
	switch outcome {
	case models.StatusCompleted, models.StatusNoShow, models.StatusCancelled:
	default:
		return nil, apperr.Newf(apperr.Validation, "invalid attendance outcome %q", outcome)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}

	now := s.clock.Now()
	err = s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.bookings.UpdateStatusFrom(ctx, tx, id, models.StatusConfirmed, outcome,
			map[string]any{"attendance_marked_at": now})
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.New(apperr.State, "booking is not confirmed, already processed")
		}

		// Completed and no-show keep the debit taken at confirmation. An
		// attendance-path cancellation is a late cancellation: refund and
		// count it against the customer.
		if outcome == models.StatusCancelled {
			if booking.PackageID != nil {
				if _, err := s.packages.Refund(ctx, tx, *booking.PackageID); err != nil {
					return err
				}
			}
			if booking.CustomerID != nil {
				if err := s.customers.IncrementCancellations(ctx, tx, *booking.CustomerID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = outcome
	booking.AttendanceMarkedAt = &now
	if outcome == models.StatusCancelled {
		s.dropCalendarEvent(ctx, booking)
	}
	s.notifier.Send(ctx, "booking.attendance_marked", booking)

	s.logger.Info("attendance marked",
		zap.Uint("booking_id", id),
		zap.String("outcome", string(outcome)),
	)
	return booking, nil
}

func (s *bookingService) CreateBlock(ctx context.Context, in BlockInput) (*models.Booking, error) {
	if !in.EndTime.After(in.StartTime) {
		return nil, apperr.New(apperr.Validation, "end time must be after start time")
	}
	if _, err := s.teachers.FindByID(ctx, in.TeacherID); err != nil {
		return nil, notFound(err, "teacher not found")
	}

	interval := scheduling.Interval{Start: in.StartTime, End: in.EndTime}
	var result *models.Booking
	err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.bookings.LockStudio(ctx, tx); err != nil {
			return err
		}
		overlapping, err := s.bookings.FindActiveOverlapping(ctx, tx, in.StartTime, in.EndTime)
		if err != nil {
			return err
		}
		verdict := scheduling.EvaluateSlot(overlapping, scheduling.Candidate{
			TeacherID:   in.TeacherID,
			SessionType: models.SessionBlocked,
			Interval:    interval,
		})
		if verdict.Status == scheduling.SlotBlocked {
			return apperr.New(apperr.Conflict, verdict.Reason)
		}

		block := &models.Booking{
			TeacherID:   in.TeacherID,
			SessionType: models.SessionBlocked,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Status:      models.StatusConfirmed,
			Notes:       in.Notes,
			CreatedBy:   in.CreatedBy,
		}
		if err := s.bookings.Create(ctx, tx, block); err != nil {
			return err
		}
		result = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("teacher time blocked",
		zap.Uint("block_id", result.ID),
		zap.Uint("teacher_id", in.TeacherID),
	)
	return result, nil
}

func (s *bookingService) RemoveBlock(ctx context.Context, id uint) error {
	rows, err := s.bookings.DeleteBlock(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "block not found")
	}
	s.logger.Info("teacher block removed", zap.Uint("block_id", id))
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}
	return booking, nil
}

func (s *bookingService) ListTeacherBookings(ctx context.Context, teacherID uint, from, to time.Time) ([]models.Booking, error) {
	return s.bookings.FindByTeacherBetween(ctx, teacherID, from, to)
}

// CompleteElapsed is the sweep half that flips elapsed confirmed sessions to
// completed. Safe to run concurrently with live requests and repeatedly.
func (s *bookingService) CompleteElapsed(ctx context.Context) (int64, error) {
	return s.bookings.CompleteElapsed(ctx, s.clock.Now())
}

func (s *bookingService) syncCalendar(ctx context.Context, booking *models.Booking) {
	if booking.IsBlock() {
		return
	}
	eventID, err := s.calendar.CreateEvent(ctx, booking)
	if err != nil {
		s.logger.Warn("calendar sync failed",
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}
	if err := s.bookings.UpdateFields(ctx, nil, booking.ID, map[string]any{"calendar_event_id": eventID}); err != nil {
		s.logger.Warn("failed to store calendar event id",
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}
	booking.CalendarEventID = eventID
}

func (s *bookingService) dropCalendarEvent(ctx context.Context, booking *models.Booking) {
	if err := s.calendar.DeleteEvent(ctx, booking); err != nil {
		s.logger.Warn("calendar event delete failed",
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}
