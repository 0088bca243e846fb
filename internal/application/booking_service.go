package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
)

// SessionSource resolves the active session at operation time. Identity is
// always read here rather than trusted from callers, so ownership and
// authentication are revalidated on every mutation.
type SessionSource interface {
	Current(ctx context.Context) (Session, bool, error)
}

// BookingService hosts the three slot ledger mutators. It is the only writer
// of the ledger; every operation runs inside the ledger's atomic
// read-check-write sequence.
type BookingService struct {
	sessions SessionSource
	ledger   *Ledger
	logger   *slog.Logger
}

// NewBookingService wires the session source and ledger handle.
func NewBookingService(sessions SessionSource, ledger *Ledger, logger *slog.Logger) *BookingService {
	return &BookingService{
		sessions: sessions,
		ledger:   ledger,
		logger:   defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// BookSlot books the identity tuple for the session user. The availability
// check runs at commit time against freshly read persisted state: a tuple
// already carrying a non-empty owner fails with ErrSlotTaken and leaves the
// ledger untouched. Available placeholders for the tuple are left in place;
// booking appends a new owned entry.
func (s *BookingService) BookSlot(ctx context.Context, date time.Time, hour string, category calendar.Category) (booked calendar.Slot, err error) {
	if s == nil {
		return calendar.Slot{}, fmt.Errorf("BookingService is nil")
	}

	key := calendar.NewKey(date, hour, category)
	logger := s.loggerWith(ctx, "BookSlot",
		"day", key.Day.Format("2006-01-02"),
		"hour", key.Hour,
		"category", key.Category,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "slot booked", "owner", booked.OwnerEmail)
	}()

	session, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return calendar.Slot{}, err
	}
	if !ok {
		return calendar.Slot{}, ErrNotAuthenticated
	}

	booked = calendar.Slot{Date: date, Hour: hour, Category: category, OwnerEmail: session.Email}

	err = s.ledger.Mutate(ctx, func(slots []calendar.Slot) ([]calendar.Slot, bool, error) {
		for _, slot := range slots {
			if slot.Booked() && slot.Key() == key {
				return nil, false, ErrSlotTaken
			}
		}
		return append(slots, booked), true, nil
	})
	if err != nil {
		return calendar.Slot{}, err
	}
	return booked, nil
}

// CancelBooking removes the session user's booking for the identity tuple.
// Cancelling a booking that does not exist, or that belongs to someone else,
// filters nothing out and succeeds: idempotence is part of the contract.
func (s *BookingService) CancelBooking(ctx context.Context, date time.Time, hour string, category calendar.Category) (err error) {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}

	key := calendar.NewKey(date, hour, category)
	logger := s.loggerWith(ctx, "CancelBooking",
		"day", key.Day.Format("2006-01-02"),
		"hour", key.Hour,
		"category", key.Category,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "cancellation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "cancellation applied")
	}()

	session, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}

	return s.ledger.Mutate(ctx, func(slots []calendar.Slot) ([]calendar.Slot, bool, error) {
		next := make([]calendar.Slot, 0, len(slots))
		removed := false
		for _, slot := range slots {
			if slot.Key() == key && slot.OwnerEmail == session.Email {
				removed = true
				continue
			}
			next = append(next, slot)
		}
		return next, removed, nil
	})
}

// AddAvailableSlot appends an ownerless placeholder for administrators. No
// duplicate or ownership check is performed; admin seeding is intentionally
// unchecked and overlapping placeholders are allowed.
func (s *BookingService) AddAvailableSlot(ctx context.Context, date time.Time, hour string, category calendar.Category) (seeded calendar.Slot, err error) {
	if s == nil {
		return calendar.Slot{}, fmt.Errorf("BookingService is nil")
	}

	logger := s.loggerWith(ctx, "AddAvailableSlot",
		"day", calendar.DayOf(date).Format("2006-01-02"),
		"hour", hour,
		"category", category,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "seeding failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "available slot added")
	}()

	if err := s.requireAdmin(ctx); err != nil {
		return calendar.Slot{}, err
	}

	seeded = calendar.Slot{Date: date, Hour: hour, Category: category}
	err = s.ledger.Mutate(ctx, func(slots []calendar.Slot) ([]calendar.Slot, bool, error) {
		return append(slots, seeded), true, nil
	})
	if err != nil {
		return calendar.Slot{}, err
	}
	return seeded, nil
}

// WeekGrid projects the current ledger onto the 7x24 grid for the session
// user, week anchor, and category tab. The projection is recomputed from a
// fresh snapshot on every call and never cached.
func (s *BookingService) WeekGrid(ctx context.Context, anchor time.Time, category calendar.Category) (calendar.WeekGrid, error) {
	if s == nil {
		return calendar.WeekGrid{}, fmt.Errorf("BookingService is nil")
	}

	session, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return calendar.WeekGrid{}, err
	}
	if !ok {
		return calendar.WeekGrid{}, ErrNotAuthenticated
	}

	return calendar.BuildWeekGrid(s.ledger.Snapshot(), session.Email, anchor, category), nil
}

// AllSlots returns the full ledger for the admin bookings table.
func (s *BookingService) AllSlots(ctx context.Context) ([]calendar.Slot, error) {
	if s == nil {
		return nil, fmt.Errorf("BookingService is nil")
	}
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.ledger.Snapshot(), nil
}

func (s *BookingService) requireAdmin(ctx context.Context) error {
	session, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}
	if !session.IsAdmin {
		return ErrUnauthorized
	}
	return nil
}
