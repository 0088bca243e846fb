package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
	"github.com/example/appointment-booker/internal/persistence"
	"github.com/example/appointment-booker/internal/testfixtures"
)

type sessionSourceStub struct {
	session Session
	active  bool
	err     error
}

func (s *sessionSourceStub) Current(ctx context.Context) (Session, bool, error) {
	return s.session, s.active, s.err
}

func newTestBooking(t *testing.T, session *sessionSourceStub) (*BookingService, *persistence.Store) {
	t.Helper()

	repos, _ := testfixtures.NewStore()
	ledger, err := OpenLedger(context.Background(), repos, nil, nil)
	if err != nil {
		t.Fatalf("OpenLedger failed: %v", err)
	}
	return NewBookingService(session, ledger, nil), repos
}

func bookingDay() time.Time {
	return time.Date(2025, time.February, 7, 0, 0, 0, 0, time.UTC)
}

func TestBookingService_BookSlot(t *testing.T) {
	t.Parallel()

	t.Run("requires an active session", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestBooking(t, &sessionSourceStub{})
		_, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst)
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}

		slots, err := repos.LoadSlots(context.Background())
		if err != nil || len(slots) != 0 {
			t.Fatalf("expected ledger to be unchanged, got %d slots (err=%v)", len(slots), err)
		}
	})

	t.Run("appends an owned entry for the session user", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestBooking(t, &sessionSourceStub{session: Session{Email: "a@example.com"}, active: true})
		booked, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst)
		if err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if booked.OwnerEmail != "a@example.com" {
			t.Fatalf("expected booking owned by the session user, got %q", booked.OwnerEmail)
		}

		slots, err := repos.LoadSlots(context.Background())
		if err != nil || len(slots) != 1 {
			t.Fatalf("expected one persisted slot, got %d (err=%v)", len(slots), err)
		}
	})

	t.Run("rejects a tuple already owned by someone else", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		ledger, err := OpenLedger(context.Background(), repos, nil, nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}

		userA := NewBookingService(&sessionSourceStub{session: Session{Email: "a@example.com"}, active: true}, ledger, nil)
		userB := NewBookingService(&sessionSourceStub{session: Session{Email: "b@example.com"}, active: true}, ledger, nil)

		if _, err := userA.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}
		if _, err := userB.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}

		slots, err := repos.LoadSlots(context.Background())
		if err != nil {
			t.Fatalf("LoadSlots failed: %v", err)
		}
		if len(slots) != 1 || slots[0].OwnerEmail != "a@example.com" {
			t.Fatalf("expected exactly one entry owned by the first booker, got %#v", slots)
		}
	})

	t.Run("identity comparison truncates to the calendar day", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{session: Session{Email: "a@example.com"}, active: true})

		morning := time.Date(2025, time.February, 7, 8, 0, 0, 0, time.UTC)
		evening := time.Date(2025, time.February, 7, 20, 0, 0, 0, time.UTC)

		if _, err := svc.BookSlot(context.Background(), morning, "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}
		if _, err := svc.BookSlot(context.Background(), evening, "10:00", calendar.CategoryFirst); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected same-day timestamps to collide, got %v", err)
		}
	})

	t.Run("books over an available placeholder", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		placeholder := testfixtures.NewSlot(
			testfixtures.OnDay(bookingDay()),
			testfixtures.AtHour("10:00"),
			testfixtures.OwnedBy(""),
		)
		if err := repos.SaveSlots(context.Background(), []calendar.Slot{placeholder}); err != nil {
			t.Fatalf("SaveSlots failed: %v", err)
		}
		ledger, err := OpenLedger(context.Background(), repos, nil, nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "a@example.com"}, active: true}, ledger, nil)

		if _, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("expected placeholder not to block the booking, got %v", err)
		}
	})

	t.Run("recheck runs against freshly persisted state", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestBooking(t, &sessionSourceStub{session: Session{Email: "b@example.com"}, active: true})

		// Another tab books the tuple directly in the shared store; the
		// service's in-memory mirror has not seen it.
		foreign := testfixtures.NewSlot(
			testfixtures.OnDay(bookingDay()),
			testfixtures.AtHour("10:00"),
			testfixtures.OwnedBy("a@example.com"),
		)
		if err := repos.SaveSlots(context.Background(), []calendar.Slot{foreign}); err != nil {
			t.Fatalf("SaveSlots failed: %v", err)
		}

		if _, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected commit-time recheck to detect the foreign booking, got %v", err)
		}
	})

	t.Run("surfaces storage unavailability", func(t *testing.T) {
		t.Parallel()

		repos := persistence.NewStore(testfixtures.UnavailableKV{})
		ledger := &Ledger{repo: repos}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "a@example.com"}, active: true}, ledger, nil)

		if _, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrStorageUnavailable) {
			t.Fatalf("BookSlot: expected ErrStorageUnavailable, got %v", err)
		}
		if err := svc.CancelBooking(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrStorageUnavailable) {
			t.Fatalf("CancelBooking: expected ErrStorageUnavailable, got %v", err)
		}
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	t.Parallel()

	t.Run("requires an active session", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{})
		err := svc.CancelBooking(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst)
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("book then cancel restores the previous ledger", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		ledger, err := OpenLedger(context.Background(), repos, DemoSlots(), nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "a@example.com"}, active: true}, ledger, nil)

		before := ledger.Snapshot()
		if _, err := svc.BookSlot(context.Background(), bookingDay(), "11:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if err := svc.CancelBooking(context.Background(), bookingDay(), "11:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("CancelBooking failed: %v", err)
		}

		if after := ledger.Snapshot(); !reflect.DeepEqual(before, after) {
			t.Fatalf("expected round trip to restore the ledger:\nbefore %#v\nafter  %#v", before, after)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		ledger, err := OpenLedger(context.Background(), repos, nil, nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "a@example.com"}, active: true}, ledger, nil)

		if _, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if err := svc.CancelBooking(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("first cancel failed: %v", err)
		}
		first := ledger.Snapshot()

		if err := svc.CancelBooking(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("expected repeated cancel to succeed, got %v", err)
		}
		if second := ledger.Snapshot(); !reflect.DeepEqual(first, second) {
			t.Fatalf("expected repeated cancel to leave the ledger unchanged")
		}
	})

	t.Run("leaves other users' bookings in place", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		foreign := testfixtures.NewSlot(
			testfixtures.OnDay(bookingDay()),
			testfixtures.AtHour("10:00"),
			testfixtures.OwnedBy("a@example.com"),
		)
		if err := repos.SaveSlots(context.Background(), []calendar.Slot{foreign}); err != nil {
			t.Fatalf("SaveSlots failed: %v", err)
		}
		ledger, err := OpenLedger(context.Background(), repos, nil, nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "b@example.com"}, active: true}, ledger, nil)

		if err := svc.CancelBooking(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("expected foreign cancel to be a silent no-op, got %v", err)
		}
		if slots := ledger.Snapshot(); len(slots) != 1 || slots[0].OwnerEmail != "a@example.com" {
			t.Fatalf("expected the foreign booking to survive, got %#v", slots)
		}
	})
}

func TestBookingService_AddAvailableSlot(t *testing.T) {
	t.Parallel()

	t.Run("requires an active session", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{})
		if _, err := svc.AddAvailableSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("requires administrator access", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{session: Session{Email: "a@example.com"}, active: true})
		if _, err := svc.AddAvailableSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("seeding is intentionally unchecked", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestBooking(t, &sessionSourceStub{session: Session{Email: "admin@example.com", IsAdmin: true}, active: true})

		for i := 0; i < 2; i++ {
			seeded, err := svc.AddAvailableSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst)
			if err != nil {
				t.Fatalf("AddAvailableSlot failed: %v", err)
			}
			if seeded.Booked() {
				t.Fatalf("expected an ownerless placeholder, got owner %q", seeded.OwnerEmail)
			}
		}

		slots, err := repos.LoadSlots(context.Background())
		if err != nil {
			t.Fatalf("LoadSlots failed: %v", err)
		}
		if len(slots) != 2 {
			t.Fatalf("expected overlapping placeholders to be allowed, got %d slots", len(slots))
		}
	})
}

func TestBookingService_WeekGrid(t *testing.T) {
	t.Parallel()

	t.Run("requires an active session", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{})
		if _, err := svc.WeekGrid(context.Background(), bookingDay(), calendar.CategoryFirst); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("projects the ledger for the session user", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{session: Session{Email: "a@example.com"}, active: true})
		if _, err := svc.BookSlot(context.Background(), bookingDay(), "10:00", calendar.CategoryFirst); err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}

		grid, err := svc.WeekGrid(context.Background(), bookingDay(), calendar.CategoryFirst)
		if err != nil {
			t.Fatalf("WeekGrid failed: %v", err)
		}
		// 2025-02-07 is a Friday, the fifth column of its week.
		if got := grid.Days[4].Hours[10]; got != calendar.StateBookedByCurrentUser {
			t.Fatalf("expected own booking in the grid, got %q", got)
		}
	})
}

func TestBookingService_AllSlots(t *testing.T) {
	t.Parallel()

	t.Run("is admin gated", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestBooking(t, &sessionSourceStub{session: Session{Email: "a@example.com"}, active: true})
		if _, err := svc.AllSlots(context.Background()); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("returns the full ledger", func(t *testing.T) {
		t.Parallel()

		repos, _ := testfixtures.NewStore()
		ledger, err := OpenLedger(context.Background(), repos, DemoSlots(), nil)
		if err != nil {
			t.Fatalf("OpenLedger failed: %v", err)
		}
		svc := NewBookingService(&sessionSourceStub{session: Session{Email: "admin@example.com", IsAdmin: true}, active: true}, ledger, nil)

		slots, err := svc.AllSlots(context.Background())
		if err != nil {
			t.Fatalf("AllSlots failed: %v", err)
		}
		if len(slots) != 3 {
			t.Fatalf("expected the seeded ledger, got %d slots", len(slots))
		}
	})
}
