package booking

import (
	"context"
	"fmt"
	"time"

	counterRepo "furcare/database/repository/counter"
	"furcare/utils"
)

// DayCounter is the slice of the appointment store the generator seeds from.
type DayCounter interface {
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

// NumberGenerator issues booking numbers of the form {Prefix}{ddmmyyyy}-{seq}, where seq
// restarts at 1 each calendar day and is zero-padded to two digits.
type NumberGenerator interface {
	Next(ctx context.Context, createdAt time.Time) (string, error)
}

// DefaultNumberGenerator draws sequences from an atomic per-day counter. A day's counter
// is seeded with the number of appointments already created that day, so counters added
// to an existing database continue where the count leaves off.
type DefaultNumberGenerator struct {
	Counter      counterRepo.CounterRepository
	Appointments DayCounter
	Prefix       string
}

func NewDefaultNumberGenerator(counter counterRepo.CounterRepository, appts DayCounter, prefix string) *DefaultNumberGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &DefaultNumberGenerator{Counter: counter, Appointments: appts, Prefix: prefix}
}

const DefaultPrefix = "FC"

func (g *DefaultNumberGenerator) Next(ctx context.Context, createdAt time.Time) (string, error) {
	day := createdAt.Format("02012006")

	seed := func(ctx context.Context) (int64, error) {
		if g.Appointments == nil {
			return 0, nil
		}
		start, end := utils.DayBounds(createdAt)
		return g.Appointments.CountCreatedBetween(ctx, start, end)
	}

	seq, err := g.Counter.Next(ctx, "appointments:"+day, seed)
	if err != nil {
		return "", fmt.Errorf("failed to allocate booking number for %s: %w", day, err)
	}
	return FormatNumber(g.Prefix, createdAt, seq), nil
}

// FormatNumber renders a booking number. Sequences above 99 simply widen.
func FormatNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s-%02d", prefix, day.Format("02012006"), seq)
}
