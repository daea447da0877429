package booking

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	counterRepo "furcare/database/repository/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	mu     sync.Mutex
	values map[string]int64
	seeds  int
}

func (c *memoryCounter) Next(ctx context.Context, key string, seed counterRepo.SeedFunc) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = map[string]int64{}
	}
	if _, ok := c.values[key]; !ok {
		var start int64
		if seed != nil {
			v, err := seed(ctx)
			if err != nil {
				return 0, err
			}
			start = v
		}
		c.seeds++
		c.values[key] = start
	}
	c.values[key]++
	return c.values[key], nil
}

type fixedCount struct {
	n          int64
	err        error
	start, end time.Time
}

func (f *fixedCount) CountCreatedBetween(_ context.Context, start, end time.Time) (int64, error) {
	f.start, f.end = start, end
	return f.n, f.err
}

var numberPattern = regexp.MustCompile(`^FC\d{8}-\d{2,}$`)

func TestNext_FirstOfDay(t *testing.T) {
	g := NewDefaultNumberGenerator(&memoryCounter{}, &fixedCount{}, "")
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	bn, err := g.Next(context.Background(), ts)
	require.NoError(t, err)
	assert.Equal(t, "FC01052024-01", bn)
	assert.Regexp(t, numberPattern, bn)
}

func TestNext_SeedsFromExistingAppointments(t *testing.T) {
	counts := &fixedCount{n: 7}
	g := NewDefaultNumberGenerator(&memoryCounter{}, counts, "FC")
	ts := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	bn, err := g.Next(context.Background(), ts)
	require.NoError(t, err)
	assert.Equal(t, "FC01052024-08", bn)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), counts.start)
	assert.Equal(t, 2024, counts.end.Year())
	assert.Equal(t, time.May, counts.end.Month())
	assert.Equal(t, 1, counts.end.Day())
	assert.Equal(t, 23, counts.end.Hour())
}

func TestNext_SequencePerDay(t *testing.T) {
	counter := &memoryCounter{}
	g := NewDefaultNumberGenerator(counter, &fixedCount{}, "FC")
	ctx := context.Background()
	may1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	may2 := may1.AddDate(0, 0, 1)

	first, _ := g.Next(ctx, may1)
	second, _ := g.Next(ctx, may1.Add(time.Hour))
	nextDay, _ := g.Next(ctx, may2)

	assert.Equal(t, "FC01052024-01", first)
	assert.Equal(t, "FC01052024-02", second)
	assert.Equal(t, "FC02052024-01", nextDay)
	assert.Equal(t, 2, counter.seeds)
}

func TestNext_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	g := NewDefaultNumberGenerator(&memoryCounter{}, &fixedCount{}, "FC")
	ts := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	const n = 50
	out := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bn, err := g.Next(context.Background(), ts)
			assert.NoError(t, err)
			out <- bn
		}()
	}
	wg.Wait()
	close(out)

	seen := map[string]bool{}
	for bn := range out {
		assert.False(t, seen[bn], "duplicate %s", bn)
		seen[bn] = true
	}
	assert.Len(t, seen, n)
}

func TestNext_SeedError(t *testing.T) {
	g := NewDefaultNumberGenerator(&memoryCounter{}, &fixedCount{err: errors.New("db down")}, "FC")

	_, err := g.Next(context.Background(), time.Now())
	assert.ErrorContains(t, err, "db down")
}

func TestFormatNumber_Widens(t *testing.T) {
	day := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "FC31122024-09", FormatNumber("FC", day, 9))
	assert.Equal(t, "FC31122024-123", FormatNumber("FC", day, 123))
}
