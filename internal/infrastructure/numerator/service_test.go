package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenumerator "freightdesk/internal/core/numerator"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates a sequence row: every call advances current_val by the
// increment in the args (1 for strict, RangeSize for cached).
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	calls        int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	var increment int64 = 1
	if len(args) == 2 {
		// Strict passes (prefix string, year int); cached passes (key, int64 increment).
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := corenumerator.DefaultConfig("COT")
	period := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(context.Background(), cfg, nil, period)
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-00001", num)

	num, err = svc.GetNextNumber(context.Background(), cfg, nil, period)
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-00002", num)
	assert.Equal(t, 2, q.calls, "strict strategy hits the database every time")
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := corenumerator.DefaultConfig("INSP")
	opts := &corenumerator.Options{Strategy: corenumerator.StrategyCached, RangeSize: 10}
	period := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(context.Background(), cfg, opts, period)
	require.NoError(t, err)
	assert.Equal(t, "INSP-2026-00001", num)
	assert.Equal(t, int64(10), q.currentValue, "first call reserves the full range")

	// Second number comes from memory, no database round-trip.
	num, err = svc.GetNextNumber(context.Background(), cfg, opts, period)
	require.NoError(t, err)
	assert.Equal(t, "INSP-2026-00002", num)
	assert.Equal(t, int64(10), q.currentValue)

	// Exhaust the range; the next call reserves 11..20.
	for i := 0; i < 8; i++ {
		_, err = svc.GetNextNumber(context.Background(), cfg, opts, period)
		require.NoError(t, err)
	}
	num, err = svc.GetNextNumber(context.Background(), cfg, opts, period)
	require.NoError(t, err)
	assert.Equal(t, "INSP-2026-00011", num)
	assert.Equal(t, int64(20), q.currentValue)
}

func TestFormatNumber_NoYear(t *testing.T) {
	svc := New(&mockQuerier{})
	cfg := corenumerator.Config{Prefix: "TMP", IncludeYear: false, PadWidth: 3, ResetPeriod: "never"}

	assert.Equal(t, "TMP-042", svc.formatNumber(cfg, time.Now(), 42))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(17), ParseNumber("COT-2026-00017"))
	assert.Equal(t, int64(5), ParseNumber("TMP-005"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
}
