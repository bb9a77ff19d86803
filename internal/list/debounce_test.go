package list

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects emitted values for assertions.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_EmitsLastValueOnce(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	// Three updates inside one quiet window.
	d.Update("a")
	d.Update("ab")
	d.Update("abc")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"abc"}, rec.snapshot())

	// Nothing else arrives after the quiet period.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, rec.snapshot())
}

func TestDebouncer_SeparateQuietPeriods(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Update("first")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	d.Update("second")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncer_StopCancelsPendingEmission(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)

	d.Update("doomed")
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "no emission may happen after Stop")
}

func TestDebouncer_UpdateAfterStopIsIgnored(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)
	d.Stop()

	d.Update("late")

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushEmitsImmediately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.record)
	defer d.Stop()

	d.Update("pending")
	d.Flush("now")

	assert.Equal(t, []string{"now"}, rec.snapshot())

	// The cancelled pending timer must never fire.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []string{"now"}, rec.snapshot())
}
