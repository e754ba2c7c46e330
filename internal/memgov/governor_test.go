package memgov

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// queueSampler returns one queued reading per call, repeating the last.
func queueSampler(readings ...uint64) Sampler {
	i := 0
	return func() (uint64, error) {
		if i < len(readings)-1 {
			v := readings[i]
			i++
			return v, nil
		}
		return readings[len(readings)-1], nil
	}
}

const mb = 1024 * 1024

func TestCheckNowBelowThresholdDoesNothing(t *testing.T) {
	var reclaimed bool
	g := New(Config{
		CeilingMB: 100,
		Fraction:  0.8,
		Sampler:   queueSampler(10 * mb),
		Reclaim:   func() { reclaimed = true },
	})

	g.CheckNow()

	assert.False(t, reclaimed)
	assert.Equal(t, uint64(10*mb), g.LastUsage())
	assert.Equal(t, int64(0), g.Reclaims())
}

func TestCheckNowReclaimsOverThreshold(t *testing.T) {
	var reclaimed bool
	var pressure bool
	g := New(Config{
		CeilingMB:  100,
		Fraction:   0.8,
		Sampler:    queueSampler(90*mb, 50*mb),
		Reclaim:    func() { reclaimed = true },
		OnPressure: func(uint64, uint64) { pressure = true },
	})

	g.CheckNow()

	assert.True(t, reclaimed)
	assert.False(t, pressure, "reclamation brought usage back under the ceiling")
	assert.Equal(t, int64(1), g.Reclaims())
	assert.Equal(t, uint64(50*mb), g.LastUsage())
}

func TestCheckNowRaisesPressureWhenReclaimInsufficient(t *testing.T) {
	var gotCurrent, gotCeiling uint64
	g := New(Config{
		CeilingMB: 100,
		Fraction:  0.8,
		Sampler:   queueSampler(120*mb, 110*mb),
		Reclaim:   func() {},
		OnPressure: func(current, ceiling uint64) {
			gotCurrent, gotCeiling = current, ceiling
		},
	})

	g.CheckNow()

	assert.Equal(t, int64(1), g.PressureEvents())
	assert.Equal(t, uint64(110*mb), gotCurrent)
	assert.Equal(t, uint64(100*mb), gotCeiling)
}

func TestZeroCeilingDisablesGovernor(t *testing.T) {
	var sampled bool
	g := New(Config{
		CeilingMB: 0,
		Sampler: func() (uint64, error) {
			sampled = true
			return 0, nil
		},
	})

	g.CheckNow()

	assert.False(t, sampled)
}

func TestRepeatedPressureCounts(t *testing.T) {
	g := New(Config{
		CeilingMB: 100,
		Sampler:   queueSampler(120 * mb),
		Reclaim:   func() {},
	})

	g.CheckNow()
	g.CheckNow()

	assert.Equal(t, int64(2), g.Reclaims())
	assert.Equal(t, int64(2), g.PressureEvents())
}

func TestProcessSamplerReturnsNonZero(t *testing.T) {
	usage, err := ProcessSampler()
	assert.NoError(t, err)
	assert.Greater(t, usage, uint64(0))
}

func TestDefaults(t *testing.T) {
	g := New(Config{CeilingMB: 1})
	assert.Equal(t, 30*time.Second, g.interval)
	ceilingBytes := float64(1 * mb)
	assert.Equal(t, uint64(ceilingBytes*0.8), g.threshold)
}
