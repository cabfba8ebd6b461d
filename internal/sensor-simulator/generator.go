package sensor_simulator

import (
	"math/rand"
	"sync"
)

// Tunables for the synthetic SW-420 signal.
const (
	baselineValue = 1800 // resting ADC level
	baselineNoise = 400  // +- jitter around the baseline
	spikeFloor    = 5200 // bursts land in [spikeFloor, spikeCeil]
	spikeCeil     = 9000
)

// DataGenerator produces ADC samples resembling the SW-420 on the
// STM32MP1 kit: a low noisy baseline with occasional vibration bursts.
type DataGenerator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	spikeProb float64
	burstLeft int
}

// NewDataGenerator creates a generator that starts a vibration burst
// with probability spikeProb per sample.
func NewDataGenerator(seed int64, spikeProb float64) *DataGenerator {
	return &DataGenerator{
		rng:       rand.New(rand.NewSource(seed)),
		spikeProb: spikeProb,
	}
}

// Next returns the next ADC sample. Bursts last a few samples so alert
// transitions look like the real sensor's.
func (g *DataGenerator) Next() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.burstLeft == 0 && g.rng.Float64() < g.spikeProb {
		g.burstLeft = 2 + g.rng.Intn(4)
	}
	if g.burstLeft > 0 {
		g.burstLeft--
		return spikeFloor + g.rng.Intn(spikeCeil-spikeFloor)
	}
	v := baselineValue + g.rng.Intn(2*baselineNoise) - baselineNoise
	if v < 0 {
		v = 0
	}
	return v
}
