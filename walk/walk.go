// Package walk generates trial random walks: cumulative sums of i.i.d.
// uniform die rolls, one walk per trial, up to a fixed step budget.
package walk

import (
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Trial is one simulated walk: the cumulative position after each roll.
// Positions strictly increase by at least 1 and at most the face count.
type Trial []int

// workerSeedStride offsets each worker's RNG stream from the base seed
const workerSeedStride = 1000000

type Option func(s *Sampler)

// Sampler produces batches of independent trials. Trials are sharded across
// goroutines, each with its own RNG stream derived from the base seed, so a
// given (seed, goroutines) configuration is bit-identical across runs.
type Sampler struct {
	faceCount  int
	stepBudget int
	goroutines int
	seed       uint64
}

// WithSeed fixes the base seed. Callers that need reproducibility must set it;
// an unseeded sampler draws a fresh time-derived seed per construction.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.seed = seed
	}
}

func WithGoroutines(goroutines int) Option {
	return func(s *Sampler) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func NewSampler(faceCount, stepBudget int, options ...Option) *Sampler {
	if faceCount <= 0 || stepBudget <= 0 {
		panic("Face count and step budget must be positive")
	}
	s := &Sampler{ // Default values
		faceCount:  faceCount,
		stepBudget: stepBudget,
		goroutines: runtime.GOMAXPROCS(0),
		seed:       uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Sample generates trialCount independent trials. Each trial's value at index
// i is the sum of draws 0..i, every draw uniform over {1..faceCount}.
func (s *Sampler) Sample(trialCount int) []Trial {
	if trialCount <= 0 {
		panic("Trial count must be positive")
	}

	trials := make([]Trial, trialCount)

	// Contiguous shard per worker, extra trials on the first shards
	perWorker := trialCount / s.goroutines
	extra := trialCount % s.goroutines

	var wg sync.WaitGroup
	start := 0
	for i := 0; i < s.goroutines; i++ {
		count := perWorker
		if i < extra {
			count++
		}
		if count == 0 {
			continue
		}

		wg.Add(1)
		go func(worker, lo, hi int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(s.seed + uint64(worker)*workerSeedStride))
			for t := lo; t < hi; t++ {
				trials[t] = s.sampleOne(rng)
			}
		}(i, start, start+count)
		start += count
	}
	wg.Wait()

	return trials
}

func (s *Sampler) sampleOne(rng *rand.Rand) Trial {
	trial := make(Trial, s.stepBudget)
	position := 0
	for j := range trial {
		position += rng.Intn(s.faceCount) + 1
		trial[j] = position
	}
	return trial
}

func (s *Sampler) FaceCount() int { return s.faceCount }

func (s *Sampler) StepBudget() int { return s.stepBudget }
