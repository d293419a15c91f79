// Package generator builds synthetic request bodies for the backend's
// resources. Every function is pure apart from drawing random numbers.
package generator

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// Generator produces records. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed. Faker backed fields
// stay random, the structural choices (counts, picks, thresholds) repeat.
func NewWithSeed(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the time source used for timestamps.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) unix() int64 {
	return g.now().Unix()
}

func (g *Generator) intn(n int) int {
	if n <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(n)
}

// between returns an int in [min, max].
func (g *Generator) between(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.intn(max-min+1)
}

func (g *Generator) float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// amount returns a float in [min, max] rounded to digits decimals.
func (g *Generator) amount(min, max float64, digits int) float64 {
	return round(min+g.float()*(max-min), digits)
}

// chance reports true with probability p.
func (g *Generator) chance(p float64) bool {
	return g.float() < p
}

func (g *Generator) pick(values []string) string {
	return values[g.intn(len(values))]
}

// Pick returns a random record, or nil when records is empty.
func (g *Generator) Pick(records []api.Record) api.Record {
	if len(records) == 0 {
		return nil
	}
	return records[g.intn(len(records))]
}

// sample returns n distinct values in random order.
func (g *Generator) sample(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	out := append([]string(nil), values...)
	g.mu.Lock()
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	g.mu.Unlock()
	return out[:n]
}

func (g *Generator) image() map[string]any {
	return map[string]any{
		"url": faker.URL(),
		"key": uuid.NewString(),
	}
}

// maybeImage sets key to an image with probability p and leaves it absent otherwise.
func (g *Generator) maybeImage(rec api.Record, key string, p float64) {
	if g.chance(p) {
		rec[key] = g.image()
	}
}

func (g *Generator) location() map[string]any {
	return map[string]any{
		"lat": g.amount(-90, 90, 6),
		"lng": g.amount(-180, 180, 6),
	}
}

func (g *Generator) street() string {
	return strconv.Itoa(g.between(1, 9999)) + " " + g.pick(streetNames)
}

func ids(records []api.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if id := r.ID(); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func contact(title, key, value string) []map[string]any {
	return []map[string]any{{
		"title":      title,
		"is_default": true,
		key:          value,
	}}
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
