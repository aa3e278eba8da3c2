package identity

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers for records.
type Generator interface {
	NewID() string
}

// RegistrationGenerator produces student registration numbers.
type RegistrationGenerator interface {
	NewRegistration() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

// NewID implements Generator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence issues monotonic identifiers such as "lesson-1", "lesson-2".
type Sequence struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequence returns a deterministic generator, mostly useful in tests.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.counter.Add(1))
}

const (
	registrationMin = 10000
	registrationMax = 99999
)

// RandomRegistrations issues five digit registration numbers. Collisions are allowed.
type RandomRegistrations struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRegistrations seeds a registration generator.
func NewRandomRegistrations(seed uint64) *RandomRegistrations {
	return &RandomRegistrations{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRegistration implements RegistrationGenerator.
func (r *RandomRegistrations) NewRegistration() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strconv.Itoa(registrationMin + r.rng.IntN(registrationMax-registrationMin+1))
}
