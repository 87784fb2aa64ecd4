package wrapped

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PopulationCache memoizes the Population of the most recently used ledger
// source.
//
// It holds at most one Population: it is empty when created, filled on the
// first lookup, and replaced only when a ledger with a different source is
// looked up, or after Invalidate. Lookups are serialized so that concurrent
// first requests for the same source compute the aggregate once.
//
// The zero value is ready to use.
type PopulationCache struct {
	// Logger receives cache events, logrus' standard logger if nil.
	Logger logrus.FieldLogger

	mu         sync.Mutex
	source     string
	population *Population
}

// NewPopulationCache returns an empty cache logging to logger.
func NewPopulationCache(logger logrus.FieldLogger) *PopulationCache {
	return &PopulationCache{Logger: logger}
}

func (c *PopulationCache) log() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// Population returns the population of l, computing it if the cache holds
// another source or nothing.
func (c *PopulationCache) Population(l *TradeLedger) *Population {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.population != nil && c.source == l.Source() {
		c.log().WithField("source", l.Source()).Debug("population cache hit")
		return c.population
	}

	start := time.Now()
	p := NewPopulation(l)
	c.log().WithFields(logrus.Fields{
		"source":   l.Source(),
		"replaced": c.source,
		"users":    p.Len(),
		"trades":   l.Len(),
		"duration": time.Since(start),
	}).Info("population aggregate computed")

	c.source, c.population = l.Source(), p
	return p
}

// Invalidate empties the cache. The next lookup recomputes the population.
func (c *PopulationCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source, c.population = "", nil
}

// Cached returns the source currently held, and false if the cache is empty.
func (c *PopulationCache) Cached() (source string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source, c.population != nil
}

// Wrapped generates the user's wrapped insights using the cached population of l.
func (c *PopulationCache) Wrapped(l *TradeLedger, user string) (*Wrapped, error) {
	return GenerateWrapped(user, c.Population(l), l)
}
