package model

import (
	"sync"
	"time"
)

// Clock accumulates the time a player has spent thinking. It counts up and
// never flags.
type Clock struct {
	mu          sync.Mutex
	elapsed     time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

type ClientClock struct {
	Elapsed int64 `json:"elapsedMs"`
	Running bool  `json:"running"`
}

func NewClock() *Clock {
	return newClockWithSource(time.Now)
}

func newClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.elapsed += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.elapsed + c.now().Sub(c.lastStarted)
	}
	return c.elapsed
}

func (c *Clock) Client() ClientClock {
	c.mu.Lock()
	running := c.isRunning
	c.mu.Unlock()
	return ClientClock{Elapsed: c.Elapsed().Milliseconds(), Running: running}
}
