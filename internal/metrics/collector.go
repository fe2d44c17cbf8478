package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/gruenerator/shell/internal/notify"
)

// Collector refreshes gauges periodically and records routed events.
// A nil *Collector records nothing.
type Collector struct {
	metrics   *Metrics
	clients   func() int
	startTime time.Time
	ticker    *time.Ticker
	done      chan struct{}
	mu        sync.Mutex
	running   bool
}

// NewCollector creates a collector. clients reports the number of
// connected notification clients and may be nil.
func NewCollector(metrics *Metrics, clients func() int) *Collector {
	return &Collector{
		metrics:   metrics,
		clients:   clients,
		startTime: time.Now(),
	}
}

// Start starts the periodic gauge refresh.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	c.running = true
	c.done = make(chan struct{})
	c.ticker = time.NewTicker(15 * time.Second)

	go c.collectLoop(c.ticker, c.done)
}

// Stop stops the periodic refresh.
func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	close(c.done)
	c.ticker.Stop()
	c.running = false
}

func (c *Collector) collectLoop(ticker *time.Ticker, done chan struct{}) {
	c.collect()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

func (c *Collector) collect() {
	c.metrics.Uptime.Set(time.Since(c.startTime).Seconds())
	c.metrics.GoRoutines.Set(float64(runtime.NumGoroutine()))
	if c.clients != nil {
		c.metrics.WebSocketClients.Set(float64(c.clients()))
	}
}

// RecordMenuDispatch records a menu activation.
func (c *Collector) RecordMenuDispatch(action string) {
	if c == nil {
		return
	}
	c.metrics.MenuDispatches.WithLabelValues(action).Inc()
}

// RecordTrayEvent records a tray interaction.
func (c *Collector) RecordTrayEvent(event string) {
	if c == nil {
		return
	}
	c.metrics.TrayEvents.WithLabelValues(event).Inc()
}

// RecordDeepLink records one routed deep link.
func (c *Collector) RecordDeepLink(forwarded bool) {
	if c == nil {
		return
	}
	result := "dropped"
	if forwarded {
		result = "forwarded"
	}
	c.metrics.DeepLinks.WithLabelValues(result).Inc()
}

// RecordStartup records a splash transition trigger.
func (c *Collector) RecordStartup(trigger string) {
	if c == nil {
		return
	}
	c.metrics.StartupTransitions.WithLabelValues(trigger).Inc()
}

// RecordActivation records a forwarded launch.
func (c *Collector) RecordActivation() {
	if c == nil {
		return
	}
	c.metrics.Activations.Inc()
}

// RecordUpdateCheck records a finished update check.
func (c *Collector) RecordUpdateCheck(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.metrics.UpdateChecks.WithLabelValues(outcome).Inc()
	c.metrics.UpdateCheckDuration.Observe(duration.Seconds())
}

// Emitter wraps next so every notification is counted before delivery.
func (c *Collector) Emitter(next notify.Emitter) notify.Emitter {
	if c == nil {
		return next
	}
	return notify.Func(func(name string, payload any) {
		c.metrics.Notifications.WithLabelValues(name).Inc()
		next.Emit(name, payload)
	})
}
