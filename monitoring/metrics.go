package monitoring

import (
	"context"
	"log/slog"
	"time"

	"seatwell/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seatwell_tickets",
			Help: "Current number of tickets per status",
		},
		[]string{"status"},
	)

	entitiesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seatwell_entities",
			Help: "Current number of stored records per collection",
		},
		[]string{"collection"},
	)

	revenueCents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seatwell_revenue_cents",
			Help: "Sum of all transaction amounts in cents",
		},
	)

	purchaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatwell_purchases_total",
			Help: "Total purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	listingOperations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatwell_listings_total",
			Help: "Total tickets listed for resale",
		},
	)

	holdOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatwell_ticket_holds_total",
			Help: "Total ticket hold operations",
		},
		[]string{"operation", "outcome"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatwell_notifications_total",
			Help: "Market events pushed to realtime channels",
		},
		[]string{"publisher", "status"},
	)

	websocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seatwell_websocket_clients",
			Help: "Currently connected market feed clients",
		},
	)

	purchaseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seatwell_purchase_duration_seconds",
			Help:    "Duration of the purchase path",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
)

var trackedStatuses = []string{"available", "pending", "sold", "cancelled"}

// CountsSource is implemented by *store.Store.
type CountsSource interface {
	Counts() store.Counts
}

// Monitor refreshes the gauges from the store and records the counters the
// services report. A nil *Monitor is valid and records nothing.
type Monitor struct {
	source   CountsSource
	interval time.Duration
	logger   *slog.Logger
}

func NewMonitor(source CountsSource, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{source: source, interval: interval, logger: logger}
}

// Run collects once immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Collect()
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Metrics collector stopped")
			return
		case <-ticker.C:
			m.Collect()
		}
	}
}

func (m *Monitor) Collect() {
	if m == nil || m.source == nil {
		return
	}
	c := m.source.Counts()

	for _, status := range trackedStatuses {
		ticketsTotal.WithLabelValues(status).Set(float64(c.TicketsByStatus[status]))
	}
	entitiesTotal.WithLabelValues("users").Set(float64(c.Users))
	entitiesTotal.WithLabelValues("games").Set(float64(c.Games))
	entitiesTotal.WithLabelValues("tickets").Set(float64(c.Tickets))
	entitiesTotal.WithLabelValues("transactions").Set(float64(c.Transactions))
	revenueCents.Set(float64(c.TransactionTotal))
}

// Track purchase outcome and latency
func (m *Monitor) TrackPurchase(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	purchaseOperations.WithLabelValues(outcome).Inc()
	purchaseDuration.Observe(duration.Seconds())
}

func (m *Monitor) TrackListing() {
	if m == nil {
		return
	}
	listingOperations.Inc()
}

func (m *Monitor) TrackHold(operation, outcome string) {
	if m == nil {
		return
	}
	holdOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Monitor) TrackNotification(publisher, status string) {
	if m == nil {
		return
	}
	notifications.WithLabelValues(publisher, status).Inc()
}

func (m *Monitor) SetWebsocketClients(n int) {
	if m == nil {
		return
	}
	websocketClients.Set(float64(n))
}
