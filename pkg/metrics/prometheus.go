package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	OwnerChanges       prometheus.Counter
	FieldNotifications prometheus.Counter
	DutiesCreated      prometheus.Counter
	ScheduleLoads      prometheus.Counter
	SnapshotsSaved     prometheus.Counter
	LoadTime           prometheus.Histogram
	EvaluationTime     prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the registerer. A nil
// registerer uses the default one.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		OwnerChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "owner_changes_total",
			Help:      "The total number of assignment owner changes applied to duties",
		}),
		FieldNotifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_notifications_total",
			Help:      "The total number of duty field writes reported to change trackers",
		}),
		DutiesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duties_created_total",
			Help:      "The total number of duties created outside the planning horizon",
		}),
		ScheduleLoads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_loads_total",
			Help:      "The total number of schedules loaded",
		}),
		SnapshotsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duty_snapshots_saved_total",
			Help:      "The total number of duty snapshots persisted",
		}),
		LoadTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_load_time_seconds",
			Help:      "Time taken to load a schedule",
			Buckets:   prometheus.DefBuckets,
		}),
		EvaluationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duty_evaluation_time_seconds",
			Help:      "Time taken to evaluate every duty of a schedule",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// IncOwnerChanges counts one owner change
func (m *Metrics) IncOwnerChanges() {
	if m != nil {
		m.OwnerChanges.Inc()
	}
}

// AddFieldNotifications counts reported field writes
func (m *Metrics) AddFieldNotifications(n int) {
	if m != nil {
		m.FieldNotifications.Add(float64(n))
	}
}

// IncDutiesCreated counts one lazily created duty
func (m *Metrics) IncDutiesCreated() {
	if m != nil {
		m.DutiesCreated.Inc()
	}
}

// ObserveLoad records a schedule load
func (m *Metrics) ObserveLoad(seconds float64) {
	if m != nil {
		m.ScheduleLoads.Inc()
		m.LoadTime.Observe(seconds)
	}
}

// ObserveEvaluation records a schedule evaluation
func (m *Metrics) ObserveEvaluation(seconds float64) {
	if m != nil {
		m.EvaluationTime.Observe(seconds)
	}
}

// AddSnapshotsSaved counts persisted duty snapshots
func (m *Metrics) AddSnapshotsSaved(n int) {
	if m != nil {
		m.SnapshotsSaved.Add(float64(n))
	}
}

// IncError counts an error of the operation
func (m *Metrics) IncError(operation string) {
	if m != nil {
		m.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
