// Package metrics содержит Prometheus-метрики реестра участников.
// Collector подписывается на снимки хранилища и обновляет gauges,
// а также учитывает результаты регистрации.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const namespace = "gym"

// Collector хранит метрики и реестр, в котором они зарегистрированы.
type Collector struct {
	registry      *prometheus.Registry
	total         prometheus.Gauge
	active        prometheus.Gauge
	byPlan        *prometheus.GaugeVec
	registrations *prometheus.CounterVec
}

// New создаёт Collector и регистрирует метрики в переданном реестре.
func New(registry *prometheus.Registry) (*Collector, error) {
	c := &Collector{
		registry: registry,
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members_total",
			Help:      "Number of members in the registry.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members_active",
			Help:      "Number of members with an active membership.",
		}),
		byPlan: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members_by_plan",
			Help:      "Number of members per membership plan.",
		}, []string{"plan"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
	}

	for _, col := range []prometheus.Collector{c.total, c.active, c.byPlan, c.registrations} {
		if err := registry.Register(col); err != nil {
			return nil, err
		}
	}
	for _, p := range models.Plans() {
		c.byPlan.WithLabelValues(p.Key()).Set(0)
	}
	return c, nil
}

// OnSnapshot обновляет gauges по новому снимку списка участников.
func (c *Collector) OnSnapshot(members []models.Member) {
	counts := make(map[string]int, len(models.Plans()))
	active := 0
	for _, m := range members {
		if m.IsActive {
			active++
		}
		if m.Plan.IsValid() {
			counts[m.Plan.Key()]++
		}
	}

	c.total.Set(float64(len(members)))
	c.active.Set(float64(active))
	for _, p := range models.Plans() {
		c.byPlan.WithLabelValues(p.Key()).Set(float64(counts[p.Key()]))
	}
}

// ObserveRegistration учитывает попытку регистрации.
func (c *Collector) ObserveRegistration(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.registrations.WithLabelValues(result).Inc()
}

// Handler возвращает HTTP-обработчик для отдачи метрик из реестра.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
