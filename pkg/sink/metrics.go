// Package sink forwards station readings to external systems.
package sink

import (
	"net/http"

	"github.com/itohio/gowx/pkg/station"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports the last reading as Prometheus gauges.
type Metrics struct {
	windDirection prometheus.Gauge
	windSpeed     prometheus.Gauge
	temperature   prometheus.Gauge
	pressure      prometheus.Gauge
	reports       prometheus.Counter
}

var _ station.Reporter = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		windDirection: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wx_wind_direction_degrees",
			Help: "Last reported wind direction.",
		}),
		windSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wx_wind_speed_mph",
			Help: "Last reported wind speed.",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wx_temperature_celsius",
			Help: "Last reported temperature.",
		}),
		pressure: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wx_pressure_atm",
			Help: "Last reported pressure.",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wx_reports_total",
			Help: "Number of readings received.",
		}),
	}

	for _, c := range []prometheus.Collector{m.windDirection, m.windSpeed, m.temperature, m.pressure, m.reports} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Report updates the gauges with r.
func (m *Metrics) Report(r station.Reading) error {
	m.windDirection.Set(r.WindDirection)
	m.windSpeed.Set(r.WindSpeed)
	m.temperature.Set(r.Temperature)
	m.pressure.Set(r.Pressure)
	m.reports.Inc()
	return nil
}

// Handler returns an HTTP handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
