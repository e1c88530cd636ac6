package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatrey56/fpl-season-report/internal/report"
)

type seasonMetrics struct {
	points        *prometheus.GaugeVec
	captainPoints *prometheus.GaugeVec
	benchPoints   *prometheus.GaugeVec
	hits          *prometheus.GaugeVec
	gameweeks     prometheus.Gauge
}

func newSeasonMetrics(reg prometheus.Registerer) *seasonMetrics {
	m := &seasonMetrics{
		points: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fpl_season_points",
				Help: "Season points per league entry",
			},
			[]string{"entry"},
		),
		captainPoints: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fpl_season_captain_points",
				Help: "Raw captain points per league entry",
			},
			[]string{"entry"},
		),
		benchPoints: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fpl_season_bench_points",
				Help: "Points left on the bench per league entry",
			},
			[]string{"entry"},
		),
		hits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fpl_season_hit_points",
				Help: "Transfer hit points per league entry",
			},
			[]string{"entry"},
		),
		gameweeks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fpl_season_gameweeks",
			Help: "Gameweeks present in the season data",
		}),
	}
	reg.MustRegister(m.points, m.captainPoints, m.benchPoints, m.hits, m.gameweeks)
	return m
}

func (m *seasonMetrics) observe(rep *report.Report) {
	m.points.Reset()
	m.captainPoints.Reset()
	m.benchPoints.Reset()
	m.hits.Reset()
	for _, a := range rep.Aggregates {
		m.points.WithLabelValues(a.EntryName).Set(float64(a.Points))
		m.captainPoints.WithLabelValues(a.EntryName).Set(float64(a.CaptainPoints))
		m.benchPoints.WithLabelValues(a.EntryName).Set(float64(a.Bench))
		m.hits.WithLabelValues(a.EntryName).Set(float64(a.Hits))
	}
	m.gameweeks.Set(float64(len(rep.Gameweeks)))
}
