package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ActiveRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridroom_active_rooms",
			Help: "Number of rooms currently held in the registry",
		},
	)
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridroom_active_connections",
			Help: "Number of websocket connections currently attached",
		},
	)
	MovesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridroom_moves_total",
			Help: "Total accepted moves",
		},
		[]string{"mode"},
	)
	GamesFinishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridroom_games_finished_total",
			Help: "Total finished games by winner",
		},
		[]string{"winner"},
	)
)

func init() {
	prometheus.MustRegister(ActiveRooms, ActiveConnections, MovesTotal, GamesFinishedTotal)
}
