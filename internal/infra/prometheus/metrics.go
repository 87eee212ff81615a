package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClicksRecorded counts link-click events written to the event log.
	ClicksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plink_clicks_recorded_total",
		Help: "Number of link click events recorded.",
	})

	// ViewsRecorded counts profile-view events persisted by the consumer.
	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plink_profile_views_recorded_total",
		Help: "Number of profile view events recorded.",
	})
)
