package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// classificationsTotal counts classified queries by method and resulting type.
	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_classifications_total",
			Help: "Total number of advisor query classifications",
		},
		[]string{"method", "type"},
	)

	// responsesTotal counts advisor outcomes by response type, including ERROR.
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_responses_total",
			Help: "Total number of advisor responses by type",
		},
		[]string{"type"},
	)
)
