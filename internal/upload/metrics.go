package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "exactfit_uploads_total",
	Help: "Attachment uploads by content type and outcome.",
}, []string{"content_type", "outcome"})
