package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	catalogWriteSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_write_steps_total",
			Help: "Catalog save steps by path (create/update), step and outcome.",
		},
		[]string{"path", "step", "outcome"},
	)

	imageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_image_uploads_total",
			Help: "Image files sent to the blob store, by outcome.",
		},
		[]string{"outcome"},
	)

	productDeletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_product_deletions_total",
			Help: "Confirmed product deletions, by outcome.",
		},
		[]string{"outcome"},
	)
)

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// ObserveWriteStep records the result of one catalog save step.
func ObserveWriteStep(path, step string, err error) {
	catalogWriteSteps.WithLabelValues(path, step, outcome(err)).Inc()
}

// ObserveUpload records the result of one file upload.
func ObserveUpload(err error) {
	imageUploads.WithLabelValues(outcome(err)).Inc()
}

// ObserveDeletion records the result of a confirmed deletion.
func ObserveDeletion(err error) {
	productDeletions.WithLabelValues(outcome(err)).Inc()
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
