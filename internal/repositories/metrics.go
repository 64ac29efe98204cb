package repositories

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/metrics"
)

// trackQuery times a repository call. Use it as
//
//	defer trackQuery("account", "findByEmail")(&err)
//
// with a named error result. ErrNoDocuments is not counted as a failure.
func trackQuery(repository, queryType string) func(*error) {
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		metrics.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	return func(errp *error) {
		if errp != nil && *errp != nil && !errors.Is(*errp, mongo.ErrNoDocuments) {
			status = "error"
			metrics.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		}
		timer.ObserveDuration()
	}
}
