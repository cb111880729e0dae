package services

import (
	"time"

	"github.com/epeers/riskprofile/internal/metrics"
	log "github.com/sirupsen/logrus"
)

func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	metrics.CalculationDuration.WithLabelValues(funcName).Observe(elapsed.Seconds())
	log.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
}
