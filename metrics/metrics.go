package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quarto-acronyms/fixture-runner/types"
)

const (
	MetricsNamespace = "fixture_runner"
)

var (
	validResults         = []types.TestStatus{types.TestStatusPass, types.TestStatusFail}
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)
)

// Metrics holds the run metrics on a private registry, so that only the
// fixture runner's own series end up in the textfile.
type Metrics struct {
	registry *prometheus.Registry
	log      log.Logger

	errorsTotal      *prometheus.CounterVec
	fixturesTotal    *prometheus.CounterVec
	fixtureDuration  *prometheus.HistogramVec
	runResults       *prometheus.GaugeVec
	runFixturesTotal *prometheus.GaugeVec
	runPassed        *prometheus.GaugeVec
	runFailed        *prometheus.GaugeVec
	runDuration      *prometheus.GaugeVec
}

// New registers the run metrics on a fresh registry
func New(logger log.Logger) *Metrics {
	if logger == nil {
		logger = log.New()
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		log:      logger,

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "errors_total",
			Help:      "Count of errors",
		}, []string{
			"error",
		}),

		fixturesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "fixtures_total",
			Help:      "Count of fixtures run",
		}, []string{
			"run_id",
			"name",
			"result",
		}),

		fixtureDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "fixture_duration_seconds",
			Help:      "Renderer wall-clock duration per fixture",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		}, []string{
			"result",
		}),

		runResults: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_results",
			Help:      "Result of the fixture run",
		}, []string{
			"run_id",
			"result",
		}),

		runFixturesTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_fixtures",
			Help:      "Number of fixtures in the run",
		}, []string{
			"run_id",
		}),

		runPassed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_fixtures_passed",
			Help:      "Number of passed fixtures",
		}, []string{
			"run_id",
		}),

		runFailed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_fixtures_failed",
			Help:      "Number of failed fixtures",
		}, []string{
			"run_id",
		}),

		runDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Summed renderer duration of the run",
		}, []string{
			"run_id",
		}),
	}
}

// WriteTextfile writes every registered series to path, in the format of
// node_exporter's textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func (m *Metrics) RecordError(error string) {
	m.log.Debug("metric inc",
		"m", "errors_total",
		"error", error,
	)
	m.errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func (m *Metrics) RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	m.RecordError(label)
}

func (m *Metrics) RecordFixture(runID string, name string, result types.TestStatus, duration time.Duration) {
	if !isValidResult(result) {
		m.log.Error("RecordFixture - invalid result", "result", result)
		return
	}
	m.log.Debug("metric inc",
		"m", "fixtures_total",
		"run_id", runID,
		"fixture", name,
		"result", result)
	m.fixturesTotal.WithLabelValues(runID, name, string(result)).Inc()
	m.fixtureDuration.WithLabelValues(string(result)).Observe(duration.Seconds())
}

func (m *Metrics) RecordRun(
	runID string,
	result types.TestStatus,
	total int,
	passed int,
	failed int,
	duration time.Duration,
) {
	m.runResults.WithLabelValues(runID, string(result)).Set(1)
	m.runFixturesTotal.WithLabelValues(runID).Set(float64(total))
	m.runPassed.WithLabelValues(runID).Set(float64(passed))
	m.runFailed.WithLabelValues(runID).Set(float64(failed))
	m.runDuration.WithLabelValues(runID).Set(duration.Seconds())
}

func isValidResult(result types.TestStatus) bool {
	return slices.Contains(validResults, result)
}
