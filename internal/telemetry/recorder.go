// Package telemetry exports detection progress as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/stateful-filter/measure/detect"
)

const namespace = "evdetect"

// Recorder is a [detect.Observer] backed by its own registry.
type Recorder struct {
	registry *prometheus.Registry

	chunks     *prometheus.CounterVec
	samples    *prometheus.CounterVec
	flagged    *prometheus.CounterVec
	runs       *prometheus.CounterVec
	degenerate *prometheus.CounterVec
	sigma      *prometheus.GaugeVec

	truePositives  *prometheus.CounterVec
	falsePositives *prometheus.CounterVec
	falseNegatives *prometheus.GaugeVec
	precision      *prometheus.GaugeVec
	recall         *prometheus.GaugeVec
	filterSeconds  *prometheus.GaugeVec
	featureMin     *prometheus.GaugeVec
	featureSkew    *prometheus.GaugeVec
	streams        prometheus.Counter
}

var _ detect.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with every metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	stream := []string{"stream"}

	r.chunks = r.counterVec("chunks_total", "Chunks processed.", stream)
	r.samples = r.counterVec("samples_total", "Samples filtered.", stream)
	r.flagged = r.counterVec("flagged_samples_total", "Samples below the detection threshold.", stream)
	r.runs = r.counterVec("runs_total", "Runs of consecutive flagged samples.", stream)
	r.degenerate = r.counterVec("degenerate_chunks_total", "Chunks too short for a standard deviation.", stream)
	r.sigma = r.gaugeVec("chunk_sigma", "Feature standard deviation of the last chunk.", stream)

	r.truePositives = r.counterVec("true_positives_total", "Centroids matched by a run.", stream)
	r.falsePositives = r.counterVec("false_positives_total", "Closed unmatched runs whose run length exceeds the debounce length.", stream)
	r.falseNegatives = r.gaugeVec("false_negatives", "Centroids never matched.", stream)
	r.precision = r.gaugeVec("precision", "TP/(TP+FP) of a finished stream.", stream)
	r.recall = r.gaugeVec("recall", "TP/(TP+FN) of a finished stream.", stream)
	r.filterSeconds = r.gaugeVec("filter_seconds", "Filtering time of a finished stream, scoring excluded.", stream)
	r.featureMin = r.gaugeVec("feature_min", "Deepest feature value of a finished stream.", stream)
	r.featureSkew = r.gaugeVec("feature_skewness", "Skewness of the feature signal of a finished stream.", stream)

	r.streams = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "streams_finished_total",
		Help:      "Streams analyzed to completion.",
	})
	r.registry.MustRegister(r.streams)

	return r
}

func (r *Recorder) counterVec(name, help string, labels []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	r.registry.MustRegister(cv)
	return cv
}

func (r *Recorder) gaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	r.registry.MustRegister(gv)
	return gv
}

// Registry returns the registry holding all recorder metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveChunk implements [detect.Observer].
func (r *Recorder) ObserveChunk(stream string, res detect.ChunkResult) {
	r.chunks.WithLabelValues(stream).Inc()
	r.samples.WithLabelValues(stream).Add(float64(res.Len))
	r.flagged.WithLabelValues(stream).Add(float64(len(res.Flagged)))
	r.runs.WithLabelValues(stream).Add(float64(len(res.Runs)))
	if res.Degenerate {
		r.degenerate.WithLabelValues(stream).Inc()
	} else {
		r.sigma.WithLabelValues(stream).Set(res.Sigma)
	}
	r.truePositives.WithLabelValues(stream).Add(float64(res.Delta.TruePositive))
	r.falsePositives.WithLabelValues(stream).Add(float64(res.Delta.FalsePositive))
}

// ObserveSummary implements [detect.Observer].
func (r *Recorder) ObserveSummary(stream string, s detect.Summary) {
	r.falseNegatives.WithLabelValues(stream).Set(float64(s.Metrics.FalseNegative))
	r.precision.WithLabelValues(stream).Set(s.Metrics.Precision)
	r.recall.WithLabelValues(stream).Set(s.Metrics.Recall)
	r.filterSeconds.WithLabelValues(stream).Set(s.FilterTime.Seconds())
	r.featureMin.WithLabelValues(stream).Set(s.Feature.Min)
	r.featureSkew.WithLabelValues(stream).Set(s.Feature.Skewness)
	r.streams.Inc()
}

// WriteTextfile writes the registry in the text exposition format, for
// node_exporter's textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
