package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	reportStartedTotal   atomic.Uint64
	reportCompletedTotal atomic.Uint64
	reportFailedTotal    atomic.Uint64
	reportCacheHitsTotal atomic.Uint64
	reportDedupedTotal   atomic.Uint64

	reportDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncReportStarted increments the pipeline-started counter.
func IncReportStarted() {
	reportStartedTotal.Add(1)
}

// IncReportCompleted increments the pipeline-completed counter.
func IncReportCompleted() {
	reportCompletedTotal.Add(1)
}

// IncReportFailed increments the pipeline-failed counter.
func IncReportFailed() {
	reportFailedTotal.Add(1)
}

// IncReportCacheHit increments the cache-hit counter.
func IncReportCacheHit() {
	reportCacheHitsTotal.Add(1)
}

// IncReportDeduped increments the in-flight dedup counter.
func IncReportDeduped() {
	reportDedupedTotal.Add(1)
}

// ObserveReportDurationMs records a full pipeline duration in milliseconds.
func ObserveReportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reportDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "report_started_total", "Total report pipelines started", reportStartedTotal.Load())
	writeCounter(&buf, "report_completed_total", "Total report pipelines completed", reportCompletedTotal.Load())
	writeCounter(&buf, "report_failed_total", "Total report pipelines failed", reportFailedTotal.Load())
	writeCounter(&buf, "report_cache_hits_total", "Total report cache hits", reportCacheHitsTotal.Load())
	writeCounter(&buf, "report_deduped_total", "Total requests attached to an in-flight pipeline", reportDedupedTotal.Load())
	writeHistogram(&buf, "report_duration_ms", "Report pipeline duration in milliseconds", reportDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
