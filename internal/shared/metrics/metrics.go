package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	usersRegisteredTotal atomic.Uint64
	loginsFailedTotal    atomic.Uint64
	resumesBuiltTotal    atomic.Uint64
	jobsPostedTotal      atomic.Uint64
	reviewsWrittenTotal  atomic.Uint64
	scrapeCacheHitsTotal atomic.Uint64
	scrapeFetchesTotal   atomic.Uint64
	resumesScoredTotal   atomic.Uint64

	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncUsersRegistered increments the registered users counter.
func IncUsersRegistered() { usersRegisteredTotal.Add(1) }

// IncLoginsFailed increments the failed login counter.
func IncLoginsFailed() { loginsFailedTotal.Add(1) }

// IncResumesBuilt increments the resumes built counter.
func IncResumesBuilt() { resumesBuiltTotal.Add(1) }

// IncJobsPosted increments the job postings counter.
func IncJobsPosted() { jobsPostedTotal.Add(1) }

// IncReviewsWritten increments the reviews counter.
func IncReviewsWritten() { reviewsWrittenTotal.Add(1) }

// IncScrapeCacheHit counts a scrape served from cache.
func IncScrapeCacheHit() { scrapeCacheHitsTotal.Add(1) }

// IncScrapeFetch counts a scrape fetched from GitHub.
func IncScrapeFetch() { scrapeFetchesTotal.Add(1) }

// IncResumesScored counts resume-against-job scorings.
func IncResumesScored() { resumesScoredTotal.Add(1) }

// ObserveRequestDurationMs records a request duration in milliseconds.
func ObserveRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	requestDuration.Observe(value)
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
	writeCounter(&buf, "users_registered_total", "Total users registered", usersRegisteredTotal.Load())
	writeCounter(&buf, "logins_failed_total", "Total failed logins", loginsFailedTotal.Load())
	writeCounter(&buf, "resumes_built_total", "Total resumes built", resumesBuiltTotal.Load())
	writeCounter(&buf, "jobs_posted_total", "Total jobs posted", jobsPostedTotal.Load())
	writeCounter(&buf, "reviews_written_total", "Total reviews written", reviewsWrittenTotal.Load())
	writeCounter(&buf, "scrape_cache_hits_total", "GitHub scrapes served from cache", scrapeCacheHitsTotal.Load())
	writeCounter(&buf, "scrape_fetches_total", "GitHub scrapes fetched upstream", scrapeFetchesTotal.Load())
	writeCounter(&buf, "resumes_scored_total", "Total resumes scored against jobs", resumesScoredTotal.Load())
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
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
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
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
