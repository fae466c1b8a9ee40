package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tamimideals/monitor/internal/deal"
	"tamimideals/monitor/internal/pipeline"
	"tamimideals/monitor/logger"
	"tamimideals/monitor/pkg/errors"
	"tamimideals/monitor/services/notifier"
	"tamimideals/monitor/services/publisher"
	"tamimideals/monitor/services/renderer"
)

// RunStats summarizes one monitoring run.
type RunStats struct {
	Scanned int
	Matched int
	Sent    int
	Failed  int
}

// Worker drives the monitoring cycle: render the page, run the pipeline,
// archive the product list and deliver the composed payloads.
type Worker struct {
	renderer    renderer.PageRenderer
	pipeline    *pipeline.Pipeline
	notifier    notifier.Notifier
	publisher   publisher.Publisher
	interval    time.Duration
	debugDir    string
	environment string
	log         *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(
	r renderer.PageRenderer,
	p *pipeline.Pipeline,
	n notifier.Notifier,
	pub publisher.Publisher,
	interval time.Duration,
	debugDir string,
	environment string,
) *Worker {
	return &Worker{
		renderer:    r,
		pipeline:    p,
		notifier:    n,
		publisher:   pub,
		interval:    interval,
		debugDir:    debugDir,
		environment: environment,
		log:         logger.ForWorker(),
	}
}

// Start runs monitoring cycles until the context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	for {
		start := time.Now()
		if _, err := w.RunOnce(ctx); err != nil {
			w.log.Error().Err(err).Msg("Run failed")
		}
		w.log.Info().Dur("elapsed", time.Since(start)).Msg("Run finished")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.interval):
		}
	}
}

// RunOnce executes a single monitoring cycle. A failure to acquire or parse
// the page is reported upward after an error notice is sent; pipeline output
// is always delivered, even when nothing matched.
func (w *Worker) RunOnce(ctx context.Context) (RunStats, error) {
	var stats RunStats

	html, err := w.renderer.Render(ctx)
	if err != nil {
		w.log.Error().Err(err).Str("renderer", w.renderer.Name()).Msg("Failed to render page")
		w.sendFailureNotice(err)
		return stats, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stats, errors.NewParsing(w.renderer.Name(), "failed to parse page HTML", err)
	}

	result := w.pipeline.Run(doc)
	stats.Scanned = len(result.AllProducts)
	stats.Matched = len(result.MatchedProducts)

	w.archive(result)
	w.writeDebugArtifacts(html, result)

	for _, payload := range result.Messages {
		if w.notifier == nil {
			break
		}
		if err := w.notifier.Send(payload); err != nil {
			w.log.Error().Err(err).Msg("Failed to send payload")
			stats.Failed++
			continue
		}
		stats.Sent++
	}

	w.log.Info().
		Int("scanned", stats.Scanned).
		Int("matched", stats.Matched).
		Int("sent", stats.Sent).
		Int("failed", stats.Failed).
		Msg("Monitoring cycle complete")

	return stats, nil
}

// archive publishes the full product list to the archive stream.
func (w *Worker) archive(result deal.RunResult) {
	if w.publisher == nil {
		return
	}

	data, err := json.Marshal(result.AllProducts)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal products for archive")
		return
	}

	if err := w.publisher.Publish("products", data); err != nil {
		w.log.Error().Err(err).Msg("Failed to publish products")
		return
	}
	if err := w.publisher.TrimStream(); err != nil {
		w.log.Error().Err(err).Msg("Failed to trim archive stream")
	}
}

// writeDebugArtifacts dumps the raw page HTML and the extracted product
// list next to the binary. Production runs skip this.
func (w *Worker) writeDebugArtifacts(html string, result deal.RunResult) {
	if w.environment == "production" || w.debugDir == "" {
		return
	}

	timestamp := time.Now().Format("20060102_150405")

	htmlPath := filepath.Join(w.debugDir, fmt.Sprintf("tamimi_deals_%s.html", timestamp))
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		w.log.Warn().Err(err).Str("path", htmlPath).Msg("Failed to write HTML dump")
	}

	data, err := json.MarshalIndent(result.AllProducts, "", "  ")
	if err != nil {
		return
	}
	jsonPath := filepath.Join(w.debugDir, fmt.Sprintf("tamimi_products_%s.json", timestamp))
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		w.log.Warn().Err(err).Str("path", jsonPath).Msg("Failed to write products dump")
	}
}

// sendFailureNotice tells the chat that the page could not be checked.
func (w *Worker) sendFailureNotice(cause error) {
	if w.notifier == nil {
		return
	}

	payload := fmt.Sprintf("⚠️ <b>Tamimi Monitor Error</b>\n\n<code>%s</code>", cause.Error())
	if err := w.notifier.Send(payload); err != nil {
		w.log.Error().Err(err).Msg("Failed to send failure notice")
	}
}
