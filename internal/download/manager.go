package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/xkcd-downloader/internal/config"
	"github.com/handiism/xkcd-downloader/internal/http"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/handiism/xkcd-downloader/internal/xkcd"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary counts the results of a run.
type Summary struct {
	Total   int
	Saved   int
	Skipped int
	Failed  int
}

// Manager coordinates the download of a page range.
type Manager struct {
	settings *config.Settings
	locator  Locator
	sink     *Sink

	totalPages   int32
	donePages    int32
	savedPages   int32
	skippedPages int32
	failedPages  int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new download Manager.
//
// Every fetch attempt is reported through onProgress: successes at
// LevelVerbose, retries at LevelWarning. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		onProgress: onProgress,
	}

	opts := settings.HTTPOptions()
	opts.OnAttempt = m.reportAttempt
	client := http.NewClient(opts)

	m.locator = xkcd.NewLocator(settings.SiteURL, client)
	m.sink = NewSink(xkcd.NewResolver(settings.SiteURL, client), client, settings.MaxImageSize, m.progress)
	return m
}

// Run downloads every page of rng into outputDir.
//
// An open range (End == 0) is closed by locating the latest page first; a
// failure to do so is returned since no range can be computed. A zero Start
// means page 1. At most settings.MaxParallel pages are processed at once.
// Failed or skipped pages never affect other pages.
//
// Run returns once every submitted page has finished. If ctx is cancelled
// no further pages are submitted and ctx.Err() is returned along with the
// summary of the pages that did finish.
func (m *Manager) Run(ctx context.Context, outputDir string, rng model.Range) (Summary, error) {
	if rng.Start == 0 {
		rng.Start = 1
	}
	if rng.Open() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Looking for the latest comic on %s", m.settings.SiteURL), Level: LevelInfo})

		last, err := m.locator.FindLastPage(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("find last page: %w", err)
		}
		rng.End = last
	}
	if err := rng.Validate(); err != nil {
		return Summary{}, err
	}

	parallel := m.settings.MaxParallel
	if parallel <= 0 {
		parallel = config.DefaultSettings().MaxParallel
	}

	m.reset(rng.Len())
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching pages %s (parallel=%d)", rng, parallel), Level: LevelInfo})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, page := range rng.Pages() {
		if gctx.Err() != nil {
			break
		}
		task := model.DownloadTask{Page: page, OutputDir: outputDir}
		g.Go(func() error {
			m.record(m.sink.EnsureDownloaded(gctx, task))
			return nil // Continue with other pages
		})
	}

	_ = g.Wait()

	summary := m.Summary()
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// GetProgress returns the number of finished pages and the number of pages in the run.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.donePages), atomic.LoadInt32(&m.totalPages)
}

// Summary returns the counters of the current or last run.
func (m *Manager) Summary() Summary {
	return Summary{
		Total:   int(atomic.LoadInt32(&m.totalPages)),
		Saved:   int(atomic.LoadInt32(&m.savedPages)),
		Skipped: int(atomic.LoadInt32(&m.skippedPages)),
		Failed:  int(atomic.LoadInt32(&m.failedPages)),
	}
}

func (m *Manager) reset(total int) {
	atomic.StoreInt32(&m.totalPages, int32(total))
	atomic.StoreInt32(&m.donePages, 0)
	atomic.StoreInt32(&m.savedPages, 0)
	atomic.StoreInt32(&m.skippedPages, 0)
	atomic.StoreInt32(&m.failedPages, 0)
}

func (m *Manager) record(r model.Result) {
	switch r.Status {
	case model.StatusSaved:
		atomic.AddInt32(&m.savedPages, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s in %s", filepath.Base(r.Path), filepath.Dir(r.Path)), Level: LevelSuccess})
	case model.StatusSkipped:
		atomic.AddInt32(&m.skippedPages, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s already exists. Skipping...", r.Path), Level: LevelVerbose})
	case model.StatusFailed:
		atomic.AddInt32(&m.failedPages, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to get page %d (%s): %v", r.Task.Page, r.Kind, r.Err), Level: LevelError})
	}
	atomic.AddInt32(&m.donePages, 1)
}

func (m *Manager) reportAttempt(a http.Attempt) {
	switch {
	case a.Err == nil:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Got %s", a.URL), Level: LevelVerbose})
	case a.Transient && a.Number < a.Budget:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to get %s (retries left=%d). Retrying...", a.URL, a.Budget-a.Number), Level: LevelWarning})
	default:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Giving up on %s after %d attempt(s): %v", a.URL, a.Number, a.Err), Level: LevelVerbose})
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
