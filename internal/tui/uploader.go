package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/surface"
	"github.com/csheth/quoteoftheday/internal/viewstate"
)

// UploaderConfig wires an Uploader.
type UploaderConfig struct {
	// Sink is required; without one the uploader fails with ErrNoSink.
	Sink  QuoteSink
	Draft quote.Draft
	// PendingReason is announced while the POST is in flight. Defaults to
	// DefaultUploadingReason.
	PendingReason string
	Timeout       time.Duration
	Logger        *zap.Logger

	jobs *jobBus
}

// Uploader posts its draft once, when mounted, and renders the outcome.
type Uploader struct {
	id      int64
	sink    QuoteSink
	draft   quote.Draft
	timeout time.Duration
	log     *zap.Logger
	jobs    *jobBus

	state   viewstate.Upload
	spinner Spinner
	width   int

	cancel    context.CancelFunc
	mounted   bool
	unmounted bool
}

// NewUploader returns an unmounted uploader in the Idle state.
func NewUploader(cfg UploaderConfig) *Uploader {
	reason := cfg.PendingReason
	if reason == "" {
		reason = DefaultUploadingReason
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	jobs := cfg.jobs
	if jobs == nil {
		jobs = newJobBus(log)
	}
	sink := cfg.Sink
	if sink == nil {
		sink = unconfigured{}
	}
	return &Uploader{
		id:      nextInstanceID(),
		sink:    sink,
		draft:   cfg.Draft,
		timeout: cfg.Timeout,
		log:     log.Named("uploader"),
		jobs:    jobs,
		spinner: NewSpinner(reason),
		width:   defaultViewportWidth,
	}
}

// Init mounts the uploader and issues the single POST.
func (u *Uploader) Init() tea.Cmd {
	if u.mounted || u.unmounted {
		return nil
	}
	u.mounted = true
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel

	var attempt viewstate.Attempt
	u.state, attempt = u.state.Start()
	u.log.Debug("uploading quote", zap.Uint64("attempt", uint64(attempt)))
	return tea.Batch(
		u.jobs.Start(ctx, jobKindUpload, uploadQuoteJob(u.id, attempt, u.sink, u.draft, u.timeout)),
		u.spinner.Tick,
	)
}

func (u *Uploader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobResultEnvelope:
		return u.Update(msg.Payload)
	case quoteUploadedMsg:
		if msg.owner != u.id || u.unmounted {
			return u, nil
		}
		u.state = u.state.Resolve(msg.attempt, msg.err)
		if u.state.Phase() == viewstate.Failed {
			u.log.Warn("quote upload failed", zap.String("cause", u.state.Cause()), zap.Error(u.state.Reason()))
		}
		return u, nil
	case spinner.TickMsg:
		if u.unmounted || u.state.Phase() != viewstate.Pending {
			return u, nil
		}
		var cmd tea.Cmd
		u.spinner, cmd = u.spinner.Update(msg)
		return u, cmd
	case tea.WindowSizeMsg:
		u.width = msg.Width
	}
	return u, nil
}

func (u *Uploader) View() string {
	return surface.Render(u.Nodes(), wrapWidth(u.width))
}

// Nodes renders the upload branch. The success notice appears only after a
// 2xx response.
func (u *Uploader) Nodes() []surface.Node {
	switch u.state.Branch() {
	case viewstate.BranchError:
		return []surface.Node{surface.Alert(viewstate.UploadErrorMessage)}
	case viewstate.BranchPending:
		return []surface.Node{u.spinner.Node()}
	case viewstate.BranchSuccess:
		return []surface.Node{surface.Notice(viewstate.UploadSuccessMessage)}
	default:
		return nil
	}
}

// State returns the current upload view-state.
func (u *Uploader) State() viewstate.Upload {
	return u.state
}

// Unmount discards the uploader and cancels its request.
func (u *Uploader) Unmount() {
	if u.unmounted {
		return
	}
	u.unmounted = true
	if u.cancel != nil {
		u.cancel()
	}
}
