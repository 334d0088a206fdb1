package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/surface"
	"github.com/csheth/quoteoftheday/internal/viewstate"
)

// LoaderConfig wires a Loader.
type LoaderConfig struct {
	// Source is required; without one the loader fails with ErrNoSource.
	Source QuoteSource
	// LoadingReason is announced by the spinner. Defaults to
	// DefaultLoadingReason.
	LoadingReason string
	// Timeout bounds the request on top of the HTTP client's own timeout.
	// Zero means no extra bound.
	Timeout time.Duration
	Logger  *zap.Logger

	jobs *jobBus
}

// Loader fetches the quote of the day once, when mounted, and renders
// exactly one of: the error message, the spinner, the quote, or nothing.
type Loader struct {
	id      int64
	source  QuoteSource
	timeout time.Duration
	log     *zap.Logger
	jobs    *jobBus

	state   viewstate.Fetch
	spinner Spinner
	quote   *QuoteView
	width   int

	cancel    context.CancelFunc
	mounted   bool
	unmounted bool
}

// NewLoader returns an unmounted loader in the Idle state.
func NewLoader(cfg LoaderConfig) *Loader {
	reason := cfg.LoadingReason
	if reason == "" {
		reason = DefaultLoadingReason
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	jobs := cfg.jobs
	if jobs == nil {
		jobs = newJobBus(log)
	}
	source := cfg.Source
	if source == nil {
		source = unconfigured{}
	}
	return &Loader{
		id:      nextInstanceID(),
		source:  source,
		timeout: cfg.Timeout,
		log:     log.Named("loader"),
		jobs:    jobs,
		spinner: NewSpinner(reason),
		width:   defaultViewportWidth,
	}
}

// Init mounts the loader and issues the single GET. Later calls do nothing.
func (l *Loader) Init() tea.Cmd {
	if l.mounted || l.unmounted {
		return nil
	}
	l.mounted = true
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	var attempt viewstate.Attempt
	l.state, attempt = l.state.Start()
	l.log.Debug("loading quote", zap.Uint64("attempt", uint64(attempt)))
	return tea.Batch(
		l.jobs.Start(ctx, jobKindFetch, fetchQuoteJob(l.id, attempt, l.source, l.timeout)),
		l.spinner.Tick,
	)
}

func (l *Loader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobResultEnvelope:
		return l.Update(msg.Payload)
	case quoteLoadedMsg:
		if msg.owner != l.id {
			return l, nil
		}
		if l.unmounted {
			l.log.Debug("dropping result after unmount", zap.Uint64("attempt", uint64(msg.attempt)))
			return l, nil
		}
		l.state = l.state.Resolve(msg.attempt, msg.quote, msg.err)
		switch l.state.Phase() {
		case viewstate.Failed:
			l.log.Warn("quote failed to load", zap.String("cause", l.state.Cause()), zap.Error(l.state.Reason()))
		case viewstate.Succeeded:
			q, _ := l.state.Quote()
			l.quote = NewQuoteView(q)
			l.quote.width = l.width
		}
		return l, nil
	case spinner.TickMsg:
		if l.unmounted || l.state.Phase() != viewstate.Pending {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd
	case tea.WindowSizeMsg:
		l.width = msg.Width
	}
	if l.quote != nil && !l.unmounted {
		_, cmd := l.quote.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *Loader) View() string {
	return surface.Render(l.Nodes(), wrapWidth(l.width))
}

// Nodes renders the branch picked by the fetch state.
func (l *Loader) Nodes() []surface.Node {
	switch l.state.Branch() {
	case viewstate.BranchError:
		return []surface.Node{surface.Alert(viewstate.FetchErrorMessage)}
	case viewstate.BranchPending:
		return []surface.Node{l.spinner.Node()}
	case viewstate.BranchSuccess:
		if l.quote != nil {
			return l.quote.Nodes()
		}
	}
	return nil
}

// State returns the current fetch view-state.
func (l *Loader) State() viewstate.Fetch {
	return l.state
}

// Unmount discards the loader. The in-flight request is cancelled and any
// result that still arrives is dropped.
func (l *Loader) Unmount() {
	if l.unmounted {
		return
	}
	l.unmounted = true
	if l.cancel != nil {
		l.cancel()
	}
}
