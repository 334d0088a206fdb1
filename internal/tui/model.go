package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/surface"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Source QuoteSource
	// Sink and Draft enable the uploader. Without a Draft nothing is posted.
	Sink    QuoteSink
	Draft   quote.Draft
	Timeout time.Duration
	Logger  *zap.Logger
}

// App mounts the quote loader and, when a draft is configured, the uploader.
type App struct {
	config   Config
	log      *zap.Logger
	loader   *Loader
	uploader *Uploader
	width    int
	jobs     map[string]jobSnapshot
	jobOrder []string
	quitting bool
}

// New returns an App ready to be mounted into a Program.
func New(config Config) *App {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	bus := newJobBus(log)
	app := &App{
		config: config,
		log:    log.Named("app"),
		width:  defaultViewportWidth,
		jobs:   map[string]jobSnapshot{},
		loader: NewLoader(LoaderConfig{
			Source:  config.Source,
			Timeout: config.Timeout,
			Logger:  log,
			jobs:    bus,
		}),
	}
	if config.Sink != nil && config.Draft != nil {
		app.uploader = NewUploader(UploaderConfig{
			Sink:    config.Sink,
			Draft:   config.Draft,
			Timeout: config.Timeout,
			Logger:  log,
			jobs:    bus,
		})
	}
	return app
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loader.Init()}
	if a.uploader != nil {
		cmds = append(cmds, a.uploader.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			a.quit()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
	case jobSignalMsg:
		a.recordJob(msg.Snapshot)
		return a, nil
	case jobResultEnvelope:
		a.recordJob(msg.Snapshot)
		return a.forward(msg.Payload)
	}
	return a.forward(msg)
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.quitting {
		return a, nil
	}
	var cmds []tea.Cmd
	if _, cmd := a.loader.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.uploader != nil {
		if _, cmd := a.uploader.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// recordJob keeps the latest snapshot per job. A running signal never
// overwrites a finished snapshot; the two may arrive in either order.
func (a *App) recordJob(snapshot jobSnapshot) {
	existing, ok := a.jobs[snapshot.ID]
	if !ok {
		a.jobOrder = append(a.jobOrder, snapshot.ID)
	} else if existing.Status != jobStatusRunning && snapshot.Status == jobStatusRunning {
		return
	}
	a.jobs[snapshot.ID] = snapshot
}

func (a *App) quit() {
	if a.quitting {
		return
	}
	a.quitting = true
	a.loader.Unmount()
	if a.uploader != nil {
		a.uploader.Unmount()
	}
	a.log.Debug("unmounted views")
}

// Nodes is the accessible tree of every mounted view.
func (a *App) Nodes() []surface.Node {
	nodes := append([]surface.Node{}, a.loader.Nodes()...)
	if a.uploader != nil {
		nodes = append(nodes, a.uploader.Nodes()...)
	}
	return nodes
}

// Loader exposes the mounted loader.
func (a *App) Loader() *Loader {
	return a.loader
}

// Uploader exposes the mounted uploader, or nil.
func (a *App) Uploader() *Uploader {
	return a.uploader
}

// Unmount discards every view.
func (a *App) Unmount() {
	a.quit()
}
