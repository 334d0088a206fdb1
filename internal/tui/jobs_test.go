package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestJobBusEmitsSignalAndResult(t *testing.T) {
	t.Parallel()

	bus := newJobBus(nil)
	cmd := bus.Start(context.Background(), jobKindFetch, func(ctx context.Context) (tea.Msg, error) {
		return "payload", nil
	})

	var signal *jobSignalMsg
	var result *jobResultEnvelope
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case jobSignalMsg:
			signal = &msg
		case jobResultEnvelope:
			result = &msg
		}
	}
	if signal == nil || signal.Snapshot.Status != jobStatusRunning || signal.Snapshot.ID != "fetch-1" {
		t.Fatalf("unexpected signal %+v", signal)
	}
	if result == nil || result.Snapshot.Status != jobStatusSucceeded || result.Payload != "payload" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Snapshot.ID != signal.Snapshot.ID {
		t.Fatalf("signal and result ids differ: %s vs %s", signal.Snapshot.ID, result.Snapshot.ID)
	}
}

func TestJobBusRecordsFailure(t *testing.T) {
	t.Parallel()

	bus := newJobBus(nil)
	cmd := bus.Start(context.Background(), jobKindUpload, func(ctx context.Context) (tea.Msg, error) {
		return nil, errors.New("rejected")
	})
	for _, msg := range collect(cmd) {
		if env, ok := msg.(jobResultEnvelope); ok {
			if env.Snapshot.Status != jobStatusFailed || env.Snapshot.Err != "rejected" {
				t.Fatalf("unexpected snapshot %+v", env.Snapshot)
			}
			return
		}
	}
	t.Fatalf("no result envelope")
}

func TestRecordJobKeepsFinishedSnapshot(t *testing.T) {
	t.Parallel()

	app := New(Config{Source: sourceFunc(nil)})
	finished := jobSnapshot{ID: "fetch-1", Kind: jobKindFetch, Status: jobStatusSucceeded, Duration: 12 * time.Millisecond}
	app.recordJob(finished)
	app.recordJob(jobSnapshot{ID: "fetch-1", Kind: jobKindFetch, Status: jobStatusRunning})

	badges := app.jobStatusBadges()
	if len(badges) != 1 || badges[0] != "fetch succeeded in 12ms" {
		t.Fatalf("unexpected badges %v", badges)
	}
}

func TestWithOptionalTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := withOptionalTimeout(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Fatalf("zero timeout should not set a deadline")
	}

	ctx, cancel = withOptionalTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("expected a deadline")
	}
}
