package quoteapi

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBookTodayRotatesDaily(t *testing.T) {
	t.Parallel()

	book := NewBook([]string{"Just do it", "Optimise for Clarity", "Make it work"})
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	book.now = func() time.Time { return day }

	first, err := book.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	book.now = func() time.Time { return day.Add(10 * time.Hour) }
	same, _ := book.Today(context.Background())
	if same != first {
		t.Fatalf("quote changed within a day: %q then %q", first.Text, same.Text)
	}
	book.now = func() time.Time { return day.Add(24 * time.Hour) }
	next, _ := book.Today(context.Background())
	if next == first {
		t.Fatalf("quote did not change on the next day: %q", next.Text)
	}
}

func TestBookEmpty(t *testing.T) {
	t.Parallel()

	book := NewBook(nil)
	if _, err := book.Today(context.Background()); !errors.Is(err, ErrNoQuotes) {
		t.Fatalf("expected ErrNoQuotes, got %v", err)
	}
	count, err := book.Add(context.Background(), "Just do it")
	if err != nil || count != 1 {
		t.Fatalf("Add = (%d, %v), want (1, nil)", count, err)
	}
	q, err := book.Today(context.Background())
	if err != nil || q.Text != "Just do it" {
		t.Fatalf("Today = (%q, %v)", q.Text, err)
	}
}

func TestBookHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	book := NewBook([]string{"Just do it"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := book.Add(ctx, "late"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Add: expected context.Canceled, got %v", err)
	}
	if _, err := book.Today(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Today: expected context.Canceled, got %v", err)
	}
	if _, err := book.All(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("All: expected context.Canceled, got %v", err)
	}
}

func TestBookAllReturnsCopy(t *testing.T) {
	t.Parallel()

	book := NewBook([]string{"Just do it"})
	all, err := book.All(context.Background())
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	all[0].Text = "mutated"
	again, _ := book.All(context.Background())
	if again[0].Text != "Just do it" {
		t.Fatalf("All exposed internal storage")
	}
	if err := book.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if _, err := book.Today(context.Background()); !errors.Is(err, ErrNoQuotes) {
		t.Fatalf("expected empty book after Close, got %v", err)
	}
}

func TestBookTodayStableAcrossAdds(t *testing.T) {
	t.Parallel()

	book := NewBook([]string{"Just do it"})
	day := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	book.now = func() time.Time { return day }

	before, err := book.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if _, err := book.Add(context.Background(), "Optimise for Clarity"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	book.now = func() time.Time { return day.Add(14 * time.Hour) }
	after, err := book.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if after != before {
		t.Fatalf("quote of the day changed after Add: before=%q after=%q", before.Text, after.Text)
	}

	// The next day picks over every stored quote again.
	book.now = func() time.Time { return day.Add(24 * time.Hour) }
	next, _ := book.Today(context.Background())
	day2 := day.Add(24*time.Hour).Unix() / int64(24*time.Hour/time.Second)
	want := []string{"Just do it", "Optimise for Clarity"}[day2%2]
	if next.Text != want {
		t.Fatalf("next day quote = %q, want %q", next.Text, want)
	}
}
