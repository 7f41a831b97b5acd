package view

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWritesBumpVersion(t *testing.T) {
	p := NewPage()
	p.SetDate("2024-03-01")
	p.SetLoading(true)

	s := p.Snapshot()
	if s.Version != 2 {
		t.Fatalf("expected version 2, got %d", s.Version)
	}
	if s.Date != "2024-03-01" || !s.Loading {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if p.Date() != "2024-03-01" {
		t.Fatalf("Date slot not readable")
	}
}

func TestAlertIDIncrements(t *testing.T) {
	p := NewPage()
	p.Alert("a")
	p.Alert("a")
	if s := p.Snapshot(); s.AlertID != 2 || s.Alert != "a" {
		t.Fatalf("unexpected alert state %+v", s)
	}
}

func TestWaitReturnsImmediatelyWhenNewer(t *testing.T) {
	p := NewPage()
	p.SetInput("서울")

	s, err := p.Wait(context.Background(), 0)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if s.Input != "서울" {
		t.Fatalf("unexpected input %q", s.Input)
	}
}

func TestWaitWakesOnWrite(t *testing.T) {
	p := NewPage()
	done := make(chan Snapshot, 1)
	go func() {
		s, _ := p.Wait(context.Background(), 0)
		done <- s
	}()

	time.Sleep(10 * time.Millisecond)
	p.SetContent("<p>hi</p>")

	select {
	case s := <-done:
		if s.Content != "<p>hi</p>" {
			t.Fatalf("unexpected content %q", s.Content)
		}
	case <-time.After(time.Second):
		t.Fatalf("waiter was not woken")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	p := NewPage()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Wait(ctx, 0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
