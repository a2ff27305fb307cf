package jobs

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestNewJobSystemErrors(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
		want    error
	}{
		{"no workers", 0, 1, ErrNoWorkers},
		{"negative channel", 2, -1, ErrNegativeChannelSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewJobSystem(tt.workers, tt.size); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestJobSystemRunsEveryJob(t *testing.T) {
	js, err := NewJobSystem(4, 0)
	if err != nil {
		t.Fatal(err)
	}

	var done, failed atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 20; i++ {
		run := func() error { return nil }
		if i%5 == 0 {
			run = func() error { return boom }
		}
		err := js.Submit(JobTask{
			Name:       "count",
			Run:        run,
			OnComplete: func() { done.Add(1) },
			OnFailure:  func(error) { failed.Add(1) },
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := js.Shutdown(); !errors.Is(err, boom) {
		t.Errorf("Shutdown() = %v, want joined %v", err, boom)
	}
	if done.Load() != 16 || failed.Load() != 4 {
		t.Errorf("done = %d, failed = %d, want 16 and 4", done.Load(), failed.Load())
	}

	if err := js.Submit(JobTask{Run: func() error { return nil }}); !errors.Is(err, ErrShutdown) {
		t.Errorf("Submit after shutdown = %v, want %v", err, ErrShutdown)
	}
	if err := js.Shutdown(); !errors.Is(err, ErrShutdown) {
		t.Errorf("second Shutdown = %v, want %v", err, ErrShutdown)
	}
}
