package cli

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// spinnerFrames is the animation sequence for the progress spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the frame rate of the spinner animation.
const spinnerInterval = 80 * time.Millisecond

// Spinner displays an animated progress indicator on the terminal. It is
// safe to Stop a spinner more than once.
type Spinner struct {
	message string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	ctx     context.Context
}

// newSpinner creates a spinner with the given message. It does not start
// animating until Start is called.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when the context
// is cancelled (e.g. on Ctrl-C).
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
		ctx:     ctx,
	}
}

// Start begins the spinner animation in a background goroutine.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				fmt.Print("\r\033[K") // clear line
				return
			case <-s.ctx.Done():
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", styleIconSpinner.Render(spinnerFrames[frame]), s.message)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// StopWithSuccess halts the spinner and prints a success message.
func (s *Spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError halts the spinner and prints an error message.
func (s *Spinner) StopWithError(format string, args ...any) {
	s.Stop()
	printError(format, args...)
}

// Cancelled reports whether the spinner's context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
