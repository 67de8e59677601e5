package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// spinnerFrames are the animation frames for the spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"} //nolint:gochecknoglobals // Package-level constant for spinner animation

// SpinnerInterval is the update interval for spinner animation.
const SpinnerInterval = 100 * time.Millisecond

// Spinner provides animated progress indication while a generation call is
// in flight. Writes to the underlying writer are serialized so the
// animation goroutine and the caller never interleave output.
type Spinner struct {
	w       io.Writer
	styles  *OutputStyles
	message string
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Start begins the spinner animation with the given message.
// Calling Start on a running spinner only updates the message.
func (s *Spinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.running {
		return
	}

	s.running = true
	s.done = make(chan struct{})
	go s.animate(ctx, s.done)
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done := s.done
	s.mu.Unlock()

	close(done)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprint(s.w, "\r\033[K")
}

// StopWithSuccess stops the spinner and displays a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Success.Render("✓ "+message))
}

// StopWithError stops the spinner and displays an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Error.Render("✗ "+message))
}

// animate runs the animation loop until done is closed or ctx is cancelled.
func (s *Spinner) animate(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.running {
				s.running = false
				_, _ = fmt.Fprint(s.w, "\r\033[K")
			}
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.running {
				glyph := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
				_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", glyph, s.message)
			}
			s.mu.Unlock()
			frame++
		}
	}
}
