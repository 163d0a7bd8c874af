package formatter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Braille dot spinner frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// GenerationMessages rotate under the spinner while a lesson is generated.
var GenerationMessages = []string{
	"Aligning with your objective...",
	"Synthesizing practical exercises...",
	"Optimizing for your expertise level...",
	"Finalizing neural pathways...",
}

const (
	spinnerTick = 80 * time.Millisecond
	// framesPerMessage is how many ticks a message stays up before rotating.
	framesPerMessage = 20
)

// Spinner displays an animated spinner with a message in the terminal.
// With several messages it cycles through them.
type Spinner struct {
	mu       sync.Mutex
	out      io.Writer
	messages []string
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner writing to out. With no messages it shows a
// bare spinner.
func NewSpinner(out io.Writer, messages ...string) *Spinner {
	if out == nil {
		out = os.Stdout
	}
	return &Spinner{
		out:      out,
		messages: messages,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// MessageAt returns the message shown at the given frame.
func (s *Spinner) MessageAt(frame int) string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[(frame/framesPerMessage)%len(s.messages)]
}

// Start begins the spinner animation. Call Stop() to end it.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		i := 0
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				// Clear the spinner line.
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r\033[K  %s %s", StylePurple.Render(frame), Dim(s.MessageAt(i)))
				i++
			}
		}
	}()
}

// Stop ends the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner creates and starts a spinner on out. Call the returned
// function to stop it.
func StartSpinner(out io.Writer, messages ...string) func() {
	s := NewSpinner(out, messages...)
	s.Start()
	return s.Stop
}
