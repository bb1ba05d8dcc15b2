package display

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Element ids the analyzer page exposes.
const (
	ElementSignal     = "signal"
	ElementConfidence = "confidence"
	ElementGreens     = "greens"
	ElementReds       = "reds"
)

var Elements = []string{ElementSignal, ElementConfidence, ElementGreens, ElementReds}

var ErrMissingTarget = errors.New("display target missing")

// Target is one visible text slot. The caller owns it.
type Target interface {
	SetText(text string) error
}

type Reader interface {
	Text() string
}

// Label is an in-memory text cell.
type Label struct {
	mu   sync.RWMutex
	text string
	sets int
}

func NewLabel() *Label {
	return &Label{}
}

func (l *Label) SetText(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
	l.sets++
	return nil
}

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// Writes returns how many times the label has been set.
func (l *Label) Writes() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sets
}

// LineTarget prints "<id>: <text>" to out on every update.
type LineTarget struct {
	ID  string
	Out io.Writer

	mu *sync.Mutex
}

// NewLineTargets builds one LineTarget per element, all sharing out.
func NewLineTargets(out io.Writer) map[string]Target {
	mu := &sync.Mutex{}
	targets := make(map[string]Target, len(Elements))
	for _, id := range Elements {
		targets[id] = &LineTarget{ID: id, Out: out, mu: mu}
	}
	return targets
}

func (t *LineTarget) SetText(text string) error {
	if t.mu != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
	}
	_, err := fmt.Fprintf(t.Out, "%s: %s\n", t.ID, text)
	return err
}

// Multi fans one element out to several targets. Every target is written
// even if an earlier one fails.
type Multi []Target

func (m Multi) SetText(text string) error {
	var errs []error
	for _, t := range m {
		if err := t.SetText(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Text reads the first readable target.
func (m Multi) Text() string {
	for _, t := range m {
		if r, ok := t.(Reader); ok {
			return r.Text()
		}
	}
	return ""
}
