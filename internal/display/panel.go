package display

import (
	"errors"
	"fmt"
	"sync"

	"bacbo-live-client/internal/models"
)

// Panel writes analyzer replies into the four caller-supplied targets.
// Each Apply is atomic with respect to other Applies, so the panel always
// shows one whole reply: the one applied last.
type Panel struct {
	mu         sync.Mutex
	signal     Target
	confidence Target
	greens     Target
	reds       Target
	last       *models.RoundResponse
}

func NewPanel(signal, confidence, greens, reds Target) (*Panel, error) {
	missing := []string{}
	for id, t := range map[string]Target{
		ElementSignal:     signal,
		ElementConfidence: confidence,
		ElementGreens:     greens,
		ElementReds:       reds,
	} {
		if t == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingTarget, missing)
	}

	return &Panel{
		signal:     signal,
		confidence: confidence,
		greens:     greens,
		reds:       reds,
	}, nil
}

// NewPanelFromMap looks the targets up by element id.
func NewPanelFromMap(targets map[string]Target) (*Panel, error) {
	return NewPanel(
		targets[ElementSignal],
		targets[ElementConfidence],
		targets[ElementGreens],
		targets[ElementReds],
	)
}

// Texts is the text each element gets for resp.
func Texts(resp models.RoundResponse) map[string]string {
	return map[string]string{
		ElementSignal:     models.FormatSignal(resp.Signal),
		ElementConfidence: models.FormatConfidence(resp.Confidence),
		ElementGreens:     resp.Greens.String(),
		ElementReds:       resp.Reds.String(),
	}
}

func (p *Panel) Apply(resp models.RoundResponse) error {
	texts := Texts(resp)

	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, slot := range []struct {
		id     string
		target Target
	}{
		{ElementSignal, p.signal},
		{ElementConfidence, p.confidence},
		{ElementGreens, p.greens},
		{ElementReds, p.reds},
	} {
		if err := slot.target.SetText(texts[slot.id]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", slot.id, err))
		}
	}

	p.last = &resp
	return errors.Join(errs...)
}

// Last returns the most recently applied reply.
func (p *Panel) Last() (models.RoundResponse, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return models.RoundResponse{}, false
	}
	return *p.last, true
}

// Snapshot reads back every target that can be read.
func (p *Panel) Snapshot() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]string, len(Elements))
	for id, t := range map[string]Target{
		ElementSignal:     p.signal,
		ElementConfidence: p.confidence,
		ElementGreens:     p.greens,
		ElementReds:       p.reds,
	} {
		if r, ok := t.(Reader); ok {
			out[id] = r.Text()
		}
	}
	return out
}
