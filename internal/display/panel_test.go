package display_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"bacbo-live-client/internal/display"
	"bacbo-live-client/internal/models"
)

func reply(signal, confidence, greens, reds string) models.RoundResponse {
	return models.RoundResponse{
		Signal:     models.RawValue(signal),
		Confidence: models.RawValue(confidence),
		Greens:     models.RawValue(greens),
		Reds:       models.RawValue(reds),
	}
}

func TestPanelApply(t *testing.T) {
	signal, confidence, greens, reds := display.NewLabel(), display.NewLabel(), display.NewLabel(), display.NewLabel()
	panel, err := display.NewPanel(signal, confidence, greens, reds)
	if err != nil {
		t.Fatalf("Failed to build panel: %v", err)
	}

	if err := panel.Apply(reply(`"CALL"`, `87`, `5`, `2`)); err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}

	want := map[string]string{
		"signal":     "Sinal: CALL",
		"confidence": "Confiança: 87%",
		"greens":     "5",
		"reds":       "2",
	}
	snapshot := panel.Snapshot()
	if len(snapshot) != 4 {
		t.Fatalf("Expected 4 readable targets, got %d", len(snapshot))
	}
	for id, text := range snapshot {
		if want[id] != text {
			t.Errorf("%s = %q, want %q", id, text, want[id])
		}
	}

	last, ok := panel.Last()
	if !ok || last.Signal.String() != "CALL" {
		t.Errorf("Last reply not kept: %v %v", last, ok)
	}
}

func TestNewPanelMissingTarget(t *testing.T) {
	_, err := display.NewPanel(display.NewLabel(), nil, display.NewLabel(), display.NewLabel())
	if !errors.Is(err, display.ErrMissingTarget) {
		t.Fatalf("Expected ErrMissingTarget, got %v", err)
	}
	if !strings.Contains(err.Error(), "confidence") {
		t.Errorf("Error should name the missing element: %v", err)
	}

	_, err = display.NewPanelFromMap(map[string]display.Target{"signal": display.NewLabel()})
	if !errors.Is(err, display.ErrMissingTarget) {
		t.Errorf("Expected ErrMissingTarget from map, got %v", err)
	}
}

type failingTarget struct{}

func (failingTarget) SetText(string) error { return errors.New("detached") }

func TestPanelApplyWritesEveryTarget(t *testing.T) {
	greens := display.NewLabel()
	reds := display.NewLabel()
	panel, err := display.NewPanel(failingTarget{}, display.NewLabel(), greens, reds)
	if err != nil {
		t.Fatalf("Failed to build panel: %v", err)
	}

	err = panel.Apply(reply(`"PLAYER"`, `60`, `7`, `3`))
	if err == nil || !strings.Contains(err.Error(), "signal") {
		t.Fatalf("Expected signal error, got %v", err)
	}
	if greens.Text() != "7" || reds.Text() != "3" {
		t.Errorf("Other targets should still be written: %q %q", greens.Text(), reds.Text())
	}
}

func TestLineTargets(t *testing.T) {
	var out bytes.Buffer
	panel, err := display.NewPanelFromMap(display.NewLineTargets(&out))
	if err != nil {
		t.Fatalf("Failed to build panel: %v", err)
	}

	if err := panel.Apply(reply(`"BANKER"`, `66.67`, `1`, `0`)); err != nil {
		t.Fatalf("Failed to apply: %v", err)
	}

	want := "signal: Sinal: BANKER\nconfidence: Confiança: 66.67%\ngreens: 1\nreds: 0\n"
	if out.String() != want {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestMulti(t *testing.T) {
	a, b := display.NewLabel(), display.NewLabel()
	m := display.Multi{a, failingTarget{}, b}

	if err := m.SetText("x"); err == nil {
		t.Error("Expected joined error")
	}
	if a.Text() != "x" || b.Text() != "x" {
		t.Error("Every target should receive the text")
	}
	if m.Text() != "x" {
		t.Errorf("Multi should read back its first label, got %q", m.Text())
	}
}

// recorder appends every write to a shared log.
type recorder struct {
	mu  *sync.Mutex
	log *[]string
	id  string
}

func (r recorder) SetText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.log = append(*r.log, r.id+"="+text)
	return nil
}

func TestPanelApplyIsAtomic(t *testing.T) {
	mu := &sync.Mutex{}
	var log []string
	targets := map[string]display.Target{}
	for _, id := range display.Elements {
		targets[id] = recorder{mu: mu, log: &log, id: id}
	}
	panel, err := display.NewPanelFromMap(targets)
	if err != nil {
		t.Fatalf("Failed to build panel: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signal := `"PLAYER"`
			if i%2 == 1 {
				signal = `"BANKER"`
			}
			panel.Apply(reply(signal, `50`, `1`, `1`))
		}(i)
	}
	wg.Wait()

	if len(log) != 80 {
		t.Fatalf("Expected 80 writes, got %d", len(log))
	}
	for i := 0; i < len(log); i += 4 {
		if !strings.HasPrefix(log[i], "signal=") || !strings.HasPrefix(log[i+3], "reds=") {
			t.Fatalf("Applies interleaved at write %d: %v", i, log[i:i+4])
		}
	}
}
