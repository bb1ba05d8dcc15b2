package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"bacbo-live-client/internal/models"
)

func TestRoundResponseRendering(t *testing.T) {
	var resp models.RoundResponse
	body := `{"signal":"CALL","confidence":87,"greens":5,"reds":2}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if got := models.FormatSignal(resp.Signal); got != "Sinal: CALL" {
		t.Errorf("Expected 'Sinal: CALL', got %q", got)
	}
	if got := models.FormatConfidence(resp.Confidence); got != "Confiança: 87%" {
		t.Errorf("Expected 'Confiança: 87%%', got %q", got)
	}
	if resp.Greens.String() != "5" || resp.Reds.String() != "2" {
		t.Errorf("Expected counters 5/2, got %s/%s", resp.Greens, resp.Reds)
	}
}

func TestMissingAndNullFields(t *testing.T) {
	var resp models.RoundResponse
	if err := json.Unmarshal([]byte(`{"signal":null,"greens":1,"reds":0}`), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Confidence.Present() {
		t.Error("Confidence should not be present")
	}
	if got := models.FormatConfidence(resp.Confidence); got != "Confiança: undefined%" {
		t.Errorf("Expected undefined confidence, got %q", got)
	}
	if !resp.Signal.IsNull() {
		t.Error("Signal should be present and null")
	}
	if got := models.FormatSignal(resp.Signal); got != "Sinal: null" {
		t.Errorf("Expected 'Sinal: null', got %q", got)
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`87.50`, "87.5"},
		{`66.67`, "66.67"},
		{`-0`, "0"},
		{`1e21`, "1e+21"},
		{`"12"`, "12"},
		{`true`, "true"},
		{`[1,null,"a"]`, "1,,a"},
		{`{"a":1}`, "[object Object]"},
	}

	for _, tc := range cases {
		if got := models.RawValue(tc.raw).String(); got != tc.want {
			t.Errorf("RawValue(%s).String() = %q, want %q", tc.raw, got, tc.want)
		}
	}

	var missing models.Value
	if missing.String() != "undefined" {
		t.Errorf("Zero Value should render undefined, got %q", missing.String())
	}
}

func TestValueAccessors(t *testing.T) {
	if f, ok := models.RawValue("87").Float(); !ok || f != 87 {
		t.Errorf("Expected 87, got %v (%v)", f, ok)
	}
	if _, ok := models.RawValue(`"87"`).Float(); ok {
		t.Error("String should not convert to float")
	}
	if s, ok := models.RawValue(`"BANKER"`).Str(); !ok || s != "BANKER" {
		t.Errorf("Expected BANKER, got %q (%v)", s, ok)
	}
}

func TestParseResult(t *testing.T) {
	cases := map[string]models.Result{
		"p":        models.ResultPlayer,
		" B ":      models.ResultBanker,
		"Tie":      models.ResultTie,
		"win":      models.Result("win"),
		"PLAYER&x": models.Result("PLAYER&x"),
	}

	for input, want := range cases {
		if got := models.ParseResult(input); got != want {
			t.Errorf("ParseResult(%q) = %q, want %q", input, got, want)
		}
	}

	if !models.ResultTie.Known() || models.Result("win").Known() {
		t.Error("Known() mismatch")
	}
}

func TestIsEntry(t *testing.T) {
	entry := models.RoundResponse{Signal: models.RawValue(`"PLAYER"`)}
	if !entry.IsEntry() {
		t.Error("PLAYER signal should be an entry")
	}

	wait := models.RoundResponse{Signal: models.RawValue(`"AGUARDAR"`)}
	if wait.IsEntry() {
		t.Error("AGUARDAR should not be an entry")
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := models.GenerateRequestID()
	b := models.GenerateRequestID()

	if !strings.HasPrefix(a, "round_") {
		t.Errorf("Unexpected request id format: %s", a)
	}
	if a == b {
		t.Error("Request ids should be unique")
	}
}
