package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eim-dev/eim-client/pkg/model"
)

func TestWriteValueYAML(t *testing.T) {
	state := model.State{
		Tracks: []model.Track{{ID: 5, Name: "Drums", Volume: 1}},
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, outputYAML, state); err != nil {
		t.Fatalf("writeValue() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"tracks:", "name: Drums", "hasInstrument: false", "scanning: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteValueJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeValue(&buf, outputJSON, map[string]int{"a": 1}); err != nil {
		t.Fatalf("writeValue() error = %v", err)
	}
	if got := buf.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Errorf("output = %q", got)
	}
}

func TestCheckOutput(t *testing.T) {
	if err := checkOutput("yaml", outputJSON, outputYAML); err != nil {
		t.Errorf("checkOutput(yaml) error = %v", err)
	}
	if err := checkOutput("xml", outputJSON, outputYAML); err == nil {
		t.Error("checkOutput(xml) accepted")
	}
}
