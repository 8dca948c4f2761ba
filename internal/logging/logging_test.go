package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_InfoHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})
	logger.Debug("hidden")
	logger.Info("shown", "hosting", "AWS Cloud")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, `hosting="AWS Cloud"`) {
		t.Errorf("expected structured field in output: %q", out)
	}
}

func TestNew_VerboseShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Verbose: true}).Debug("step", "n", 1)
	if !strings.Contains(buf.String(), "step") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestNew_QuietDiscards(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Quiet: true, Verbose: true}).Error("boom")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{JSON: true}).Info("analysis complete", "top_rpn", 270)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "analysis complete" {
		t.Errorf("msg = %v", entry["msg"])
	}
}
