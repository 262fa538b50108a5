package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E130")
	if err.Category != CategoryBackend {
		t.Errorf("Category = %q, want %q", err.Category, CategoryBackend)
	}
	if err.Message != "Backend unreachable" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != "E130: Backend unreachable" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" || err.Code != "E999" {
		t.Errorf("got %+v", err)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E130").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
	if !strings.HasSuffix(err.Error(), "connection refused") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E132") != nil {
		t.Error("FromError(nil) != nil")
	}
	orig := New("E101")
	if got := FromError(orig, "E132"); got != orig {
		t.Error("FromError re-wrapped a CLIError")
	}
	got := FromError(stderrors.New("boom"), "E132")
	if got.Code != "E132" || got.Wrapped == nil {
		t.Errorf("got %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E130").
		WithDetail("dial ws://127.0.0.1:8088 failed.").
		WithSuggestion("Start the backend").
		Format()

	for _, want := range []string{"ERROR E130: Backend unreachable", "dial ws://127.0.0.1:8088 failed.", "Hint: Start the backend"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := Newf(CategoryCLI, "bad index %d", 3).FormatCompact(); got != "bad index 3" {
		t.Errorf("FormatCompact() = %q", got)
	}
	if got := New("E160").FormatCompact(); got != "E160: Invalid argument" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") != nil")
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError() = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, New("E133"))
	if !strings.Contains(buf.String(), "E133") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}
