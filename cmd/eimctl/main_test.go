package main

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/eim-dev/eim-client/internal/errors"
	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("GetConfig: %w", client.ErrTimeout), "E133"},
		{client.ErrChannelClosed, "E131"},
		{&client.BackendError{Op: protocol.ServerboundLoadPlugin, Message: "no such plugin"}, "E132"},
		{fmt.Errorf("%w: pan 300", protocol.ErrInvalidArgument), "E160"},
		{fmt.Errorf("%w: index 9", client.ErrUnknownTrack), "E160"},
		{errors.New("E130"), "E130"},
	}

	for _, tc := range tests {
		var ce *errors.CLIError
		got := classify(tc.err)
		if !stderrors.As(got, &ce) {
			t.Errorf("classify(%v) = %v, not a CLIError", tc.err, got)
			continue
		}
		if ce.Code != tc.code {
			t.Errorf("classify(%v).Code = %s, want %s", tc.err, ce.Code, tc.code)
		}
		if !stderrors.Is(got, tc.err) && ce != tc.err {
			t.Errorf("classify(%v) lost the cause", tc.err)
		}
	}

	plain := stderrors.New("something else")
	if got := classify(plain); got != plain {
		t.Errorf("classify(plain) = %v", got)
	}
}
