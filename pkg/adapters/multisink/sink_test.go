package multisink

import (
	"testing"

	"github.com/user/vidframes/pkg/adapters/nullsink"
	"github.com/user/vidframes/pkg/mocks"
	"github.com/user/vidframes/pkg/ports"
)

func TestSink_FansOut(t *testing.T) {
	a := &mocks.ProgressSink{}
	b := &mocks.ProgressSink{}
	sink := New(a, nil, nullsink.New(), b)

	sink.Progress(ports.Progress{FramesRead: 1})
	sink.Progress(ports.Progress{FramesRead: 2})
	sink.Done(ports.Completion{FramesRead: 2})

	for name, m := range map[string]*mocks.ProgressSink{"a": a, "b": b} {
		if len(m.Updates) != 2 {
			t.Errorf("%s: expected 2 updates, got %d", name, len(m.Updates))
		}
		if len(m.Completions) != 1 || m.Completions[0].FramesRead != 2 {
			t.Errorf("%s: unexpected completions %+v", name, m.Completions)
		}
	}
}

func TestSink_Empty(t *testing.T) {
	sink := New()
	sink.Progress(ports.Progress{})
	sink.Done(ports.Completion{})
}
