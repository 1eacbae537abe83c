package platform

/*
 * civrecomp - event-pump contract tests
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"testing"

	"github.com/sp00nznet/civrecomp/emu/dos"
)

func TestInstallWiresCallbackAndContext(t *testing.T) {
	s := dos.New(".")
	type ctxT struct{ tag string }
	ctx := ctxT{tag: "window"}

	called := false
	Install(s, ctx, func(c Context, st *dos.State) {
		called = true
		got, ok := c.(ctxT)
		if !ok || got.tag != "window" {
			t.Errorf("ctx = %#v, want ctxT{tag: window}", c)
		}
		if st != s {
			t.Error("callback received a different State than was installed")
		}
	})

	s.PollEvents(s.PlatformCtx, s)
	if !called {
		t.Error("installed callback was never invoked")
	}
}
