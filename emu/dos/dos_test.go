package dos

/*
 * civrecomp - DOS dispatcher tests
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/hal/input"
	"github.com/sp00nznet/civrecomp/emu/hal/timer"
	"github.com/sp00nznet/civrecomp/emu/hal/video"
	"github.com/sp00nznet/civrecomp/emu/memory"
)

func newTestState(t *testing.T) (*State, *cpu.State, *memory.Memory) {
	t.Helper()
	dir := t.TempDir()
	s := New(dir)
	s.Keyboard = input.NewKeyboard()
	s.Mouse = input.NewMouse()
	s.Timer = timer.New(0)
	s.Video = video.New()
	return s, cpu.New(), memory.New()
}

// Testable property 8: DOS path translation.
func TestTranslatePath(t *testing.T) {
	s := New("/g")
	got := s.TranslatePath(`FOO\BAR.DAT`)
	want := "/g/FOO/BAR.DAT"
	if got != want {
		t.Errorf("TranslatePath = %q, want %q", got, want)
	}
}

func TestTranslatePathStripsLeadingSlash(t *testing.T) {
	s := New("/g")
	got := s.TranslatePath(`\SAVE\GAME.SAV`)
	want := "/g/SAVE/GAME.SAV"
	if got != want {
		t.Errorf("TranslatePath = %q, want %q", got, want)
	}
}

// Scenario A: boot-and-exit.
func TestBootAndExitScenario(t *testing.T) {
	s, c, mem := newTestState(t)

	c.SetAH(0x30)
	s.HandleInt21(c, mem)
	if c.AX() != 0x0005 {
		t.Errorf("AX after AH=30 = %04X, want 0005", c.AX())
	}

	c.SetAH(0x4C)
	c.SetAL(7)
	s.HandleInt21(c, mem)
	if !c.Halted {
		t.Error("expected Halted after AH=4C")
	}
	if s.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", s.ExitCode)
	}
}

// Low-risk supplemental services the MSC CRT may probe during startup:
// select disk and FCB find-first/find-next.
func TestInt21SelectDiskAndFCBFind(t *testing.T) {
	s, c, mem := newTestState(t)

	c.SetAH(0x0E)
	s.HandleInt21(c, mem)
	if c.AL() != 5 {
		t.Errorf("AH=0E AL = %d, want 5 logical drives", c.AL())
	}
	if c.GetFlag(cpu.FlagCF) {
		t.Error("AH=0E should clear CF")
	}

	for _, ah := range []uint8{0x11, 0x12} {
		c.SetAH(ah)
		s.HandleInt21(c, mem)
		if c.AL() != 0xFF {
			t.Errorf("AH=%02X AL = %02X, want FF (not found)", ah, c.AL())
		}
	}
}

// Testable property 9: file round trip through create/write/close
// then open/read/close.
func TestFileRoundTrip(t *testing.T) {
	s, c, mem := newTestState(t)
	if err := os.MkdirAll(filepath.Join(s.GameDir, "SAVE"), 0755); err != nil {
		t.Fatal(err)
	}

	pattern := make([]byte, 1024)
	for i := range pattern {
		pattern[i] = byte(i)
	}
	mem.WriteBlock(memory.SegOff(0x2000, 0), pattern)

	writeASCIZ(mem, 0x3000, 0, `SAVE\GAME.SAV`)
	c.DS = 0x3000
	c.SetDX(0)
	c.SetAH(0x3C)
	s.HandleInt21(c, mem)
	if c.GetFlag(cpu.FlagCF) {
		t.Fatal("create set CF")
	}
	handle := c.AX()

	c.SetBX(handle)
	c.DS = 0x2000
	c.SetDX(0)
	c.SetCX(1024)
	c.SetAH(0x40)
	s.HandleInt21(c, mem)
	if c.GetFlag(cpu.FlagCF) || c.AX() != 1024 {
		t.Fatalf("write: CF=%v AX=%d, want CF=false AX=1024", c.GetFlag(cpu.FlagCF), c.AX())
	}

	c.SetBX(handle)
	c.SetAH(0x3E)
	s.HandleInt21(c, mem)
	if c.GetFlag(cpu.FlagCF) {
		t.Fatal("close set CF")
	}

	c.DS = 0x3000
	c.SetDX(0)
	c.SetAL(0)
	c.SetAH(0x3D)
	s.HandleInt21(c, mem)
	if c.GetFlag(cpu.FlagCF) {
		t.Fatal("open set CF")
	}
	handle = c.AX()

	c.SetBX(handle)
	c.DS = 0x4000
	c.SetDX(0)
	c.SetCX(1024)
	c.SetAH(0x3F)
	s.HandleInt21(c, mem)
	if c.GetFlag(cpu.FlagCF) || c.AX() != 1024 {
		t.Fatalf("read: CF=%v AX=%d, want CF=false AX=1024", c.GetFlag(cpu.FlagCF), c.AX())
	}

	got := make([]byte, 1024)
	mem.ReadBlock(memory.SegOff(0x4000, 0), got)
	for i := range pattern {
		if got[i] != pattern[i] {
			t.Fatalf("byte %d = %02X, want %02X", i, got[i], pattern[i])
		}
	}
}

func TestInt16BlockingReadPumpsUntilAvailable(t *testing.T) {
	s, c, _ := newTestState(t)
	pumped := 0
	s.PollEvents = func(_ any, st *State) {
		pumped++
		if pumped == 3 {
			st.Keyboard.Push(0x1E, 'a')
		}
	}
	c.SetAH(0x00)
	s.HandleInt16(c)
	if c.AL() != 'a' {
		t.Errorf("AL = %q, want 'a'", c.AL())
	}
	if pumped < 3 {
		t.Errorf("pumped %d times, want at least 3", pumped)
	}
}

func TestInt16CheckKeySetsZFWhenEmpty(t *testing.T) {
	s, c, _ := newTestState(t)
	c.SetAH(0x01)
	s.HandleInt16(c)
	if !c.GetFlag(cpu.FlagZF) {
		t.Error("expected ZF set when no key available")
	}
}

func TestInt33ResetReturnsDetectionCode(t *testing.T) {
	s, c, _ := newTestState(t)
	c.SetAX(0x0000)
	s.HandleInt33(c)
	if c.AX() != 0xFFFF {
		t.Errorf("AX = %04X, want FFFF", c.AX())
	}
	if c.BX() != 3 {
		t.Errorf("BX = %d, want 3", c.BX())
	}
}

func TestInt33GetPositionReflectsMouseState(t *testing.T) {
	s, c, _ := newTestState(t)
	s.Mouse.Update(100, 50, 1)
	c.SetAX(0x0003)
	s.HandleInt33(c)
	if c.BX() != 1 || c.CX() != 100 || c.DX() != 50 {
		t.Errorf("BX/CX/DX = %d/%d/%d, want 1/100/50", c.BX(), c.CX(), c.DX())
	}
}
