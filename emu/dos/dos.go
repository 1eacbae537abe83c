// Package dos implements the DOS/BIOS service dispatcher: INT 21h,
// INT 10h, INT 16h, INT 33h, and INT 08h handlers that recompiled
// code invokes with the same register-in/register-out discipline as
// the original interrupts, plus the process state (file handles,
// path translation, IVT, memory arena) those handlers share.
package dos

/*
 * civrecomp - DOS/BIOS service dispatcher and process state
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"strings"

	"github.com/sp00nznet/civrecomp/emu/hal/input"
	"github.com/sp00nznet/civrecomp/emu/hal/timer"
	"github.com/sp00nznet/civrecomp/emu/hal/video"
)

// BIOS data area addresses the handlers in this package read or write.
const (
	biosSeg           = 0x0040
	biosEquipment     = 0x0010
	biosMemSizeKB     = 0x0013
	biosVideoMode     = 0x0049
	biosVideoCols     = 0x004A
	biosCursorCol     = 0x0050
	biosCursorRow     = 0x0051
	biosTickCountAddr = 0x006C
)

// maxFiles is the size of the file-handle table; indices 0-4 are
// reserved for stdin/stdout/stderr/aux/prn.
const maxFiles = 32

// firstUserHandle is the first index allocate searches from.
const firstUserHandle = 5

// PollFunc is the host event-pump callback, invoked once per
// iteration of a blocking handler's wait loop. It must push pending
// keyboard events, update mouse state, and refresh the timer; it must
// not otherwise mutate CPU register state.
type PollFunc func(ctx any, s *State)

// State is the DOS process state shared by every service handler: the
// file-handle table, path-translation root, interrupt vector table,
// conventional-memory high-water mark, and the HAL instances the
// dispatch functions operate on.
type State struct {
	GameDir string
	MemTop  uint16 // segment; conventional-memory arena high-water mark

	ivt [256]uint32 // packed seg:off, high 16 bits = seg

	files [maxFiles]File

	Keyboard *input.Keyboard
	Mouse    *input.Mouse
	Timer    *timer.State
	Video    *video.State

	PollEvents  PollFunc
	PlatformCtx any

	// ExitCode is set by the INT 21h terminate services (AH=00/4C) when the program
	// halts; it has no meaning until the caller observes cpu.Halted.
	ExitCode uint8
}

// File is one slot of the file-handle table: an in-use marker and the
// host file behind it.
type File struct {
	inUse bool
	host  HostFile
}

// HostFile is the minimal file interface the handlers need; *os.File
// satisfies it directly.
type HostFile interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// New returns process state rooted at gameDir, with the standard
// handles (0-4) reserved and mem_top at the DOS-standard 0x9000.
func New(gameDir string) *State {
	s := &State{
		GameDir: gameDir,
		MemTop:  0x9000,
	}
	for i := 0; i < firstUserHandle; i++ {
		s.files[i].inUse = true
	}
	return s
}

// InitBIOSDataArea seeds the BIOS data-area words the game's INT
// handlers expect to already be populated at startup, matching a
// real DOS boot: the equipment word, conventional memory size,
// current video mode, and column count.
func InitBIOSDataArea(mem memWriter) {
	mem.WriteWord(biosSeg, biosEquipment, 0x0021)
	mem.WriteWord(biosSeg, biosMemSizeKB, 640)
	mem.WriteByte(biosSeg, biosVideoMode, 0x13)
	mem.WriteWord(biosSeg, biosVideoCols, 40)
}

// memWriter is the subset of *memory.Memory the DOS package needs;
// declared locally so this file doesn't import memory just for a type
// name used only here and in the interrupt handlers, which import it
// directly.
type memWriter interface {
	WriteByte(seg, off uint16, v uint8)
	WriteWord(seg, off uint16, v uint16)
}

// SetVector stores a packed seg:off in IVT slot n.
func (s *State) SetVector(n uint8, seg, off uint16) {
	s.ivt[n] = uint32(seg)<<16 | uint32(off)
}

// GetVector returns the seg:off stored in IVT slot n.
func (s *State) GetVector(n uint8) (seg, off uint16) {
	v := s.ivt[n]
	return uint16(v >> 16), uint16(v)
}

// allocHandle finds the first free index at or above
// firstUserHandle, or -1 if the table is full.
func (s *State) allocHandle(f HostFile) int {
	for i := firstUserHandle; i < maxFiles; i++ {
		if !s.files[i].inUse {
			s.files[i] = File{inUse: true, host: f}
			return i
		}
	}
	return -1
}

// closeHandle frees handle n, if it is a valid open user handle.
func (s *State) closeHandle(n int) error {
	if n < firstUserHandle || n >= maxFiles || !s.files[n].inUse {
		return errInvalidHandle
	}
	err := s.files[n].host.Close()
	s.files[n] = File{}
	return err
}

// handle returns the open file at index n, or nil if it is not a
// valid open handle.
func (s *State) handle(n int) HostFile {
	if n < 0 || n >= maxFiles || !s.files[n].inUse {
		return nil
	}
	return s.files[n].host
}

// TranslatePath converts a DOS path (backslashes, possibly
// drive-relative) into a host path rooted at GameDir: backslashes
// become forward slashes, and the result is joined under GameDir.
// DOS paths are limited to 260 bytes; callers reading from memory are
// expected to enforce that bound before calling this.
func (s *State) TranslatePath(dosPath string) string {
	unixPath := strings.ReplaceAll(dosPath, `\`, "/")
	unixPath = strings.TrimPrefix(unixPath, "/")
	return strings.TrimRight(s.GameDir, "/") + "/" + unixPath
}
