package dos

/*
 * civrecomp - INT 21h DOS service dispatch
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/memory"
)

// readASCIZ reads a NUL-terminated string from ds:off, up to a DOS
// path's 260-byte limit.
func readASCIZ(mem *memory.Memory, seg, off uint16, limit int) string {
	buf := make([]byte, 0, 64)
	for i := 0; i < limit; i++ {
		b := mem.ReadByte(seg, off+uint16(i))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

func writeASCIZ(mem *memory.Memory, seg, off uint16, s string) {
	for i := 0; i < len(s); i++ {
		mem.WriteByte(seg, off+uint16(i), s[i])
	}
	mem.WriteByte(seg, off+uint16(len(s)), 0)
}

func setError(c *cpu.State, code uint16) {
	c.SetFlag(cpu.FlagCF, true)
	c.SetAX(code)
}

func clearError(c *cpu.State) {
	c.SetFlag(cpu.FlagCF, false)
}

// HandleInt21 dispatches one INT 21h service call, reading its
// request from and writing its result into c's registers and mem.
func (s *State) HandleInt21(c *cpu.State, mem *memory.Memory) {
	switch c.AH() {
	case 0x00: // terminate
		s.ExitCode = 0
		c.Halted = true

	case 0x4C: // terminate with return code
		s.ExitCode = c.AL()
		c.Halted = true
		slog.Info("program exit", "code", s.ExitCode)

	case 0x02: // char out
		os.Stdout.Write([]byte{c.DL()})
		clearError(c)

	case 0x07, 0x08: // char in, no echo; blocks via the event pump
		for !s.Keyboard.Available() {
			s.pump()
		}
		c.SetAL(uint8(s.Keyboard.Read()))
		clearError(c)

	case 0x09: // print $-terminated string
		seg, off := c.DS, c.DX()
		for {
			b := mem.ReadByte(seg, off)
			if b == 0x24 {
				break
			}
			os.Stdout.Write([]byte{b})
			off++
		}
		clearError(c)

	case 0x0A: // buffered line input
		maxLen := int(mem.ReadByte(c.DS, c.DX()))
		line := s.readLine(maxLen)
		mem.WriteByte(c.DS, c.DX()+1, uint8(len(line)))
		for i, b := range line {
			mem.WriteByte(c.DS, c.DX()+2+uint16(i), b)
		}
		clearError(c)

	case 0x0B: // keyboard status
		if s.Keyboard.Available() {
			c.SetAL(0xFF)
		} else {
			c.SetAL(0x00)
		}
		clearError(c)

	case 0x0E: // select disk
		c.SetAL(5) // report 5 logical drives
		clearError(c)

	case 0x11, 0x12: // FCB find first / find next
		c.SetAL(0xFF) // no FCB filesystem modeled; always not-found
		clearError(c)

	case 0x19: // current disk
		c.SetAL(2)
		clearError(c)

	case 0x1A: // set DTA
		clearError(c)

	case 0x25: // set interrupt vector
		s.SetVector(c.AL(), c.DS, c.DX())
		clearError(c)

	case 0x2A: // get date
		now := time.Now()
		c.SetCX(uint16(now.Year()))
		c.SetDH(uint8(now.Month()))
		c.SetDL(uint8(now.Day()))
		c.SetAL(uint8(now.Weekday()))
		clearError(c)

	case 0x2C: // get time
		now := time.Now()
		c.SetCH(uint8(now.Hour()))
		c.SetCL(uint8(now.Minute()))
		c.SetDH(uint8(now.Second()))
		c.SetDL(0)
		clearError(c)

	case 0x30: // DOS version
		c.SetAX(0x0005)
		clearError(c)

	case 0x35: // get interrupt vector
		seg, off := s.GetVector(c.AL())
		c.ES = seg
		c.SetBX(off)
		clearError(c)

	case 0x3C: // create file
		s.createFile(c, mem)

	case 0x3D: // open file
		s.openFile(c, mem)

	case 0x3E: // close file
		if err := s.closeHandle(int(c.BX())); err != nil {
			setError(c, errInvalidHandleAX)
		} else {
			clearError(c)
		}

	case 0x3F: // read
		s.readFile(c, mem)

	case 0x40: // write
		s.writeFile(c, mem)

	case 0x41: // delete file
		path := s.TranslatePath(readASCIZ(mem, c.DS, c.DX(), 260))
		if err := os.Remove(path); err != nil {
			setError(c, errFileNotFound)
		} else {
			clearError(c)
		}

	case 0x42: // seek
		s.seekFile(c)

	case 0x47: // get current directory
		mem.WriteByte(c.DS, c.SI, 0)
		clearError(c)

	case 0x48: // allocate memory
		s.allocMemory(c)

	case 0x49, 0x4A: // free / resize memory
		clearError(c)

	case 0x62: // get PSP
		c.SetBX(0x0100)
		clearError(c)

	default:
		slog.Debug("unhandled INT 21h", "ah", c.AH())
	}
}

func (s *State) readLine(maxLen int) []byte {
	if maxLen < 1 {
		return nil
	}
	line := make([]byte, 0, maxLen)
	for len(line) < maxLen {
		for !s.Keyboard.Available() {
			s.pump()
		}
		ch := s.Keyboard.ReadChar()
		if ch == 0x0D {
			break
		}
		line = append(line, ch)
	}
	return line
}

func (s *State) pump() {
	if s.PollEvents != nil {
		s.PollEvents(s.PlatformCtx, s)
	}
}

func (s *State) createFile(c *cpu.State, mem *memory.Memory) {
	path := s.TranslatePath(readASCIZ(mem, c.DS, c.DX(), 260))
	f, err := os.Create(path)
	if err != nil {
		setError(c, errPathNotFound)
		return
	}
	h := s.allocHandle(f)
	if h < 0 {
		f.Close()
		setError(c, errTooManyHandles)
		return
	}
	c.SetAX(uint16(h))
	clearError(c)
}

func (s *State) openFile(c *cpu.State, mem *memory.Memory) {
	path := s.TranslatePath(readASCIZ(mem, c.DS, c.DX(), 260))
	var flag int
	switch c.AL() & 3 {
	case 0:
		flag = os.O_RDONLY
	case 1:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		setError(c, errFileNotFound)
		return
	}
	h := s.allocHandle(f)
	if h < 0 {
		f.Close()
		setError(c, errTooManyHandles)
		return
	}
	c.SetAX(uint16(h))
	clearError(c)
}

func (s *State) readFile(c *cpu.State, mem *memory.Memory) {
	n := int(c.CX())
	buf := make([]byte, n)
	switch c.BX() {
	case 0: // stdin: no host keystream wired; report EOF
		c.SetAX(0)
		clearError(c)
		return
	}
	f := s.handle(int(c.BX()))
	if f == nil {
		setError(c, errInvalidHandleAX)
		return
	}
	read, err := f.Read(buf)
	if err != nil && read == 0 {
		c.SetAX(0)
		clearError(c)
		return
	}
	mem.WriteBlock(memory.SegOff(c.DS, c.DX()), buf[:read])
	c.SetAX(uint16(read))
	clearError(c)
}

func (s *State) writeFile(c *cpu.State, mem *memory.Memory) {
	n := int(c.CX())
	buf := make([]byte, n)
	mem.ReadBlock(memory.SegOff(c.DS, c.DX()), buf)

	switch c.BX() {
	case 1:
		os.Stdout.Write(buf)
		c.SetAX(uint16(n))
		clearError(c)
		return
	case 2:
		os.Stderr.Write(buf)
		c.SetAX(uint16(n))
		clearError(c)
		return
	}
	f := s.handle(int(c.BX()))
	if f == nil {
		setError(c, errInvalidHandleAX)
		return
	}
	written, err := f.Write(buf)
	if err != nil {
		setError(c, errAccessDenied)
		return
	}
	c.SetAX(uint16(written))
	clearError(c)
}

func (s *State) seekFile(c *cpu.State) {
	f := s.handle(int(c.BX()))
	if f == nil {
		setError(c, errInvalidHandleAX)
		return
	}
	offset := int64(c.CX())<<16 | int64(c.DX())
	var whence int
	switch c.AL() {
	case 0:
		whence = io.SeekStart
	case 1:
		whence = io.SeekCurrent
	default:
		whence = io.SeekEnd
	}
	pos, err := f.Seek(offset, whence)
	if err != nil {
		setError(c, errAccessDenied)
		return
	}
	c.SetDX(uint16(pos >> 16))
	c.SetAX(uint16(pos))
	clearError(c)
}

func (s *State) allocMemory(c *cpu.State) {
	const topOfMemory = 0xA000
	need := c.BX()
	if uint32(s.MemTop)+uint32(need) > topOfMemory {
		setError(c, errInsufficientMem)
		c.SetBX(topOfMemory - s.MemTop)
		return
	}
	c.SetAX(s.MemTop)
	s.MemTop += need
	clearError(c)
}
