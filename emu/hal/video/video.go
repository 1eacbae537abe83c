// Package video implements the mode-13h VGA HAL: the 256-entry DAC
// palette port state machine and the status-register vsync toggle
// that defeats BIOS-level polling loops. The framebuffer itself lives
// in flat memory (emu/memory) at the fixed mode-13h address; this
// package owns only the palette and the I/O ports that program it.
package video

/*
 * civrecomp - VGA mode-13h HAL
 *
 * Part of the Civilization static-recompilation execution core.
 */

// Port addresses the DOS port dispatcher routes here.
const (
	PortDACReadAddr  = 0x3C7
	PortDACWriteAddr = 0x3C8
	PortDACData      = 0x3C9
	PortInputStatus  = 0x3DA
)

// Width, Height, and FBLen describe the mode-13h framebuffer this
// package's palette is paired with; the buffer itself lives in flat
// memory at memory.VGAFramebuffer.
const (
	Width  = 320
	Height = 200
	FBLen  = Width * Height
)

// State is the DAC port state machine: a 256-entry 6-bit-per-channel
// palette plus the read/write index cursors a program addresses it
// through, and the vsync toggle the status register exposes.
type State struct {
	palette [256][3]uint8 // each component is 0..63, VGA DAC convention

	writeIndex uint8
	readIndex  uint8
	component  uint8 // 0=R, 1=G, 2=B; advances and wraps after B
	writing    bool  // true after a write to PortDACWriteAddr, false after a read-index write

	Dirty bool // set when a port write completes an RGB triple or SetEntry assigns an entry; cleared by the caller after consuming it

	vsyncToggle bool // flips on every PortInputStatus read, simulating retrace without real timing
}

// New returns a DAC state machine with an all-black palette.
func New() *State {
	return &State{}
}

// PortOut handles a write to one of the DAC ports.
func (s *State) PortOut(port uint16, v uint8) {
	switch port {
	case PortDACWriteAddr:
		s.writeIndex = v
		s.component = 0
		s.writing = true
	case PortDACReadAddr:
		s.readIndex = v
		s.component = 0
		s.writing = false
	case PortDACData:
		if s.writing {
			s.palette[s.writeIndex][s.component] = v & 0x3F
			prev := s.writeIndex
			s.advance(&s.writeIndex)
			if s.writeIndex != prev {
				s.Dirty = true
			}
		} else {
			// Writing data while in read mode has no defined effect on
			// real hardware; ignored here rather than corrupting the
			// entry under the read cursor.
		}
	}
}

// PortIn handles a read from one of the DAC ports, or the status
// register.
func (s *State) PortIn(port uint16) uint8 {
	switch port {
	case PortDACData:
		v := s.palette[s.readIndex][s.component]
		s.advance(&s.readIndex)
		return v
	case PortInputStatus:
		s.vsyncToggle = !s.vsyncToggle
		if s.vsyncToggle {
			return 0x08 // vertical retrace in progress
		}
		return 0x00
	default:
		return 0xFF
	}
}

// advance moves the component cursor (R -> G -> B -> R) and, on
// wrapping back to R, advances the given index to the next palette
// entry, matching the real DAC auto-increment behavior.
func (s *State) advance(index *uint8) {
	s.component++
	if s.component > 2 {
		s.component = 0
		*index++
	}
}

// SetEntry directly assigns a palette entry (r, g, b each 0..63),
// bypassing the port state machine, for programmatic palette loads.
func (s *State) SetEntry(i uint8, r, g, b uint8) {
	s.palette[i] = [3]uint8{r & 0x3F, g & 0x3F, b & 0x3F}
	s.Dirty = true
}

// Entry returns the raw 6-bit-per-channel palette entry i.
func (s *State) Entry(i uint8) (r, g, b uint8) {
	e := s.palette[i]
	return e[0], e[1], e[2]
}

// RGBAPalette returns the full palette converted to 8-bit-per-channel
// RGBA, suitable for handing to a host renderer. Alpha is always 255.
func (s *State) RGBAPalette() [256][4]uint8 {
	var out [256][4]uint8
	for i, e := range s.palette {
		out[i] = [4]uint8{scale6to8(e[0]), scale6to8(e[1]), scale6to8(e[2]), 255}
	}
	return out
}

func scale6to8(v uint8) uint8 {
	return uint8((uint16(v) * 255) / 63)
}

// FillRect clears the clipping math needed by mode-13h rectangle
// fills: it clamps the given rectangle to the visible 320x200 surface
// and returns, one entry per row, the row's offset from the start of
// the framebuffer and its length. The offsets are relative to
// memory.VGAFramebuffer, not flat addresses. x2/y2 are exclusive.
func FillRect(x1, y1, x2, y2 int) (rows []Row) {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > Width {
		x2 = Width
	}
	if y2 > Height {
		y2 = Height
	}
	if x1 >= x2 || y1 >= y2 {
		return nil
	}
	rows = make([]Row, 0, y2-y1)
	for y := y1; y < y2; y++ {
		rows = append(rows, Row{Offset: uint32(y*Width + x1), Len: x2 - x1})
	}
	return rows
}

// Row is one clipped scanline span of a fill, expressed as an offset
// from the start of the framebuffer and a byte length.
type Row struct {
	Offset uint32
	Len    int
}
