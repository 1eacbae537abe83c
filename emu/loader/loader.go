// Package loader parses and loads a 16-bit MZ executable image into
// flat memory at a fixed load segment, and constructs the minimal PSP
// a DOS program expects to find immediately below it. It performs no
// relocation processing: the translator that produced the image has
// already resolved every fixup.
package loader

/*
 * civrecomp - MZ executable loader
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"errors"
	"fmt"

	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/memory"
)

// LoadSeg is the fixed segment the resident image is placed at.
const LoadSeg = 0x0100

// mzHeaderLen is the fixed-size portion of the MZ header this loader
// reads; header_paragraphs (paragraphs of 16 bytes) gives the actual
// offset where the image begins, which may be larger.
const mzHeaderLen = 0x20

// ErrBadSignature is returned when the file does not begin with "MZ".
var ErrBadSignature = errors.New("loader: not an MZ executable")

// ErrShortImage is returned when the file is smaller than its own
// header claims.
var ErrShortImage = errors.New("loader: truncated MZ image")

// Header holds the MZ fields this loader cares about.
type Header struct {
	Pages            uint16
	LastPageBytes    uint16
	HeaderParagraphs uint16
	InitSS           uint16
	InitSP           uint16
	InitIP           uint16
	InitCS           uint16
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < mzHeaderLen || data[0] != 'M' || data[1] != 'Z' {
		return Header{}, ErrBadSignature
	}
	le16 := func(off int) uint16 {
		return uint16(data[off]) | uint16(data[off+1])<<8
	}
	return Header{
		LastPageBytes:    le16(0x02),
		Pages:            le16(0x04),
		HeaderParagraphs: le16(0x08),
		InitSP:           le16(0x10),
		InitSS:           le16(0x0E),
		InitIP:           le16(0x14),
		InitCS:           le16(0x16),
	}, nil
}

// imageSize computes the resident image size in bytes from the page
// count and last-page byte count, per the MZ format.
func (h Header) imageSize() int {
	size := int(h.Pages) * 512
	if h.LastPageBytes != 0 {
		size -= 512 - int(h.LastPageBytes)
	}
	return size
}

func (h Header) headerSize() int {
	return int(h.HeaderParagraphs) * 16
}

// Load parses the MZ header in data, copies the resident image into
// mem at LoadSeg:0, writes a minimal PSP at LoadSeg-0x10, sets c.CS
// and c.SS to the header's initial values relocated by LoadSeg, c.IP
// and c.SP to the header's values as they are, and c.DS/ES to
// LoadSeg. It returns the parsed header for the startup simulator.
func Load(data []byte, mem *memory.Memory, c *cpu.State) (Header, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return Header{}, err
	}

	headerSize := hdr.headerSize()
	imageSize := hdr.imageSize()
	if headerSize > len(data) || imageSize < headerSize || imageSize > len(data) {
		return Header{}, ErrShortImage
	}

	image := data[headerSize:imageSize]
	mem.WriteBlock(memory.SegOff(LoadSeg, 0), image)

	c.CS = LoadSeg + hdr.InitCS
	c.IP = hdr.InitIP
	c.SS = LoadSeg + hdr.InitSS
	c.SP = hdr.InitSP
	c.DS = LoadSeg
	c.ES = LoadSeg

	writePSP(mem, LoadSeg-0x10)
	return hdr, nil
}

// writePSP writes the minimal Program Segment Prefix a DOS program
// expects at pspSeg:0: an INT 20h stub at offset 0, the top-of-memory
// segment at offset 2, and an empty command-tail length byte at
// offset 0x80.
func writePSP(mem *memory.Memory, pspSeg uint16) {
	mem.WriteByte(pspSeg, 0x00, 0xCD)
	mem.WriteByte(pspSeg, 0x01, 0x20)
	mem.WriteWord(pspSeg, 0x02, 0xA000)
	mem.WriteByte(pspSeg, 0x80, 0x00)
}

func (h Header) String() string {
	return fmt.Sprintf("MZ image: %d bytes resident, entry %04X:%04X, stack %04X:%04X",
		h.imageSize()-h.headerSize(), h.InitCS, h.InitIP, h.InitSS, h.InitSP)
}
