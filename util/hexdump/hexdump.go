// Package hexdump formats register and memory state for debug
// logging: 8/16-bit hex fields and a classic address-prefixed byte dump,
// built on a manual nibble-lookup table.
package hexdump

/*
 * civrecomp - register/memory debug formatting
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatByte writes a two-digit hex byte to str.
func FormatByte(str *strings.Builder, v uint8) {
	str.WriteByte(hexMap[(v>>4)&0xf])
	str.WriteByte(hexMap[v&0xf])
}

// FormatWord writes a four-digit hex word to str.
func FormatWord(str *strings.Builder, v uint16) {
	shift := 12
	for range 4 {
		str.WriteByte(hexMap[(v>>shift)&0xf])
		shift -= 4
	}
}

// FormatRegisters writes a one-line snapshot of the register file in
// the conventional debugger order, e.g.
// "AX=1234 BX=0000 CX=0005 DX=0000 SI=0000 DI=0000 BP=0000 SP=FFEE CS=0207 DS=3DD8 ES=3DD8 SS=3DD8 IP=0020 FLAGS=0002".
func FormatRegisters(ax, bx, cx, dx, si, di, bp, sp, cs, ds, es, ss, ip, flags uint16) string {
	var b strings.Builder
	fields := []struct {
		name string
		v    uint16
	}{
		{"AX", ax}, {"BX", bx}, {"CX", cx}, {"DX", dx},
		{"SI", si}, {"DI", di}, {"BP", bp}, {"SP", sp},
		{"CS", cs}, {"DS", ds}, {"ES", es}, {"SS", ss},
		{"IP", ip}, {"FLAGS", flags},
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		FormatWord(&b, f.v)
	}
	return b.String()
}

// Dump formats data as a classic 16-bytes-per-row hex dump, each row
// prefixed with its address (base plus the row's offset into data) as
// eight hex digits.
func Dump(base uint32, data []byte) string {
	var b strings.Builder
	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		addr := base + uint32(row)
		FormatWord(&b, uint16(addr>>16))
		FormatWord(&b, uint16(addr))
		b.WriteString(": ")
		for i := row; i < end; i++ {
			FormatByte(&b, data[i])
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
