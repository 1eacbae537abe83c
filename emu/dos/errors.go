package dos

/*
 * civrecomp - DOS ABI error codes
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "errors"

// DOS extended error codes (INT 21h AX-on-error convention), returned
// to translated code in AX with CF set.
const (
	errFileNotFound    = 0x02
	errPathNotFound    = 0x03
	errTooManyHandles  = 0x04
	errAccessDenied    = 0x05
	errInvalidHandleAX = 0x06
	errInsufficientMem = 0x08
)

var errInvalidHandle = errors.New("dos: invalid file handle")
