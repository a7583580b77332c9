package pcsc

import "fmt"

// Status words returned by ACR122 pseudo APDUs.
const (
	SWSuccess     = 0x9000 // operation complete
	SWFailed      = 0x6300 // operation failed (bad key, no tag, write refused)
	SWUnsupported = 0x6A81 // function not supported by reader firmware
	SWWrongLength = 0x6700 // wrong command length
)

// SWError is a non success status word from the reader.
type SWError struct {
	Cmd byte   // pseudo APDU INS byte
	SW  uint16 // status word
}

func (e *SWError) Error() string {
	return fmt.Sprintf("reader command 0x%02X failed with SW=0x%04X (%s)", e.Cmd, e.SW, swDescription(e.SW))
}

func swDescription(sw uint16) string {
	switch sw {
	case SWSuccess:
		return "success"
	case SWFailed:
		return "operation failed"
	case SWUnsupported:
		return "not supported"
	case SWWrongLength:
		return "wrong length"
	default:
		return "unknown error"
	}
}

// IsAuthError checks whether err is the reader refusing a Crypto1
// authentication. The ACR122 reports authentication failure with the
// generic 0x6300 word on the 0x86 command.
func IsAuthError(err error) bool {
	if swErr, ok := err.(*SWError); ok {
		return swErr.Cmd == 0x86 && swErr.SW == SWFailed
	}
	return false
}
