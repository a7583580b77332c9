// Package iso14443 carries the frame level pieces the MIFARE tools
// share: the CRC_A checksum and the Classic command bytes.
package iso14443

// MIFARE Classic command bytes, sent as the first byte of a frame.
const (
	CmdAuthKeyA   = 0x60
	CmdAuthKeyB   = 0x61
	CmdRead       = 0x30
	CmdWrite      = 0xA0
	CmdDecrement  = 0xC0
	CmdIncrement  = 0xC1
	CmdRestore    = 0xC2
	CmdTransfer   = 0xB0
	CmdHalt       = 0x50
	AckValue      = 0x0A
	NakInvalidArg = 0x04
	NakCRCError   = 0x01
)

// CRC_A per ISO/IEC 14443-3: reflected polynomial 0x8408, preset
// 0x6363, no final XOR, appended least significant byte first.
const crcAPreset uint16 = 0x6363

var crcATable = makeCRCATable()

func makeCRCATable() [256]uint16 {
	var t [256]uint16
	for i := range t {
		c := uint16(i)
		for b := 0; b < 8; b++ {
			if c&1 != 0 {
				c = c>>1 ^ 0x8408
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// CRCA computes the CRC_A of data.
func CRCA(data []byte) uint16 {
	crc := crcAPreset
	for _, b := range data {
		crc = crc>>8 ^ crcATable[byte(crc)^b]
	}
	return crc
}

// AppendCRCA appends the two CRC_A bytes to data, least significant
// first, and returns the extended slice.
func AppendCRCA(data []byte) []byte {
	crc := CRCA(data)
	return append(data, byte(crc), byte(crc>>8))
}

// CheckCRCA reports whether frame ends with a valid CRC_A over the
// preceding bytes.
func CheckCRCA(frame []byte) bool {
	if len(frame) < 3 {
		return false
	}
	n := len(frame) - 2
	crc := CRCA(frame[:n])
	return frame[n] == byte(crc) && frame[n+1] == byte(crc>>8)
}
