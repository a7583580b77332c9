// Package tagtype enumerates the transponder models this toolkit can
// identify, together with their storage geometry.
package tagtype

import "fmt"

// Type identifies a transponder model. Values 1 through 8 are a legacy
// numbering kept so old dump metadata still decodes; new code should
// only ever produce the 100+, 1000+ and 1100+ ranges.
type Type uint16

const (
	Undefined Type = 0

	// Legacy numbering from early dump files.
	LegacyEM410X Type = iota
	LegacyMifareMini
	LegacyMifare1K
	LegacyMifare2K
	LegacyMifare4K
	LegacyNTAG213
	LegacyNTAG215
	LegacyNTAG216
)

const (
	EM410X Type = 100
)

const (
	MifareMini Type = 1000 + iota
	Mifare1K
	Mifare2K
	Mifare4K
)

const (
	NTAG213 Type = 1100 + iota
	NTAG215
	NTAG216
	UltralightEV0
	UltralightC
	UltralightEV1S
	UltralightEV1L
	NTAG210
	NTAG212
)

var names = map[Type]string{
	Undefined:      "undefined",
	EM410X:         "EM410X",
	MifareMini:     "MIFARE Classic Mini",
	Mifare1K:       "MIFARE Classic 1K",
	Mifare2K:       "MIFARE Classic 2K",
	Mifare4K:       "MIFARE Classic 4K",
	NTAG213:        "NTAG 213",
	NTAG215:        "NTAG 215",
	NTAG216:        "NTAG 216",
	UltralightEV0:  "MIFARE Ultralight",
	UltralightC:    "MIFARE Ultralight C",
	UltralightEV1S: "MIFARE Ultralight EV1 (48 byte)",
	UltralightEV1L: "MIFARE Ultralight EV1 (128 byte)",
	NTAG210:        "NTAG 210",
	NTAG212:        "NTAG 212",
}

// legacyMap upgrades the pre-1.0 numbering to the current one.
var legacyMap = map[Type]Type{
	LegacyEM410X:     EM410X,
	LegacyMifareMini: MifareMini,
	LegacyMifare1K:   Mifare1K,
	LegacyMifare2K:   Mifare2K,
	LegacyMifare4K:   Mifare4K,
	LegacyNTAG213:    NTAG213,
	LegacyNTAG215:    NTAG215,
	LegacyNTAG216:    NTAG216,
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// Upgrade maps a legacy value to its current equivalent. Non legacy
// values pass through unchanged.
func (t Type) Upgrade() Type {
	if n, ok := legacyMap[t]; ok {
		return n
	}
	return t
}

// Sense is the RF field a tag answers in.
type Sense uint8

const (
	SenseNone Sense = iota
	SenseLF         // 125 kHz
	SenseHF         // 13.56 MHz
)

func (s Sense) String() string {
	switch s {
	case SenseLF:
		return "LF"
	case SenseHF:
		return "HF"
	}
	return "none"
}

// Sense returns the RF field of the tag.
func (t Type) Sense() Sense {
	switch u := t.Upgrade(); {
	case u == EM410X:
		return SenseLF
	case u >= MifareMini:
		return SenseHF
	}
	return SenseNone
}

// IsLF reports whether t is a 125 kHz transponder.
func (t Type) IsLF() bool {
	return t.Sense() == SenseLF
}

// IsHF reports whether t is a 13.56 MHz transponder.
func (t Type) IsHF() bool {
	return t.Sense() == SenseHF
}

// IsMifareClassic reports whether t uses Crypto1 sector authentication.
func (t Type) IsMifareClassic() bool {
	switch t.Upgrade() {
	case MifareMini, Mifare1K, Mifare2K, Mifare4K:
		return true
	}
	return false
}

// Sectors returns the sector count of a MIFARE Classic tag, or 0 for
// any other type.
func (t Type) Sectors() int {
	switch t.Upgrade() {
	case MifareMini:
		return 5
	case Mifare1K:
		return 16
	case Mifare2K:
		return 32
	case Mifare4K:
		return 40
	}
	return 0
}

// BlocksInSector returns the number of 16 byte blocks in sector n for
// a MIFARE Classic tag. Sectors past 31 on a 4K tag hold 16 blocks.
func (t Type) BlocksInSector(n int) int {
	if !t.IsMifareClassic() {
		return 0
	}
	if n >= 32 {
		return 16
	}
	return 4
}

// FirstBlock returns the absolute number of the first block in
// sector n.
func (t Type) FirstBlock(n int) int {
	if !t.IsMifareClassic() {
		return 0
	}
	if n < 32 {
		return n * 4
	}
	return 32*4 + (n-32)*16
}
