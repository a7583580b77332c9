package pcsc

import "fmt"

// Key slot selectors for GeneralAuthenticate.
const (
	KeyTypeA = 0x60
	KeyTypeB = 0x61
)

// BlockSize is the payload size of one MIFARE Classic block.
const BlockSize = 16

// GetUID reads the anticollision UID of the card in the field.
func (c *Connection) GetUID() ([]byte, error) {
	return c.exchange(0xCA, []byte{0xFF, 0xCA, 0x00, 0x00, 0x00})
}

// LoadKey stores a 6 byte sector key in the reader's volatile key
// slot. ACR122 readers expose slots 0 and 1.
func (c *Connection) LoadKey(slot byte, key []byte) error {
	if len(key) != 6 {
		return fmt.Errorf("sector key must be 6 bytes, got %d", len(key))
	}
	apdu := append([]byte{0xFF, 0x82, 0x00, slot, 0x06}, key...)
	_, err := c.exchange(0x82, apdu)
	return err
}

// Authenticate runs the reader's Crypto1 authentication for the sector
// containing block, using the key previously stored in slot. keyType
// is KeyTypeA or KeyTypeB.
func (c *Connection) Authenticate(block byte, keyType byte, slot byte) error {
	apdu := []byte{0xFF, 0x86, 0x00, 0x00, 0x05, 0x01, 0x00, block, keyType, slot}
	_, err := c.exchange(0x86, apdu)
	return err
}

// ReadBlock returns the 16 bytes of an authenticated block.
func (c *Connection) ReadBlock(block byte) ([]byte, error) {
	data, err := c.exchange(0xB0, []byte{0xFF, 0xB0, 0x00, block, BlockSize})
	if err != nil {
		return nil, err
	}
	if len(data) != BlockSize {
		return nil, fmt.Errorf("block %d: got %d bytes, want %d", block, len(data), BlockSize)
	}
	return data, nil
}

// WriteBlock overwrites an authenticated block.
func (c *Connection) WriteBlock(block byte, data []byte) error {
	if len(data) != BlockSize {
		return fmt.Errorf("block %d: payload must be %d bytes, got %d", block, BlockSize, len(data))
	}
	apdu := append([]byte{0xFF, 0xD6, 0x00, block, BlockSize}, data...)
	_, err := c.exchange(0xD6, apdu)
	return err
}
