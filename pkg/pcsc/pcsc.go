// Package pcsc drives MIFARE Classic tags through a PC/SC reader
// using the ACR122 family of pseudo APDUs.
package pcsc

import (
	"fmt"

	"github.com/ebfe/scard"
)

// Connection wraps a PC/SC card connection.
type Connection struct {
	ctx       *scard.Context
	Card      *scard.Card
	Reader    string
	ReaderIdx int
}

// ListReaders returns the names of the attached PC/SC readers.
func ListReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("EstablishContext failed: %w", err)
	}
	defer ctx.Release()
	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("ListReaders failed: %w", err)
	}
	return readers, nil
}

// Connect establishes a connection to the card in the given reader.
func Connect(readerIndex int) (*Connection, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("EstablishContext failed: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		ctx.Release()
		return nil, fmt.Errorf("no readers found: %v", err)
	}
	if readerIndex < 0 || readerIndex >= len(readers) {
		ctx.Release()
		return nil, fmt.Errorf("reader index out of range (0..%d)", len(readers)-1)
	}

	reader := readers[readerIndex]
	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("connect failed: %w", err)
	}

	return &Connection{
		ctx:       ctx,
		Card:      card,
		Reader:    reader,
		ReaderIdx: readerIndex,
	}, nil
}

// Close disconnects the card and releases the PC/SC context.
func (c *Connection) Close() {
	if c == nil {
		return
	}
	if c.Card != nil {
		_ = c.Card.Disconnect(scard.LeaveCard)
	}
	if c.ctx != nil {
		_ = c.ctx.Release()
	}
}

// Transmit sends a raw APDU to the reader.
func (c *Connection) Transmit(apdu []byte) ([]byte, error) {
	if c == nil || c.Card == nil {
		return nil, fmt.Errorf("connection not established")
	}
	return c.Card.Transmit(apdu)
}

// exchange transmits apdu and strips the trailing status word, turning
// a non success SW into an *SWError tagged with ins.
func (c *Connection) exchange(ins byte, apdu []byte) ([]byte, error) {
	resp, err := c.Transmit(apdu)
	if err != nil {
		return nil, err
	}
	if len(resp) < 2 {
		return nil, fmt.Errorf("short response (%d bytes)", len(resp))
	}
	sw := uint16(resp[len(resp)-2])<<8 | uint16(resp[len(resp)-1])
	if sw != SWSuccess {
		return nil, &SWError{Cmd: ins, SW: sw}
	}
	return resp[:len(resp)-2], nil
}
