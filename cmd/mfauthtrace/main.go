// Command mfauthtrace replays a MIFARE Classic three pass
// authentication offline and prints every value that would cross the
// air interface. Given the sector key, the tag UID and the two nonces
// it shows the encrypted reader response, the parity bits and both
// challenge answers, which is useful when checking a sniffed trace
// against a candidate key.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/barnettlynn/mfclassic/pkg/crypto1"
	"github.com/barnettlynn/mfclassic/pkg/hexutil"
	"github.com/barnettlynn/mfclassic/pkg/iso14443"
)

func main() {
	keyHex := flag.String("key", "ffffffffffff", "sector key, 12 hex digits")
	uidHex := flag.String("uid", "", "tag UID, 8 hex digits")
	ntHex := flag.String("nt", "", "tag nonce, 8 hex digits")
	nrHex := flag.String("nr", "01020304", "reader nonce plaintext, 8 hex digits")
	block := flag.Uint("block", 0, "block number of the authenticated sector")
	keyB := flag.Bool("b", false, "authenticate with key B instead of key A")
	nested := flag.Bool("nested", false, "trace a nested authentication: the tag nonce is sent encrypted")
	verbose := flag.Bool("v", false, "enable debug logging")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if *logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}

	key, err := hexutil.ParseKey(*keyHex)
	if err != nil {
		log.Fatal(err)
	}
	uid, err := parseWord("uid", *uidHex)
	if err != nil {
		log.Fatal(err)
	}
	nt, err := parseWord("nt", *ntHex)
	if err != nil {
		log.Fatal(err)
	}
	nr, err := parseWord("nr", *nrHex)
	if err != nil {
		log.Fatal(err)
	}

	cmd := byte(iso14443.CmdAuthKeyA)
	if *keyB {
		cmd = iso14443.CmdAuthKeyB
	}
	req := iso14443.AppendCRCA([]byte{cmd, byte(*block)})
	fmt.Printf("auth req   %02x %02x %02x %02x (plaintext, CRC_A)\n", req[0], req[1], req[2], req[3])

	trace(key, uid, nt, nr, *nested)
}

func parseWord(name, s string) (uint32, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, s, err)
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("%s %q: want 8 hex digits", name, s)
	}
	return binary.BigEndian.Uint32(raw), nil
}

// encByte encrypts one plaintext byte and returns the parity bit that
// accompanies it on the wire.
func encByte(s *crypto1.State, plain uint8, feed bool) (enc uint8, parity uint8) {
	in := uint8(0)
	if feed {
		in = plain
	}
	enc = plain ^ s.Byte(in, false)
	parity = crypto1.OddParity8(plain) ^ s.PeekBit()
	return enc, parity
}

func trace(key uint64, uid, nt, nr uint32, nested bool) {
	fmt.Printf("key        %012x\n", key)
	fmt.Printf("uid        %08x\n", uid)

	var s *crypto1.State
	if nested {
		// Inside an encrypted session the tag nonce goes out
		// encrypted, with its parity bits leaking keystream.
		var uidBytes, ntBytes [4]byte
		binary.BigEndian.PutUint32(uidBytes[:], uid)
		binary.BigEndian.PutUint32(ntBytes[:], nt)
		par := make([]byte, 4)
		c := &crypto1.Cipher{}
		c.SetupNested(hexutil.KeyBytes(key), uidBytes[:], ntBytes[:], par, false)
		fmt.Printf("tag  nonce %08x (plaintext)\n", nt)
		printFrame("{nt}", ntBytes[:], par)
		s = c.State()
	} else {
		s = crypto1.New(key)
		slog.Debug("cipher initialised", "lfsr", fmt.Sprintf("%012x", s.LFSR()))

		// The tag nonce is sent in the clear; uid XOR nt is clocked
		// into the register on both sides without producing output.
		s.Word(uid^nt, false)
		slog.Debug("uid^nt loaded", "value", fmt.Sprintf("%08x", uid^nt))
		fmt.Printf("tag  nonce %08x (plaintext)\n", nt)
	}

	var nrBytes [4]byte
	binary.BigEndian.PutUint32(nrBytes[:], nr)

	// Pass 2: the reader sends {nr} then {ar}. The plaintext reader
	// nonce feeds the register while it is being encrypted.
	var nrEnc, nrPar [4]uint8
	for i := range nrBytes {
		nrEnc[i], nrPar[i] = encByte(s, nrBytes[i], true)
	}
	printFrame("{nr}", nrEnc[:], nrPar[:])

	ar := crypto1.SuccessorN(nt, 64)
	arEnc, arPar := encryptWord(s, ar)
	printFrame("{ar}", arEnc, arPar)

	// Pass 3: the tag answers with {at}.
	at := crypto1.SuccessorN(nt, 96)
	atEnc, atPar := encryptWord(s, at)
	printFrame("{at}", atEnc, atPar)

	fmt.Printf("\nar = suc64(nt) = %08x\n", ar)
	fmt.Printf("at = suc96(nt) = %08x\n", at)
	fmt.Printf("state after auth: %012x\n", s.LFSR())
}

func encryptWord(s *crypto1.State, w uint32) (enc, parity []uint8) {
	var plain [4]byte
	binary.BigEndian.PutUint32(plain[:], w)
	enc = make([]uint8, 4)
	parity = make([]uint8, 4)
	for i := range plain {
		enc[i], parity[i] = encByte(s, plain[i], false)
	}
	return enc, parity
}

func printFrame(label string, enc, parity []uint8) {
	fmt.Printf("%-10s ", label)
	for i := range enc {
		fmt.Printf("%02x", enc[i])
		if parity[i] != 0 {
			fmt.Print("! ")
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Println("(! marks a set parity bit)")
}
