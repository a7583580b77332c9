// Command mfdump reads a full MIFARE Classic tag through an ACR122
// class PC/SC reader. Each sector is tried against the configured key
// list with key A first and key B as fallback, and the result is
// written as a raw binary dump next to a text summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/barnettlynn/mfclassic/internal/config"
	"github.com/barnettlynn/mfclassic/pkg/hexutil"
	"github.com/barnettlynn/mfclassic/pkg/pcsc"
	"github.com/barnettlynn/mfclassic/pkg/tagtype"
)

// ============================================================================
// Menu
// ============================================================================

func selectMenu(prompt string, items []string) int {
	if len(items) == 0 {
		return -1
	}

	// Put stdin into raw mode
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting raw mode: %v\r\n", err)
		return -1
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	selected := 0

	fmt.Printf("%s\r\n", prompt)
	for i, item := range items {
		if i == selected {
			fmt.Printf("> %s\r\n", item)
		} else {
			fmt.Printf("  %s\r\n", item)
		}
	}

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			break
		}

		if n == 1 {
			switch buf[0] {
			case 0x0D, 0x0A: // Enter
				fmt.Printf("\r\n")
				return selected
			case 0x03: // Ctrl-C
				term.Restore(int(os.Stdin.Fd()), oldState)
				fmt.Printf("\r\n")
				os.Exit(0)
			}
		} else if n == 3 && buf[0] == 0x1B && buf[1] == '[' {
			needRedraw := false
			switch buf[2] {
			case 'A': // Up arrow
				if selected > 0 {
					selected--
					needRedraw = true
				}
			case 'B': // Down arrow
				if selected < len(items)-1 {
					selected++
					needRedraw = true
				}
			}

			if needRedraw {
				fmt.Printf("\033[%dA", len(items))
				for i, item := range items {
					fmt.Print("\033[2K\r")
					if i == selected {
						fmt.Printf("> %s\r\n", item)
					} else {
						fmt.Printf("  %s\r\n", item)
					}
				}
			}
		}
	}

	return selected
}

// ============================================================================
// Dump
// ============================================================================

type sectorResult struct {
	keyA    uint64
	keyB    uint64
	haveA   bool
	haveB   bool
	blocks  [][]byte
	skipped []int
}

// dumpSector authenticates the sector with each candidate key and
// reads every block it can. The trailer comes back with the access
// bytes intact but both key fields blanked by the tag, so the found
// keys are patched in afterwards.
func dumpSector(conn *pcsc.Connection, typ tagtype.Type, sector int, keys []uint64, slot byte) (*sectorResult, error) {
	first := typ.FirstBlock(sector)
	count := typ.BlocksInSector(sector)
	res := &sectorResult{blocks: make([][]byte, count)}

	for _, kt := range []byte{pcsc.KeyTypeA, pcsc.KeyTypeB} {
		var found bool
		var foundKey uint64
		for _, key := range keys {
			if err := conn.LoadKey(slot, hexutil.KeyBytes(key)); err != nil {
				return nil, fmt.Errorf("load key: %w", err)
			}
			err := conn.Authenticate(byte(first), kt, slot)
			if err == nil {
				found, foundKey = true, key
				break
			}
			if !pcsc.IsAuthError(err) {
				return nil, fmt.Errorf("sector %d auth: %w", sector, err)
			}
			slog.Debug("key rejected", "sector", sector, "keyType", fmt.Sprintf("%02X", kt), "key", fmt.Sprintf("%012x", key))
		}
		if !found {
			continue
		}
		if kt == pcsc.KeyTypeA {
			res.keyA, res.haveA = foundKey, true
		} else {
			res.keyB, res.haveB = foundKey, true
		}
		slog.Info("sector key found", "sector", sector, "keyType", fmt.Sprintf("%02X", kt), "key", fmt.Sprintf("%012x", foundKey))

		for i := 0; i < count; i++ {
			if res.blocks[i] != nil {
				continue
			}
			data, err := conn.ReadBlock(byte(first + i))
			if err != nil {
				slog.Debug("block read failed", "block", first+i, "error", err)
				continue
			}
			res.blocks[i] = data
		}
	}

	trailer := count - 1
	if res.blocks[trailer] != nil {
		if res.haveA {
			copy(res.blocks[trailer][0:6], hexutil.KeyBytes(res.keyA))
		}
		if res.haveB {
			copy(res.blocks[trailer][10:16], hexutil.KeyBytes(res.keyB))
		}
	}
	for i := 0; i < count; i++ {
		if res.blocks[i] == nil {
			res.blocks[i] = make([]byte, pcsc.BlockSize)
			res.skipped = append(res.skipped, first+i)
		}
	}
	if !res.haveA && !res.haveB {
		return res, fmt.Errorf("sector %d: no key from the list matched", sector)
	}
	return res, nil
}

// hexSummary renders the dump as one hex line per block, grouped by
// sector with the trailer marked.
func hexSummary(uid []byte, typ tagtype.Type, dump []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s, UID %X\n", typ, uid)
	for sector := 0; sector < typ.Sectors(); sector++ {
		first := typ.FirstBlock(sector)
		count := typ.BlocksInSector(sector)
		fmt.Fprintf(&b, "\n# sector %d\n", sector)
		for i := 0; i < count; i++ {
			blk := first + i
			data := dump[blk*pcsc.BlockSize : (blk+1)*pcsc.BlockSize]
			mark := ""
			if i == count-1 {
				mark = "  # trailer"
			}
			fmt.Fprintf(&b, "%3d: %X%s\n", blk, data, mark)
		}
	}
	return b.String()
}

// ============================================================================
// Main
// ============================================================================

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	verbose := flag.Bool("v", false, "enable debug logging")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	// Configure slog
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

	fmt.Println("=== MIFARE Classic Dump Tool ===")
	fmt.Println()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	keys, err := cfg.KnownKeys()
	if err != nil {
		log.Fatalf("key list invalid: %v", err)
	}
	fmt.Printf("Loaded %d candidate keys\n", len(keys))

	readers, err := pcsc.ListReaders()
	if err != nil || len(readers) == 0 {
		log.Fatalf("no card readers available: %v", err)
	}
	readerIdx := *cfg.Reader.Index
	if readerIdx >= len(readers) {
		readerIdx = selectMenu("Select reader:", readers)
		if readerIdx < 0 {
			os.Exit(1)
		}
	}

	conn, err := pcsc.Connect(readerIdx)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()
	fmt.Printf("Using reader [%d]: %s\n", conn.ReaderIdx, conn.Reader)

	uid, err := conn.GetUID()
	if err != nil {
		log.Fatalf("get UID failed: %v", err)
	}
	fmt.Printf("Tag UID: %X\n", uid)

	types := []tagtype.Type{tagtype.MifareMini, tagtype.Mifare1K, tagtype.Mifare2K, tagtype.Mifare4K}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	choice := selectMenu("Select tag type:", names)
	if choice < 0 {
		os.Exit(1)
	}
	typ := types[choice]

	slot := byte(*cfg.Reader.KeySlot)
	var dump []byte
	var failed []int
	start := time.Now()

	for sector := 0; sector < typ.Sectors(); sector++ {
		res, err := dumpSector(conn, typ, sector, keys, slot)
		if err != nil {
			if res == nil || *cfg.Dump.HaltOnError {
				log.Fatal(err)
			}
			slog.Warn("sector skipped", "sector", sector, "error", err)
			failed = append(failed, sector)
		}
		for _, b := range res.blocks {
			dump = append(dump, b...)
		}
		for _, blk := range res.skipped {
			slog.Warn("block unreadable, zero filled", "block", blk)
		}
	}

	if err := os.MkdirAll(cfg.Dump.OutputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	outPath := filepath.Join(cfg.Dump.OutputDir, fmt.Sprintf("%X.mfd", uid))
	if err := os.WriteFile(outPath, dump, 0o644); err != nil {
		log.Fatalf("write dump: %v", err)
	}
	txtPath := outPath + ".txt"
	if err := os.WriteFile(txtPath, []byte(hexSummary(uid, typ, dump)), 0o644); err != nil {
		log.Fatalf("write summary: %v", err)
	}

	fmt.Println()
	fmt.Printf("Dumped %d bytes in %s\n", len(dump), time.Since(start).Round(time.Millisecond))
	if len(failed) > 0 {
		fmt.Printf("Sectors without a matching key: %v\n", failed)
	}
	fmt.Printf("Dump written to %s (summary %s)\n", outPath, txtPath)
}
