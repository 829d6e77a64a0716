// Package main provides the sstdump CLI tool for inspecting a single table
// file: scanning its entries, summarizing its properties, or verifying its
// block checksums.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cellarkv/sstable"
)

var (
	filePath    = flag.String("file", "", "Path to the table file (required)")
	command     = flag.String("command", "scan", "Command: scan, properties, check")
	hexOutput   = flag.Bool("hex", false, "Output keys and values in hex format")
	limit       = flag.Int("limit", 0, "Limit number of entries (0 = unlimited)")
	fromKey     = flag.String("from", "", "Start key for scan")
	toKey       = flag.String("to", "", "End key for scan")
	showValues  = flag.Bool("values", true, "Show values in scan output")
	help        = flag.Bool("help", false, "Print help")
	showSummary = flag.Bool("summary", true, "Show summary statistics")
)

func main() {
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		printUsage()
		os.Exit(1)
	}

	var err error
	switch *command {
	case "scan":
		err = cmdScan()
	case "properties":
		err = cmdProperties()
	case "check":
		err = cmdCheck()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("sstdump - table file inspection tool")
	fmt.Println()
	fmt.Println("Usage: sstdump --file=<path> [--command=<cmd>] [options]")
	fmt.Println()
	fmt.Println("Commands (--command):")
	fmt.Println("  scan        Scan all key-value pairs (default)")
	fmt.Println("  properties  Show table summary statistics")
	fmt.Println("  check       Verify block checksums by scanning every entry")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func openTable() (*sstable.Reader, func(), error) {
	source, err := sstable.OpenFile(*filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	reader, err := sstable.Open(source, nil)
	if err != nil {
		source.Close()
		return nil, nil, fmt.Errorf("opening table: %w", err)
	}
	return reader, func() { reader.Close() }, nil
}

func formatOutput(data []byte) string {
	if *hexOutput {
		return hex.EncodeToString(data)
	}
	for _, b := range data {
		if b < 32 || b > 126 {
			return hex.EncodeToString(data)
		}
	}
	return string(data)
}

func cmdScan() error {
	reader, closeFn, err := openTable()
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Printf("Table: %s\n", *filePath)
	fmt.Println("---")

	it := reader.NewIterator()
	if *fromKey != "" {
		it.Seek([]byte(*fromKey))
	} else {
		it.SeekToFirst()
	}

	count := 0
	var totalKeyBytes, totalValueBytes int64

	for it.Valid() {
		key := it.Key()
		if *toKey != "" && string(key) >= *toKey {
			break
		}

		if *showValues {
			fmt.Printf("%s => %s\n", formatOutput(key), formatOutput(it.Value()))
		} else {
			fmt.Printf("%s\n", formatOutput(key))
		}

		totalKeyBytes += int64(len(key))
		totalValueBytes += int64(len(it.Value()))
		count++

		if *limit > 0 && count >= *limit {
			break
		}
		it.Next()
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	if *showSummary {
		fmt.Println("---")
		fmt.Printf("Total entries: %d\n", count)
		fmt.Printf("Total key bytes: %d\n", totalKeyBytes)
		fmt.Printf("Total value bytes: %d\n", totalValueBytes)
		if skipped := reader.CorruptBlocksSkipped(); skipped > 0 {
			fmt.Printf("Corrupt blocks skipped: %d\n", skipped)
		}
	}

	return nil
}

func cmdProperties() error {
	info, err := os.Stat(*filePath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	reader, closeFn, err := openTable()
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Printf("Table: %s\n", *filePath)
	fmt.Println("---")
	fmt.Printf("File size: %d bytes\n", info.Size())
	fmt.Printf("File name: %s\n", filepath.Base(*filePath))

	it := reader.NewIterator()
	count := 0
	var minKey, maxKey []byte
	var totalKeyBytes, totalValueBytes int64

	for it.SeekToFirst(); it.Valid(); it.Next() {
		key := it.Key()
		value := it.Value()

		if count == 0 {
			minKey = append([]byte{}, key...)
		}
		maxKey = append(maxKey[:0], key...)

		totalKeyBytes += int64(len(key))
		totalValueBytes += int64(len(value))
		count++
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	fmt.Printf("Number of entries: %d\n", count)
	fmt.Printf("Total key bytes: %d\n", totalKeyBytes)
	fmt.Printf("Total value bytes: %d\n", totalValueBytes)

	if count > 0 {
		fmt.Printf("Average key size: %.1f bytes\n", float64(totalKeyBytes)/float64(count))
		fmt.Printf("Average value size: %.1f bytes\n", float64(totalValueBytes)/float64(count))
		fmt.Printf("Smallest key: %s\n", formatOutput(minKey))
		fmt.Printf("Largest key: %s\n", formatOutput(maxKey))
	}

	return nil
}

func cmdCheck() error {
	reader, closeFn, err := openTable()
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Printf("Checking table: %s\n", *filePath)
	fmt.Println("---")

	it := reader.NewIterator()
	count := 0
	for it.SeekToFirst(); it.Valid(); it.Next() {
		count++
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	skipped := reader.CorruptBlocksSkipped()

	fmt.Println("---")
	fmt.Printf("Total entries scanned: %d\n", count)
	fmt.Printf("Corrupt blocks skipped: %d\n", skipped)

	if skipped > 0 {
		return fmt.Errorf("table has %d corrupt block(s)", skipped)
	}

	fmt.Println("Table is valid")
	return nil
}
