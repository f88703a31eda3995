// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

// nbt-dump decodes an NBT file and prints it in a chosen projection.
//
// The input may be plain or gzip-compressed; the gzip magic is
// auto-detected, matching how level.dat and most standalone NBT files
// are stored. Output formats:
//
//   - tree (default): indented, typed listing via lib/nbtfmt
//   - json: the decoded tree as indented JSON
//   - cbor: deterministic CBOR bytes (RFC 8949 Core Deterministic
//     Encoding) on stdout, for piping into other tooling
//   - diag: CBOR diagnostic notation (RFC 8949 §8)
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/lodestone-foundation/nbt/lib/codec"
	"github.com/lodestone-foundation/nbt/lib/nbt"
	"github.com/lodestone-foundation/nbt/lib/nbtfmt"
	"github.com/lodestone-foundation/nbt/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var format string
	var color bool

	flagSet := pflag.NewFlagSet("nbt-dump", pflag.ContinueOnError)
	flagSet.StringVar(&format, "format", "tree", "output format: tree, json, cbor, or diag")
	flagSet.BoolVar(&color, "color", false, "style tree output for terminals")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other Lodestone
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("nbt-dump")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file (use - for stdin)")
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	var tree nbt.Value
	if nbt.IsGzip(data) {
		err = nbt.UnmarshalGzip(bytes.NewReader(data), &tree)
	} else {
		err = nbt.Unmarshal(data, &tree)
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	switch format {
	case "tree":
		return nbtfmt.Options{Color: color}.Fprint(os.Stdout, tree)
	case "json":
		encoded, err := json.MarshalIndent(nbt.Native(tree), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	case "cbor":
		encoded, err := codec.Marshal(nbt.Native(tree))
		if err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
		_, err = os.Stdout.Write(encoded)
		return err
	case "diag":
		encoded, err := codec.Marshal(nbt.Native(tree))
		if err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
		notation, err := codec.Diagnose(encoded)
		if err != nil {
			return fmt.Errorf("diagnostic notation: %w", err)
		}
		fmt.Println(notation)
		return nil
	default:
		return fmt.Errorf("unknown format %q: want tree, json, cbor, or diag", format)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Decode an NBT file and print it.

The input may be plain or gzip-compressed NBT; compression is detected
from the gzip magic bytes. Use - to read from stdin.

Usage:
  nbt-dump [flags] <file>

Examples:
  # Pretty-print a level.dat
  nbt-dump --color level.dat

  # Project a servers.dat to JSON for jq
  nbt-dump --format json servers.dat | jq .servers

  # Deterministic CBOR bytes for content addressing
  nbt-dump --format cbor level.dat | sha256sum

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
