// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtfmt renders decoded NBT value trees as indented, typed
// listings for humans. It is the presentation layer behind
// cmd/nbt-dump's default output.
//
// The listing shows one entry per line with its kind, name, and value:
//
//	Compound (2 entries)
//	  DataVersion: Int 3465
//	  servers: List of Compound (1 element)
//	    Compound (2 entries)
//	      ip: String "loucaskreger.com"
//	      name: String "Minecraft Server"
//
// With [Options.Color] enabled the kind names render dim and entry
// names bold, via lipgloss. Color output respects the terminal's
// capability detection, so piping to a file degrades to plain text.
package nbtfmt
