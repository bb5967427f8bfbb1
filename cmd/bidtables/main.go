// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Bidtables regenerates the decimal conversion tables.
//
// Usage:
//
//	bidtables [-check] [-emit] [-o file]
//
// With -check, bidtables prints the SHA-256 of each generated table and
// compares it with the digest of the published tables, exiting non-zero on
// any mismatch. With -emit, it writes the tables as Go source, to standard
// output or to the file named by -o.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"

	"github.com/cockroachdb/bid"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: bidtables [-check] [-emit] [-o file]\n")
	os.Exit(2)
}

var (
	check = flag.Bool("check", false, "compare table digests with the published tables")
	emit  = flag.Bool("emit", false, "write the tables as Go source")
	out   = flag.String("o", "", "write -emit output to `file`")
)

// Digests of the published tables.
var published = []struct {
	name, sum string
}{
	{"convert", bid.ConvertDigest},
	{"packed zeros", bid.PackedZerosDigest},
	{"factors", bid.FactorsDigest},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bidtables: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 || (!*check && !*emit) {
		usage()
	}

	t, err := bid.GenerateTables()
	if err != nil {
		log.Fatal(err)
	}
	if *check {
		if !checkDigests(t) {
			os.Exit(1)
		}
	}
	if *emit {
		src, err := format.Source(source(t))
		if err != nil {
			log.Fatalf("formatting output: %v", err)
		}
		if err := write(*out, src); err != nil {
			log.Fatal(err)
		}
	}
}

// write writes src to the file named by name, or to standard output if name
// is empty.
func write(name string, src []byte) error {
	if name == "" {
		_, err := os.Stdout.Write(src)
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkDigests(t *bid.Tables) bool {
	convert, packed, factors := t.Digests()
	ok := true
	for i, sum := range [][32]byte{convert, packed, factors} {
		got := hex.EncodeToString(sum[:])
		fmt.Printf("%-12s %s\n", published[i].name, got)
		if got != published[i].sum {
			log.Printf("%s: digest mismatch, want %s", published[i].name, published[i].sum)
			ok = false
		}
	}
	return ok
}

func source(t *bid.Tables) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by bidtables -emit; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package tables\n\n")

	fmt.Fprintf(&buf, "var Convert = [%d][%d][2]uint32{\n", len(t.Convert), len(t.Convert[0]))
	for j := range t.Convert {
		fmt.Fprintf(&buf, "{\n")
		for k, e := range t.Convert[j] {
			fmt.Fprintf(&buf, "{%d, %d},", e[0], e[1])
			if k%4 == 3 {
				buf.WriteByte('\n')
			}
		}
		fmt.Fprintf(&buf, "},\n")
	}
	fmt.Fprintf(&buf, "}\n\n")

	fmt.Fprintf(&buf, "var PackedZeros = [%d]uint8{\n", len(t.PackedZeros))
	for i, b := range t.PackedZeros {
		fmt.Fprintf(&buf, "0x%02x,", b)
		if i%16 == 15 {
			buf.WriteByte('\n')
		}
	}
	fmt.Fprintf(&buf, "}\n\n")

	fmt.Fprintf(&buf, "var Factors = [%d][2]uint8{\n", len(t.Factors))
	for i, f := range t.Factors {
		fmt.Fprintf(&buf, "{%d, %d},", f[0], f[1])
		if i%8 == 7 {
			buf.WriteByte('\n')
		}
	}
	fmt.Fprintf(&buf, "}\n")
	return buf.Bytes()
}
