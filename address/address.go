// Fichier: address/address.go

package address

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// FieldDelimiter separates the address from its trailing metadata.
	FieldDelimiter = '\t'
	// OctetDelimiter separates the octets of a dotted address.
	OctetDelimiter = '.'
	// FullWidth is the number of octets an IPv4 address carries.
	FullWidth = 4
)

// Address is an ordered sequence of octet strings, most significant first.
// The arity is not enforced: "1.2" and "1.2.3.4.5" are both accepted.
type Address []string

// Pool is the ordered collection of addresses read from the input.
type Pool []Address

// String joins the octets back with the octet delimiter.
func (a Address) String() string {
	return strings.Join(a, string(OctetDelimiter))
}

// Split cuts s on every occurrence of delim. Empty fields are kept, so the
// result always holds one more field than there are delimiters in s.
func Split(s string, delim rune) []string {
	return strings.Split(s, string(delim))
}

// ParseLine extracts the address of a raw input line. Everything after the
// first tab is metadata and is dropped.
func ParseLine(line string) Address {
	fields := Split(line, FieldDelimiter)
	return Address(Split(fields[0], OctetDelimiter))
}

// ReadPool consumes r to the end and parses every line into the pool.
func ReadPool(r io.Reader) (Pool, error) {
	var pool Pool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		pool = append(pool, ParseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input after %d lines: %w", len(pool), err)
	}

	return pool, nil
}
