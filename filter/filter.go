// Fichier: filter/filter.go

// Package filter selects views of an address pool.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"project/ip-filter/address"
)

var (
	// ErrPrefixLength is returned when a prefix query has no values or more
	// values than an address has octets.
	ErrPrefixLength = errors.New("prefix must hold between 1 and 4 values")
	// ErrShortAddress is returned when an address has fewer octets than the
	// prefix being searched.
	ErrShortAddress = errors.New("address is shorter than the prefix")
)

// ByPrefix returns the addresses whose leading octets equal values.
//
// The pool must already be sorted with address.Sort: the matching run is
// located by binary search, and an unsorted pool yields a wrong selection
// without any error. Use address.IsSorted to assert the precondition.
// The returned pool is a copy and does not alias the input.
func ByPrefix(pool address.Pool, values ...int) (address.Pool, error) {
	if len(values) == 0 || len(values) > address.FullWidth {
		return nil, fmt.Errorf("%w: got %d", ErrPrefixLength, len(values))
	}

	target := make(address.Address, len(values))
	for i, v := range values {
		target[i] = strconv.Itoa(v)
	}

	// Every address must carry the prefix, not only those the search probes.
	for _, a := range pool {
		if len(a) < len(values) {
			return nil, fmt.Errorf("failed to filter by prefix %s: %w: %q needs %d octets", target, ErrShortAddress, a.String(), len(values))
		}
	}

	cmp := address.Prefix(len(values))

	var searchErr error
	greater := func(lhs, rhs address.Address) bool {
		if searchErr != nil {
			return false
		}
		ok, err := cmp.Greater(lhs, rhs)
		if err != nil {
			searchErr = err
			return false
		}
		return ok
	}

	lower := sort.Search(len(pool), func(i int) bool {
		return !greater(pool[i], target)
	})
	upper := lower + sort.Search(len(pool)-lower, func(i int) bool {
		return greater(target, pool[lower+i])
	})
	if searchErr != nil {
		return nil, fmt.Errorf("failed to filter by prefix %s: %w", target, searchErr)
	}

	result := make(address.Pool, upper-lower)
	copy(result, pool[lower:upper])
	return result, nil
}

// ByAnyOctet returns, in pool order, the addresses holding value at any
// position. Octets are matched as strings, so "046" does not match 46.
func ByAnyOctet(pool address.Pool, value int) address.Pool {
	want := strconv.Itoa(value)

	result := address.Pool{}
	for _, a := range pool {
		for _, octet := range a {
			if octet == want {
				result = append(result, a)
				break
			}
		}
	}
	return result
}
