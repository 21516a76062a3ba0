// Fichier: address/compare.go

package address

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/projectdiscovery/gcache"
)

// ErrNotNumeric is returned when an octet cannot be read as an integer.
var ErrNotNumeric = errors.New("octet is not numeric")

// valueCacheSize covers every octet of a well-formed IPv4 address.
const valueCacheSize = 256

// Comparator orders addresses over the octet positions [start, end), comparing
// octets by integer value in descending order.
type Comparator struct {
	start, end int
	values     gcache.Cache[string, int]
}

// NewComparator returns a comparator restricted to the octets [start, end).
func NewComparator(start, end int) *Comparator {
	return &Comparator{
		start: start,
		end:   end,
		values: gcache.New[string, int](valueCacheSize).
			LRU().
			LoaderFunc(parseOctet).
			Build(),
	}
}

// FullAddress returns the comparator used for the pool order.
func FullAddress() *Comparator {
	return NewComparator(0, FullWidth)
}

// Prefix returns the comparator over the first n octets.
func Prefix(n int) *Comparator {
	return NewComparator(0, n)
}

// Width is the number of octet positions the comparator looks at.
func (c *Comparator) Width() int {
	return c.end - c.start
}

// Greater reports whether lhs sorts before rhs, i.e. at the first differing
// position of the range the left octet holds the larger value. A range that
// is a proper prefix of the other sorts first, so 1.2 precedes 1.2.3. Equal
// ranges are not greater in either direction.
func (c *Comparator) Greater(lhs, rhs Address) (bool, error) {
	l, r := c.window(lhs), c.window(rhs)

	for i := 0; i < len(l) && i < len(r); i++ {
		lv, err := c.value(l[i])
		if err != nil {
			return false, err
		}
		rv, err := c.value(r[i])
		if err != nil {
			return false, err
		}
		if lv != rv {
			return lv > rv, nil
		}
	}

	return len(l) < len(r), nil
}

// window clamps [start, end) to the octets a actually has.
func (c *Comparator) window(a Address) Address {
	start, end := c.start, c.end
	if end > len(a) {
		end = len(a)
	}
	if start > end {
		start = end
	}
	return a[start:end]
}

func (c *Comparator) value(octet string) (int, error) {
	return c.values.Get(octet)
}

func parseOctet(octet string) (int, error) {
	v, err := strconv.Atoi(octet)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, octet)
	}
	return v, nil
}

// Sort reorders pool in place, largest address first. The order is not
// stable. The first comparison error aborts the run and is returned; the pool
// is then left in an unspecified order.
func Sort(pool Pool) error {
	cmp := FullAddress()

	var sortErr error
	sort.Slice(pool, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		greater, err := cmp.Greater(pool[i], pool[j])
		if err != nil {
			sortErr = err
			return false
		}
		return greater
	})
	if sortErr != nil {
		return fmt.Errorf("failed to sort %d addresses: %w", len(pool), sortErr)
	}

	return nil
}

// IsSorted reports whether every adjacent pair of pool is in full address
// order. Filters that binary search the pool rely on it.
func IsSorted(pool Pool) (bool, error) {
	cmp := FullAddress()

	for i := 1; i < len(pool); i++ {
		outOfOrder, err := cmp.Greater(pool[i], pool[i-1])
		if err != nil {
			return false, err
		}
		if outOfOrder {
			return false, nil
		}
	}

	return true, nil
}
