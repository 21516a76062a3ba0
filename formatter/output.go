// Fichier: formatter/output.go

package formatter

import (
	"bufio"
	"io"

	"project/ip-filter/address"
)

// WritePool prints one address per line, octets joined with '.', in the
// current order of pool.
func WritePool(w io.Writer, pool address.Pool) error {
	bw := bufio.NewWriter(w)
	for _, a := range pool {
		if _, err := bw.WriteString(a.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
