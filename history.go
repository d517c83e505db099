package xab

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// WriteHistory writes rounds as CSV: t, reward, then one column per
// dimension (x0, x1, ...).
func WriteHistory(w io.Writer, rounds []Round) error {
	writer := csv.NewWriter(w)

	dims := 0
	if len(rounds) > 0 {
		dims = len(rounds[0].Point)
	}

	header := []string{"t", "reward"}
	for i := 0; i < dims; i++ {
		header = append(header, "x"+strconv.Itoa(i))
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write history header")
	}

	for _, r := range rounds {
		row := make([]string, 0, 2+len(r.Point))
		row = append(row, strconv.Itoa(r.T), strconv.FormatFloat(r.Reward, 'g', -1, 64))
		for _, x := range r.Point {
			row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write round %d", r.T)
		}
	}

	writer.Flush()

	return errors.Wrap(writer.Error(), "failed to flush history")
}
