package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// WriteDaysCSV writes the day-by-day growth ledger as CSV.
func WriteDaysCSV(w io.Writer, records []grow.DayRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"day", "time", "start_length", "trial_increment", "budget",
		"scale", "committed_increment", "end_length", "limited"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Day),
			strconv.FormatFloat(rec.Time, 'f', 6, 64),
			strconv.FormatFloat(rec.StartLength, 'f', 6, 64),
			strconv.FormatFloat(rec.TrialIncrement, 'f', 6, 64),
			strconv.FormatFloat(rec.Budget, 'f', 6, 64),
			strconv.FormatFloat(rec.Scale, 'f', 6, 64),
			strconv.FormatFloat(rec.CommittedIncrement, 'f', 6, 64),
			strconv.FormatFloat(rec.EndLength, 'f', 6, 64),
			strconv.FormatBool(rec.Limited),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
