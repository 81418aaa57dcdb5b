package flags

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

func AddDate(cmd *cobra.Command) {
	cmd.Flags().
		StringP("date", "d", "", "Date for the file name prefix, e.g. 2024-05-01 or \"May 1, 2024\" (default today).")
}

// HandleDate parses the --date flag in local time, or returns today.
func HandleDate(cmd *cobra.Command) (time.Time, error) {
	value, err := cmd.Flags().GetString("date")
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return now(), nil
	}

	date, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return date, nil
}
