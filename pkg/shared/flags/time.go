package flags

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
)

func AddTime(cmd *cobra.Command) {
	cmd.Flags().
		StringP("time", "t", "", "Timestamp for the note instead of now, in any common date format.")
}

// HandleTime parses the --time flag. An empty flag yields the zero
// time, which downstream treats as "now".
func HandleTime(cmd *cobra.Command) (time.Time, error) {
	raw, err := cmd.Flags().GetString("time")
	if err != nil {
		return time.Time{}, err
	}

	if raw == "" {
		return time.Time{}, nil
	}

	ts, err := dateparse.ParseLocal(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing time %q: %w", raw, err)
	}

	return ts, nil
}
