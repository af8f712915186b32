// Command zdlookup answers a single point-in-polygon query against a PLB
// database and prints the result.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geozone/zdgeo/lookup"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var wantSafezone bool

	cmd := &cobra.Command{
		Use:          "zdlookup <dbPath> <lat> <lon>",
		Short:        "Look up the zone(s) containing a geographic coordinate",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(args, wantSafezone)
		},
	}

	cmd.Flags().BoolVar(&wantSafezone, "safezone", true, "compute the safe-zone distance to the nearest boundary")

	return cmd
}

func runLookup(args []string, wantSafezone bool) error {
	lat, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		logrus.WithError(err).Error("invalid latitude")
		return err
	}
	lon, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		logrus.WithError(err).Error("invalid longitude")
		return err
	}

	db, err := lookup.Open(args[0])
	if err != nil {
		logrus.WithError(err).Error("failed to open database")
		return err
	}
	defer db.Close()

	results, safezone := db.Lookup(lat, lon, wantSafezone)

	for _, r := range results {
		if r.Result == lookup.ResultEnd {
			break
		}

		fmt.Printf("%s (metaId=%d)\n", lookup.LookupResultToString(r.Result), r.MetaID)
		for i, name := range db.FieldNames() {
			if i < len(r.Fields) {
				fmt.Printf("  %s: %s\n", name, r.Fields[i])
			}
		}
	}

	if wantSafezone {
		fmt.Printf("safezone: %.6f degrees\n", safezone)
	}

	return nil
}
