// Command builder ingests an ESRI Shapefile/DBF pair and emits a PLB
// database.
package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-shapefile"

	"github.com/geozone/zdgeo/builder"
	"github.com/geozone/zdgeo/fixedpoint"
	"github.com/geozone/zdgeo/format"
	"github.com/geozone/zdgeo/zderrs"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builder <tableType:C|T> <inputShapefileStem> <outputBinPath> <precisionBits> <noticeString>",
		Short: "Build a PLB timezone or country polygon database from a shapefile",
		Args:  cobra.ExactArgs(5),
		RunE:  runBuild,
		SilenceUsage: true,
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	tableType, err := parseTableType(args[0])
	if err != nil {
		return err
	}

	precision, err := strconv.ParseUint(args[3], 10, 8)
	if err != nil {
		logrus.WithError(err).Error("invalid precision")
		return err
	}

	opts := builder.Options{
		TableType: tableType,
		Precision: fixedpoint.Precision(precision),
		Notice:    args[4],
	}

	stem := args[1]
	dir, base := filepath.Dir(stem), filepath.Base(stem)
	sf, err := shapefile.ReadFS(os.DirFS(dir), base)
	if err != nil {
		logrus.WithError(err).Error("failed to read shapefile")
		return err
	}

	records, polygons, err := builder.Ingest(sf, opts, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to ingest shapefile records")
		return err
	}

	data, err := builder.Build(opts, records, polygons)
	if err != nil {
		logrus.WithError(err).Error("failed to build database")
		return err
	}

	if err := os.WriteFile(args[2], data, 0o644); err != nil {
		logrus.WithError(err).Error("failed to write output file")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"records":  len(records),
		"polygons": len(polygons),
		"output":   args[2],
	}).Info("database built")

	return nil
}

func parseTableType(s string) (format.TableType, error) {
	if len(s) != 1 {
		return 0, zderrs.ErrUnknownTableType
	}

	t := format.TableType(s[0])
	if t != format.TableTypeTimezone && t != format.TableTypeCountry {
		return 0, zderrs.ErrUnknownTableType
	}

	return t, nil
}
