package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/polecheck/internal/export"
	"github.com/sells-group/polecheck/internal/katapult"
	"github.com/sells-group/polecheck/internal/match"
	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/spida"
	"github.com/sells-group/polecheck/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <spida.json> <katapult.json>",
	Short: "Compare a SPIDAcalc export against a Katapult Pro export",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		designPath, fieldPath := args[0], args[1]

		var design, field []model.Asset

		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			data, err := os.ReadFile(designPath)
			if err != nil {
				return eris.Wrapf(err, "compare: read %s", designPath)
			}
			doc, err := spida.Parse(data)
			if err != nil {
				return err
			}
			design, err = spida.ExtractAssets(doc, cfg.Spida.ServiceOwner)
			return err
		})
		g.Go(func() error {
			data, err := os.ReadFile(fieldPath)
			if err != nil {
				return eris.Wrapf(err, "compare: read %s", fieldPath)
			}
			doc, err := katapult.Parse(data)
			if err != nil {
				return err
			}
			field = katapult.ExtractAssets(doc)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		engine := match.NewEngine(match.Config{
			HeightToleranceFt: cfg.Match.HeightToleranceFt,
			DirectRadiusM:     cfg.Match.DirectRadiusM,
			SpecVerifyRadiusM: cfg.Match.SpecVerifyRadiusM,
		})
		res := engine.Run(design, field)

		formatStats(os.Stdout, res)

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			if err := export.WriteXLSX(path, res); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
		if path, _ := cmd.Flags().GetString("geojson"); path != "" {
			if err := export.WriteGeoJSON(path, res); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
		if path, _ := cmd.Flags().GetString("shp"); path != "" {
			if err := export.WriteShapefile(path, res); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}

		if save, _ := cmd.Flags().GetBool("store"); save {
			st, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if _, err := st.SaveRun(ctx, res, designPath, fieldPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	compareCmd.Flags().String("xlsx", "", "write the comparison table to an XLSX file")
	compareCmd.Flags().String("geojson", "", "write matched records to a GeoJSON file")
	compareCmd.Flags().String("shp", "", "write matched records to a point shapefile")
	compareCmd.Flags().Bool("store", false, "save the run summary to the local run history database")
	rootCmd.AddCommand(compareCmd)
}

// formatStats writes the per-tier summary table.
func formatStats(out io.Writer, res *match.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", res.RunID)
	_, _ = fmt.Fprintf(w, "Design poles:\t%d\n", res.DesignCount)
	_, _ = fmt.Fprintf(w, "Field poles:\t%d\n", res.FieldCount)
	_, _ = fmt.Fprintf(w, "Matched:\t%d\n", res.Stats.Matched())
	_, _ = fmt.Fprintf(w, "  By sequence id:\t%d\n", res.Stats.SCID)
	_, _ = fmt.Fprintf(w, "  By pole number:\t%d\n", res.Stats.PoleNumber)
	_, _ = fmt.Fprintf(w, "  By coordinate:\t%d\n", res.Stats.CoordDirect)
	_, _ = fmt.Fprintf(w, "  By coordinate + spec:\t%d\n", res.Stats.CoordSpec)
	_, _ = fmt.Fprintf(w, "Unmatched design:\t%d\n", res.Stats.Unmatched)
	_, _ = fmt.Fprintf(w, "Field only:\t%d\n", res.Stats.FieldOnly)
	_ = w.Flush()
}
