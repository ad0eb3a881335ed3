package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/polecheck/internal/spida"
)

var editCmd = &cobra.Command{
	Use:   "edit <spida.json>",
	Short: "Edit one pole field in a SPIDAcalc export",
	Long:  "Locates a pole by its comparison sequence id and rewrites one editable field (spec, existing_pct, final_pct, drop) in the document, preserving everything else.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		scid, _ := cmd.Flags().GetString("scid")
		fieldName, _ := cmd.Flags().GetString("field")
		value, _ := cmd.Flags().GetString("value")
		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = path
		}

		field, err := spida.ParseEditField(fieldName)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "edit: read %s", path)
		}
		doc, err := spida.Parse(data)
		if err != nil {
			return err
		}

		if err := doc.ApplyEdit(scid, field, value, cfg.Spida.ServiceOwner); err != nil {
			return err
		}

		out, err := doc.Bytes()
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return eris.Wrapf(err, "edit: write %s", outPath)
		}

		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
		return nil
	},
}

func init() {
	editCmd.Flags().String("scid", "", "sequence id of the pole to edit")
	editCmd.Flags().String("field", "", "field to edit: spec, existing_pct, final_pct, drop")
	editCmd.Flags().String("value", "", "new value for the field")
	editCmd.Flags().StringP("output", "o", "", "output path (default: overwrite the input)")
	_ = editCmd.MarkFlagRequired("scid")
	_ = editCmd.MarkFlagRequired("field")
	_ = editCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(editCmd)
}
