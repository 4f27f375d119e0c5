package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet-pump/internal/dialect"
	"sheet-pump/internal/schema"
	"sheet-pump/internal/workbook"
)

var (
	inspectFile string
	ddlOut      string
	ddlDriver   string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Analyze a workbook and print the schema it would create",
	Long: `Inspect runs the full analysis pipeline (headers, sampling, type
inference, identifier normalization) without touching a database, and prints
the CREATE TABLE statements the migrate command would execute.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver := ddlDriver
		if driver == "" {
			driver = detectDriver(viper.GetString("database.dsn"))
		}
		d := dialect.GetDialect(driver)
		log.Printf("Using Dialect: %s\n", d.Name())

		wb, err := workbook.Open(inspectFile)
		if err != nil {
			return err
		}
		defer wb.Close()

		cfg := loadSettings()
		overrides, err := loadOverrides()
		if err != nil {
			return err
		}

		sources, err := selectSheets(wb)
		if err != nil {
			return err
		}

		var ddl strings.Builder
		fmt.Printf("🔍 Analysis of %s (%d sheet(s)):\n", wb.Path(), len(sources))

		for i, src := range sources {
			desc, err := src.Describe()
			if err != nil {
				fmt.Printf("[%02d] %-20s : unreadable (%v)\n", i+1, src.Name(), err)
				continue
			}
			if desc.RowCount == 0 {
				fmt.Printf("[%02d] %-20s : empty, would be skipped\n", i+1, src.Name())
				continue
			}

			samples, err := src.Sample(cfg.SampleRows)
			if err != nil {
				fmt.Printf("[%02d] %-20s : sampling failed (%v)\n", i+1, src.Name(), err)
				continue
			}
			spec, err := schema.Build(desc, func(col int) []string {
				if col < len(samples) {
					return samples[col]
				}
				return nil
			}, overrides, cfg)
			if err != nil {
				fmt.Printf("[%02d] %-20s : %v\n", i+1, src.Name(), err)
				continue
			}

			fmt.Printf("[%02d] %-20s → %s (%d data rows)\n", i+1, desc.Name, spec.Name, desc.RowCount)
			for _, c := range spec.Columns {
				marker := ""
				if c.Overridden {
					marker = " (override)"
				} else if c.LowConfidence {
					marker = " (low confidence)"
				}
				fmt.Printf("      %-30s %s  [from %q]%s\n", c.Name, d.TypeFor(c.Type), c.Source, marker)
			}

			ddl.WriteString(d.CreateTableQuery(spec))
			ddl.WriteString(";\n\n")
		}

		if ddlOut != "" {
			if err := os.WriteFile(ddlOut, []byte(ddl.String()), 0o644); err != nil {
				return fmt.Errorf("failed to write DDL file: %w", err)
			}
			fmt.Printf("\nDDL written to %s\n", ddlOut)
		} else {
			fmt.Println("\n-- Generated DDL --")
			fmt.Print(ddl.String())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "Path to the Excel workbook (.xlsx)")
	inspectCmd.MarkFlagRequired("file")
	inspectCmd.Flags().StringVar(&ddlOut, "out", "", "Write generated DDL to a file instead of stdout")
	inspectCmd.Flags().StringVar(&ddlDriver, "driver", "", "Dialect to render DDL for (mysql, postgres, sqlserver, oracle)")
	inspectCmd.Flags().StringSliceVarP(&sheetNames, "sheets", "s", []string{}, "Specific sheets to inspect (comma-separated)")
}
