package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet-pump/internal/dialect"
	"sheet-pump/internal/engine"
	"sheet-pump/internal/workbook"
)

var (
	migrateFile string
	chunkSize   int
	sheetNames  []string
	dropTables  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate workbook sheets into database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := GetActiveDBConfig()
		if err != nil {
			return err
		}

		fmt.Printf("📗 Connected to %s (%s)\n", config.Name, config.Driver)

		db, err := sql.Open(config.Driver, config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		d := dialect.GetDialect(config.Driver)
		log.Printf("Using Dialect: %s\n", d.Name())

		wb, err := workbook.Open(migrateFile)
		if err != nil {
			return err
		}
		defer wb.Close()

		sources, err := selectSheets(wb)
		if err != nil {
			return err
		}
		log.Printf("Workbook %s: %d sheet(s) to migrate", wb.Path(), len(sources))

		cfg := loadSettings()
		overrides, err := loadOverrides()
		if err != nil {
			return err
		}

		start := time.Now()

		uiprogress.Start()

		// One bar per sheet, added when its first batch lands.
		var (
			bar      *uiprogress.Bar
			barSheet string
		)
		progress := func(sheet string, done, total int) {
			if bar == nil || sheet != barSheet {
				barSheet = sheet
				label := fmt.Sprintf("%-15.15s", sheet)
				bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return label
				})
			}
			bar.Set(done)
		}

		dest := &engine.SQLDestination{DB: db, Dialect: d}
		results := engine.Migrate(sources, dest, cfg, engine.Options{Drop: dropTables, Overrides: overrides}, progress)

		uiprogress.Stop()

		verified := engine.Verify(dest, results)

		elapsed := time.Since(start)

		fmt.Println("\n📊 Summary Report (Workbook Order):")
		for i, r := range verified {
			icon := "✓"
			if r.Status != "VERIFIED_OK" {
				icon = "!"
			}
			statusDisplay := r.Status
			if statusDisplay == "VERIFIED_OK" {
				statusDisplay = "OK (Verified)"
			}

			fmt.Printf("[%s] [%02d/%02d] %-20s → %-20s : %d rows - %s\n",
				icon, i+1, len(verified), r.SheetName, r.TableName, r.Rows, statusDisplay)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
			}
		}
		s := engine.Summarize(verified)
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Sheets: %d total, %d succeeded, %d failed\n", s.Total, s.Succeeded, s.Failed)
		fmt.Printf("Total Rows Migrated: %d\n", s.Rows)
		log.Printf("Migration Done! Time Elapsed: %s", elapsed)

		if s.Failed > 0 {
			return fmt.Errorf("%d sheet(s) failed", s.Failed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateFile, "file", "f", "", "Path to the Excel workbook (.xlsx)")
	migrateCmd.MarkFlagRequired("file")
	migrateCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Rows per insert batch (overrides config)")
	migrateCmd.Flags().StringSliceVarP(&sheetNames, "sheets", "s", []string{}, "Specific sheets to migrate (comma-separated)")
	migrateCmd.Flags().BoolVar(&dropTables, "drop", false, "Drop and recreate destination tables that already exist")

	viper.BindPFlag("settings.chunk_size", migrateCmd.Flags().Lookup("chunk-size"))
	// Sheet selection precedence is handled in code: Flag > Config > All.
}

// sheetSource adapts a workbook sheet to the engine's source contract.
type sheetSource struct {
	*workbook.Sheet
}

func (s sheetSource) Rows() (engine.RowSource, error) {
	return s.Sheet.Rows()
}

// selectSheets applies the sheet filter (Flag > Config > All) and keeps
// workbook order.
func selectSheets(wb *workbook.Workbook) ([]engine.Source, error) {
	requested := sheetNames
	if len(requested) == 0 {
		requested = viper.GetStringSlice("settings.sheets")
	}

	all := wb.Sheets()
	if len(requested) == 0 {
		sources := make([]engine.Source, len(all))
		for i, s := range all {
			sources[i] = sheetSource{s}
		}
		return sources, nil
	}

	want := make(map[string]bool, len(requested))
	for _, n := range requested {
		want[strings.ToLower(n)] = true
	}

	var sources []engine.Source
	for _, s := range all {
		if want[strings.ToLower(s.Name())] {
			sources = append(sources, sheetSource{s})
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no matching sheets found for inputs: %v", requested)
	}
	return sources, nil
}
