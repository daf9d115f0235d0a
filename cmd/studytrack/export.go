package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/export"
	"github.com/rbarros/studytrack/internal/study"
)

func newExportCommand() *cobra.Command {
	var (
		track     string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the study records of a track to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			trackID, err := resolveTrack(cfg, track)
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Outputs.ExportDirectory
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			exporter := export.NewExporter(study.NewDBRecordRepository(db), export.NewYAMLRecordSink(outputDir))
			path, err := exporter.ExportRecords(ctx, trackID)
			if err != nil {
				return fmt.Errorf("exporter.ExportRecords(%s) > %w", trackID, err)
			}

			fmt.Printf("Exported records to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the YAML file (defaults to outputs.export_directory)")

	return cmd
}

func newImportCommand() *cobra.Command {
	var (
		track  string
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import study records from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			trackID, err := resolveTrack(cfg, track)
			if err != nil {
				return err
			}

			records, err := export.ReadRecords(file)
			if err != nil {
				return fmt.Errorf("export.ReadRecords(%s) > %w", file, err)
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			importer := export.NewImporter(study.NewDBRecordRepository(db), os.Stdout)
			result, err := importer.ImportRecords(ctx, trackID, records, export.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("importer.ImportRecords(%s) > %w", trackID, err)
			}

			fmt.Println("Import Summary:")
			fmt.Printf("  New:     %d\n", result.New)
			fmt.Printf("  Skipped: %d\n", result.Skipped)
			if dryRun {
				fmt.Println("Dry run: no records were written.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(&file, "file", "", "YAML file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without writing")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
