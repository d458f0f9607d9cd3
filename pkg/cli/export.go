package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xbklairith/postgirl-sub001/pkg/convert"
	"github.com/xbklairith/postgirl-sub001/pkg/store"
)

var exportFlags struct {
	workspace string
	format    string
	to        string
	output    string
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Convert a collection file to another format",
	Long: `Import a collection file into an in-memory workspace, then export it in
the target format. Effectively a one-shot format converter:

  postgirl export collection.postman.json --to curl
  postgirl export api.openapi.json --to postman -o out.postman.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.workspace, "workspace", "w", "default", "workspace ID to stage the import in")
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "", "source format; auto-detected when empty")
	exportCmd.Flags().StringVar(&exportFlags.to, "to", "postman", "target format (postman, curl)")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	target := convert.ParseFormat(exportFlags.to)
	if !target.CanExport() {
		return fmt.Errorf("format %q does not support export (supported: %v)", exportFlags.to, convert.ExportFormats())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	mem := store.NewMemoryStore()
	coord := convert.NewCoordinator(mem, mem, newLogger())

	var result *convert.ImportResult
	if exportFlags.format == "" {
		result, err = coord.ImportCollection(ctx, exportFlags.workspace, string(data))
	} else {
		source := convert.ParseFormat(exportFlags.format)
		if source == convert.FormatUnknown {
			return fmt.Errorf("unknown format %q", exportFlags.format)
		}
		result, err = coord.ImportCollectionAs(ctx, exportFlags.workspace, string(data), source)
	}
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning [%s] %s\n", w.Kind, warningLine(w))
	}
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error [%s] %s\n", e.Kind, errorLine(e))
	}
	if len(result.Collections) == 0 {
		return fmt.Errorf("nothing to export: source produced no collection")
	}

	exported, err := coord.ExportCollection(ctx, result.Collections[0].ID, target)
	if err != nil {
		return err
	}

	if exportFlags.output == "" {
		_, err = cmd.OutOrStdout().Write(exported.Data)
		return err
	}
	if err := os.WriteFile(exportFlags.output, exported.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportFlags.output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d requests to %s\n", exported.RequestCount, exportFlags.output)
	return nil
}
