package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xbklairith/postgirl-sub001/pkg/convert"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect the format of a collection file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	format := convert.Classify(string(data))
	fmt.Fprintln(cmd.OutOrStdout(), format)
	return nil
}
