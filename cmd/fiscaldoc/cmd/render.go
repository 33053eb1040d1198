package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiscaldoc/fiscaldoc/internal/parser"
)

var (
	renderOutput string
	renderIndent bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document in canonical form",
	Long: `Parse a fiscal document and print its canonical serialization.

Rendering normalizes the document: fields appear in registration order,
sums carry two decimal places and quantities three, the total is
recomputed from the items, and blank optional fields are dropped.

Examples:
  fiscaldoc render receipt.json
  fiscaldoc render receipt.json --indent -o canonical.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write output to file instead of stdout")
	renderCmd.Flags().BoolVar(&renderIndent, "indent", false, "Indent the output")
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, kind, err := parser.Parse(data)
	if err != nil {
		return err
	}
	printVerbose("detected %s\n", kind)

	out, err := doc.Serialize()
	if err != nil {
		return err
	}

	if renderIndent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			return err
		}
		out = buf.Bytes()
	}

	if renderOutput != "" {
		return os.WriteFile(renderOutput, out, 0o644)
	}
	fmt.Println(string(out))
	return nil
}
