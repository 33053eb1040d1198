package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
	"github.com/fiscaldoc/fiscaldoc/internal/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate fiscal document files",
	Long: `Validate one or more fiscal document files.

The document kind is detected from its shape: a correction_info key
marks a correction, an items key marks a receipt.

Checks performed:
  - Field formats (email, phone, INN, enum values)
  - Length and sum limits, collection capacities
  - Total consistency against item sums
  - Company mandatory fields

Examples:
  fiscaldoc validate receipt.json
  fiscaldoc validate *.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File   string   `json:"file"`
	Kind   string   `json:"kind"`
	Valid  bool     `json:"valid"`
	Total  string   `json:"total,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	results := make([]*ValidationResult, 0, len(args))
	allValid := true

	for _, file := range args {
		result := validateFile(file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID (%s)\n", r.File, r.Kind)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(filePath string) *ValidationResult {
	result := &ValidationResult{
		File:  filePath,
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	doc, kind, err := parser.Parse(data)
	result.Kind = string(kind)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if r, ok := doc.(*model.Receipt); ok {
		result.Total = r.Total().StringFixed(2)
	}

	// A parseable document can still be incomplete for serialization
	if _, err := doc.Serialize(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}
