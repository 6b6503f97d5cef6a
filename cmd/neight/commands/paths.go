package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neight-app/neight/internal/config"
)

var pathsJSON bool

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show where settings live",
	Long: `Show every candidate location for the settings file and which one this
run would use. The report comes from the same resolution the editor
performs at startup, including the write probe of the program directory.`,
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Print the report as JSON")
}

func runPaths(cmd *cobra.Command, args []string) error {
	res := config.Resolve(config.DefaultCandidates())

	if pathsJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Neight Settings Locations:")
	fmt.Println()
	fmt.Printf("  Program dir: %s\n", config.ProgramDir())
	fmt.Printf("  Primary:     %s\n", res.Primary)
	fmt.Printf("  Fallback:    %s\n", res.Fallback)
	for _, legacy := range res.Legacy {
		fmt.Printf("  Legacy:      %s\n", legacy)
	}
	fmt.Println()
	fmt.Printf("  Active:      %s\n", res.Active)
	fmt.Printf("  Chosen by:   %s\n", res.Rule)

	return nil
}
