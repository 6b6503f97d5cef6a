package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neight-app/neight/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit stored settings",
	Long: `Inspect and edit the stored settings document. Reads and writes go
through the same store the editor uses, so migration from legacy files
and the fallback location behave exactly as they do at startup.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the whole settings document",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one settings value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one settings value",
	Long: `Store one settings value. The value is kept as JSON when it parses as
JSON (numbers, booleans, objects) and as a plain string otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove one settings key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store := config.New()
	data, err := json.MarshalIndent(store.Load(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	store := config.New()
	value, ok := store.Load()[args[0]]
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store := config.New()
	doc := store.Load()
	doc[args[0]] = parseValue(args[1])
	store.Save(doc)

	fmt.Printf("Saved to %s\n", store.ActivePath())
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	store := config.New()
	doc := store.Load()
	if _, ok := doc[args[0]]; !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	delete(doc, args[0])
	store.Save(doc)

	fmt.Printf("Saved to %s\n", store.ActivePath())
	return nil
}

// parseValue interprets the argument as JSON when it parses, and as a
// plain string otherwise.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
