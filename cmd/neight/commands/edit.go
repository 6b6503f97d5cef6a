package commands

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neight-app/neight/internal/app"
	"github.com/neight-app/neight/internal/config"
)

var editNoWatch bool

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Start a headless editing session",
	Long: `Start an editing session without the GUI: open the given file (or the
last opened one), append lines read from stdin, and let autosave and
the settings subsystem do their usual work. Useful for piping text into
a note and for exercising the persistence layer.

The session ends on end-of-input or interrupt; the buffer and the
session state are persisted on the way out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVar(&editNoWatch, "no-watch", false, "Do not pick up external settings edits")
}

func runEdit(cmd *cobra.Command, args []string) error {
	a := app.New(config.New())
	defer a.Shutdown()

	if !editNoWatch {
		if err := a.WatchSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "settings watcher unavailable: %v\n", err)
		}
	}

	switch {
	case len(args) == 1:
		if err := a.OpenOrCreate(args[0]); err != nil {
			return err
		}
		fmt.Printf("Editing %s\n", a.Document().Path())
	default:
		if path, ok := a.OpenLastFile(); ok {
			fmt.Printf("Reopened %s\n", path)
		} else {
			fmt.Println("New buffer; pass a file name to save what you type")
		}
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-quit:
			fmt.Println()
			return finishEdit(a)
		case line, ok := <-lines:
			if !ok {
				return finishEdit(a)
			}
			a.Document().AppendLine(line)
		}
	}
}

// finishEdit writes the buffer out if it has somewhere to go.
func finishEdit(a *app.App) error {
	doc := a.Document()
	if doc.Path() == "" || !doc.Modified() {
		return nil
	}
	if err := a.SaveDocument(); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", doc.Path())
	return nil
}
