// Command easel is a document inspector for the easel core: it loads a JSON
// document, resolves auto layout, and prints the absolute geometry tree.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/easelkit/easel"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

func execute() error {
	var (
		verbose    bool
		tuningPath string
	)

	root := &cobra.Command{
		Use:           "easel",
		Short:         "easel inspects vector design documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&tuningPath, "tuning", "", "path to a tuning TOML file")

	logger := func() *charmlog.Logger {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		return easel.NewLogger(os.Stderr, level)
	}

	layoutCmd := &cobra.Command{
		Use:   "layout <document.json>",
		Short: "resolve auto layout and print the geometry tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			tuning := easel.DefaultTuning()
			if tuningPath != "" {
				var err error
				if tuning, err = easel.LoadTuning(tuningPath); err != nil {
					return err
				}
				log.Debug("tuning loaded", "path", tuningPath)
			}
			store, err := easel.LoadDocument(args[0])
			if err != nil {
				return err
			}
			canvas := easel.NewCanvas(easel.NewSceneList(), easel.WithStore(store), easel.WithTuning(tuning))
			printTree(cmd.OutOrStdout(), canvas, store)
			return nil
		},
	}

	countCmd := &cobra.Command{
		Use:   "stat <document.json>",
		Short: "print node and object counts for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := easel.LoadDocument(args[0])
			if err != nil {
				return err
			}
			surface := easel.NewSceneList()
			easel.NewCanvas(surface, easel.WithStore(store))
			fmt.Fprintf(cmd.OutOrStdout(), "roots: %d\nobjects: %d\n",
				len(store.Roots()), len(surface.Objects()))
			return nil
		},
	}

	root.AddCommand(layoutCmd, countCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func printTree(w io.Writer, canvas *easel.Canvas, store *easel.DocumentStore) {
	info := canvas.Syncer().Info()
	var walk func(n *easel.Node, depth int)
	walk = func(n *easel.Node, depth int) {
		b, ok := info.Bounds(n.ID)
		indent := strings.Repeat("  ", depth)
		if ok {
			fmt.Fprintf(w, "%s%s %q x=%.1f y=%.1f w=%.1f h=%.1f\n",
				indent, n.Type, n.Name, b.X, b.Y, b.Width, b.Height)
		} else {
			fmt.Fprintf(w, "%s%s %q (unresolved)\n", indent, n.Type, n.Name)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range store.Roots() {
		walk(r, 0)
	}
}
