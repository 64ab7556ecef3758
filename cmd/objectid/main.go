package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/CrimsonAS/qobjectid/manifest"
	"github.com/CrimsonAS/qobjectid/objectid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	manifestFile string
	verbose      bool

	logger = zap.NewNop()
)

var errNull = errors.New("object is null")

var rootCmd = &cobra.Command{
	Use:   "objectid",
	Short: "Inspect trees of owned objects described by a manifest",
	Long: `objectid builds the tree of owned objects described by a YAML manifest
and resolves ids and paths in it, creating lazy objects on demand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		objectid.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve PATH...",
	Short: "Resolve paths and print their absolute path and hash code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

var treeCmd = &cobra.Command{
	Use:   "tree [PATH]",
	Short: "Print the tree under PATH as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

var lsCmd = &cobra.Command{
	Use:   "ls [PATH]",
	Short: "List the ids of the objects owned by PATH",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestFile, "file", "f", "", "manifest file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log registry activity")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(resolveCmd, treeCmd, lsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadTree() (*manifest.Element, error) {
	m, err := manifest.LoadFile(manifestFile)
	if err != nil {
		return nil, err
	}
	root, err := manifest.Build(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestFile, err)
	}
	logger.Debug("manifest loaded", zap.String("file", manifestFile), zap.Int("children", root.Len()))
	return root, nil
}

// lookup resolves path, which may be empty, to an existing object.
func lookup(root *manifest.Element, args []string) (objectid.Object, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	obj, ok := root.Resolve(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, objectid.ErrNotFound)
	} else if obj == nil {
		return nil, fmt.Errorf("%s: %w", path, errNull)
	}
	return obj, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	root, err := loadTree()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	undefined := 0
	for _, path := range args {
		obj, ok := root.Resolve(path)
		switch {
		case !ok:
			undefined++
			fmt.Fprintf(out, "%s\tundefined\n", path)
		case obj == nil:
			fmt.Fprintf(out, "%s\tnull\n", path)
		default:
			fmt.Fprintf(out, "%s\t%s\t%s\n", path, objectid.AbsolutePath(obj), obj.ObjectNode().Hash())
		}
	}

	if undefined > 0 {
		return fmt.Errorf("%d of %d paths: %w", undefined, len(args), objectid.ErrNotFound)
	}
	return nil
}

func runTree(cmd *cobra.Command, args []string) error {
	root, err := loadTree()
	if err != nil {
		return err
	}
	obj, err := lookup(root, args)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(obj.ObjectNode(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}

func runLs(cmd *cobra.Command, args []string) error {
	root, err := loadTree()
	if err != nil {
		return err
	}
	obj, err := lookup(root, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, child := range obj.ObjectNode().Children() {
		fmt.Fprintln(out, child.ObjectNode().ID())
	}
	return nil
}
