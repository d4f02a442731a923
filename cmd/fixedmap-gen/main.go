// fixedmap-gen generates map and set bindings for key types marked with a
// //fixedmap:key directive. Typical use, via go:generate:
//
//	//go:generate fixedmap-gen --type Key .
//
// For unit enumerations it emits the ordinal methods plus array-backed map
// and set constructors (bit-packed when the directive carries the bitset
// attribute); for sealed sums it emits the composite storages dispatching to
// the per-variant child storages.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/homier/fixedmap/internal/gen"
)

var (
	flagTypes  []string
	flagOutput string

	rootCmd = &cobra.Command{
		Use:   "fixedmap-gen [package-dir]",
		Short: "generate fixedmap key bindings for marked types",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
)

func init() {
	rootCmd.Flags().StringSliceVar(&flagTypes, "type", nil, "restrict generation to the named key types")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default <dir>/<package>_fixedmap.go)")
}

func run(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	pkg, err := gen.Parse(dir, flagTypes)
	if err != nil {
		return err
	}
	if len(pkg.Keys) == 0 {
		return fmt.Errorf("no types marked //fixedmap:key in %s", dir)
	}

	src, err := gen.Generate(pkg)
	if err != nil {
		return err
	}

	out := flagOutput
	if out == "" {
		out = filepath.Join(dir, pkg.Name+"_fixedmap.go")
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
