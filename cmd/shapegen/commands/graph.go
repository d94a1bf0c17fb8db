package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen"
	"github.com/xlab/treeprint"
)

// GraphCmd inspects the shape dependency graph
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the shape dependency graph",
	Long: `Print the dependency graph of a service model.

With --shape, prints the dependency tree of one shape. Dependencies on list
and map shapes are shown as their element shapes, the same way the
generator resolves them. A shape already expanded earlier in the tree is
marked with "(see above)"; a dependency back onto the current path is
marked with "(cycle)".

Without --shape, prints the emission order as a table: every shape with
its kind, whether it gets a class, and its direct dependencies.

Examples:
  shapegen graph                             # Full order table
  shapegen graph --shape CreateThingRequest  # One shape's dependency tree`,
	RunE: runGraph,
}

func init() {
	addGenerateFlags(GraphCmd, false)
	GraphCmd.Flags().String("shape", "", "Print the dependency tree of this shape")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	model, err := loadModel(cfg)
	if err != nil {
		return err
	}
	if err := model.Validate(); err != nil {
		return err
	}
	graph, err := typegen.BuildGraph(model)
	if err != nil {
		return err
	}

	if shape, _ := cmd.Flags().GetString("shape"); shape != "" {
		tree, err := dependencyTree(graph, shape)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tree.String())
		return nil
	}

	order, err := typegen.Orderer{AllowCycles: cfg.Generate.AllowCycles}.Order(graph)
	if err != nil {
		return err
	}
	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(orderRows(model, graph, order)).
		Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render order table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

// dependencyTree renders the dependencies of root recursively
func dependencyTree(graph *typegen.DependencyGraph, root string) (treeprint.Tree, error) {
	if !graph.Has(root) {
		return nil, errors.WithHint(
			errors.Newf("shape %q is not declared", root),
			"shape names are case-sensitive")
	}
	tree := treeprint.NewWithRoot(root)
	expanded := map[string]bool{root: true}
	addDependencies(tree, graph, root, map[string]bool{root: true}, expanded)
	return tree, nil
}

// addDependencies adds name's dependencies under branch. path holds the
// shapes from the root down to name; expanded holds every shape whose
// subtree is already printed.
func addDependencies(branch treeprint.Tree, graph *typegen.DependencyGraph, name string, path, expanded map[string]bool) {
	for _, dep := range graph.Dependencies(name) {
		switch {
		case path[dep]:
			branch.AddNode(dep + " (cycle)")
		case len(graph.Dependencies(dep)) == 0:
			branch.AddNode(dep)
		case expanded[dep]:
			branch.AddNode(dep + " (see above)")
		default:
			expanded[dep] = true
			path[dep] = true
			addDependencies(branch.AddBranch(dep), graph, dep, path, expanded)
			delete(path, dep)
		}
	}
}

// orderRows is the order table: header, then one row per shape in order
func orderRows(model *schema.Model, graph *typegen.DependencyGraph, order []string) [][]string {
	filter := typegen.NewShapeFilter(model.Operations())

	rows := [][]string{{"#", "Shape", "Kind", "Class", "Depends on"}}
	for i, name := range order {
		kind := "?"
		class := "no"
		if shape, ok := model.Shape(name); ok {
			kind = string(shape.Type)
			if shape.Type == schema.KindStructure && filter.IsEligible(name) {
				class = "yes"
			}
		}
		if !filter.IsEligible(name) {
			class = "no (operation I/O)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			name,
			kind,
			class,
			strings.Join(graph.Dependencies(name), ", "),
		})
	}
	return rows
}
