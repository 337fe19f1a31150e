package vessel

import (
	"bufio"
	"fmt"
	"io"
)

// FprintDOT renders the network as a Graphviz digraph: one red filled-box
// node "env" for the environment, one cyan filled-box node "s<token>" per
// species, and one yellow filled-oval node "r<index>" per rule, with edges
// from every reactant into its rule and from every rule into its
// products. A side with no tokens is drawn to/from the env node.
func (v *Vessel) FprintDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph {")
	fmt.Fprintln(bw, `  env [label="Environment", shape=box, style=filled, fillcolor=red];`)

	for _, p := range v.species.Slice() {
		fmt.Fprintf(bw, "  s%d [label=%q, shape=box, style=filled, fillcolor=cyan];\n", p.Key, p.Value)
	}

	for i, rule := range v.rules {
		fmt.Fprintf(bw, "  r%d [label=%q, shape=ellipse, style=filled, fillcolor=yellow];\n", i, fmt.Sprintf("%v", rule.Rate))

		reactants := rule.Reactants.Tokens()
		if len(reactants) == 0 {
			fmt.Fprintf(bw, "  env -> r%d;\n", i)
		}
		for _, t := range reactants {
			fmt.Fprintf(bw, "  s%d -> r%d;\n", t, i)
		}

		products := rule.Products.Tokens()
		if len(products) == 0 {
			fmt.Fprintf(bw, "  r%d -> env;\n", i)
		}
		for _, t := range products {
			fmt.Fprintf(bw, "  r%d -> s%d;\n", i, t)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
