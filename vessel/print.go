package vessel

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gillespie/reaction"
)

// Fprint renders the network in the textual form:
//
//	<reactants> --<rate>> <products>
//
// one line per rule in insertion order, species within a side joined by
// " + " in ascending-token order, or the literal "Environment" if a side
// is empty. UTF-8, LF line endings, rendered straight to an io.Writer
// rather than built up as a string first.
func (v *Vessel) Fprint(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rule := range v.rules {
		reactants, err := v.sideText(rule.Reactants)
		if err != nil {
			return err
		}
		products, err := v.sideText(rule.Products)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s --%v> %s\n", reactants, rule.Rate, products); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (v *Vessel) sideText(side reaction.AgentSet) (string, error) {
	if side.IsEmpty() {
		return "Environment", nil
	}
	names := make([]string, 0, side.Len())
	for _, t := range side.Tokens() {
		name, err := v.species.Lookup(t)
		if err != nil {
			return "", fmt.Errorf("vessel: printing side: %w", err)
		}
		names = append(names, name)
	}
	return strings.Join(names, " + "), nil
}
