package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/motionerr"
	"github.com/motiontree/motiontree/rle"
	"github.com/motiontree/motiontree/structfile"
)

// writePymolScripts writes one node_<k>.pml per effective node, coarsest
// first (reverse merge order: the last merge recorded is the first,
// outermost hinge). Each script selects the node's large and small
// domains by residue range and colors them apart, after a
// reinitialize/bg_color preamble; no structure is loaded.
func writePymolScripts(dir string, result cluster.Result, chains [2]structfile.Chain) error {
	n := len(result.EffectiveNodes)
	for i, node := range result.EffectiveNodes {
		k := n - i // coarsest (last) node numbered 1
		path := filepath.Join(dir, fmt.Sprintf("node_%d.pml", k))
		if err := writePymolScript(path, node, chains); err != nil {
			return err
		}
	}
	return nil
}

func writePymolScript(path string, node cluster.EffectiveNode, chains [2]structfile.Chain) error {
	f, err := os.Create(path)
	if err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "creating pymol script", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "reinitialize")
	fmt.Fprintln(f, "bg_color white")
	for _, chain := range chains {
		if chain.ID == "" {
			continue
		}
		fmt.Fprintf(f, "# chain %s: %d residues\n", chain.ID, len(chain.Residues))
	}

	writeSelection(f, "large_domain", chains[0].ID, node.LargeDomain)
	writeSelection(f, "small_domain", chains[0].ID, node.SmallDomain)
	fmt.Fprintln(f, "color skyblue, large_domain")
	fmt.Fprintln(f, "color orange, small_domain")
	fmt.Fprintf(f, "print \"node magnitude: %.3f\"\n", node.Magnitude)

	return nil
}

func writeSelection(f *os.File, name, chainID string, residues []int) {
	ranges := rle.Encode(residues)
	selectors := make([]string, len(ranges))
	for i, r := range ranges {
		selectors[i] = fmt.Sprintf("resi %s", r.String())
	}
	fmt.Fprintf(f, "select %s, chain %s and (", name, chainID)
	for i, s := range selectors {
		if i > 0 {
			fmt.Fprint(f, " or ")
		}
		fmt.Fprint(f, s)
	}
	fmt.Fprintln(f, ")")
}
