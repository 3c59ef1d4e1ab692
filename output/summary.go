package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/motionerr"
	"github.com/motiontree/motiontree/rle"
)

// writeDomainsInfo writes domains.info: a plain-text table, one line per
// effective node, listing its magnitude and its two domains' residue
// ranges.
func writeDomainsInfo(dir string, result cluster.Result) error {
	path := filepath.Join(dir, "domains.info")
	f, err := os.Create(path)
	if err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "creating domains.info", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "%-6s %-10s %-30s %-30s\n", "node", "magnitude", "large_domain", "small_domain")
	n := len(result.EffectiveNodes)
	for i, node := range result.EffectiveNodes {
		k := n - i
		fmt.Fprintf(f, "%-6d %-10.3f %-30s %-30s\n",
			k, node.Magnitude, formatRanges(node.LargeDomain), formatRanges(node.SmallDomain))
	}
	return nil
}

func formatRanges(residues []int) string {
	ranges := rle.Encode(residues)
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
