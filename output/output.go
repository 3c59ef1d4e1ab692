/*
Package output renders a completed clustering run into the artifact set
a motion tree invocation leaves on disk: the D0 heat map, a dendrogram of
the merge tree, one PyMOL selection script per effective node, a plain
text domain summary, and the raw D0 binary a later run can reload
without recomputing geom's distance matrices.

Directory layout follows the run's identity exactly the way a cache
key does: <output_root>/<p1>_<c1>_<p2>_<c2>/sp_<sigma>_node_<small>_clust_<clust>_mag_<mag>/.
*/
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/motionerr"
	"github.com/motiontree/motiontree/store"
	"github.com/motiontree/motiontree/structfile"
)

// RunDir computes the output directory for a run, relative to root.
func RunDir(root string, key store.RunKey) string {
	pairDir := fmt.Sprintf("%s_%s_%s_%s", key.P1, key.C1, key.P2, key.C2)
	paramDir := fmt.Sprintf("sp_%g_node_%d_clust_%d_mag_%d", key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude)
	return filepath.Join(root, pairDir, paramDir)
}

// WriteArtifacts writes every artifact for a completed run under
// RunDir(root, key). chains supplies the chain IDs and residue counts the
// PyMOL scripts reference; domain ranges everywhere are residue indices.
//
// The combined two-model coordinate file a full motion tree tool would
// also emit is deliberately not produced here: this pipeline never
// computes a superposed coordinate frame between the two conformations,
// so there is nothing correct to put in it.
func WriteArtifacts(root string, key store.RunKey, d0 *mat.Dense, result cluster.Result, chains [2]structfile.Chain) error {
	dir := RunDir(root, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "creating output directory", err)
	}

	if err := writeDiffMatrixBinary(dir, d0); err != nil {
		return err
	}
	if err := writeHeatmap(dir, d0); err != nil {
		return err
	}
	if err := writeDendrogram(dir, result, key.Magnitude); err != nil {
		return err
	}
	if err := writePymolScripts(dir, result, chains); err != nil {
		return err
	}
	if err := writeDomainsInfo(dir, result); err != nil {
		return err
	}
	return nil
}

func writeDiffMatrixBinary(dir string, d0 *mat.Dense) error {
	blob, err := d0.MarshalBinary()
	if err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "marshal diff_dist_arr.bin", err)
	}
	path := filepath.Join(dir, "diff_dist_arr.bin")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "writing diff_dist_arr.bin", err)
	}
	return nil
}
