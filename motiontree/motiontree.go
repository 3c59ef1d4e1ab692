/*
Package motiontree wires the pipeline's components end to end: load two
conformations of a chain, align their residues, build each one's
intra-distance matrix, difference them into D0, cluster D0 into a Motion
Tree, and write the result to both the persistent store and the output
directory.

Run is single-threaded by design: one Engine owns its cluster table and
working matrix for the lifetime of one call, and nothing in this package
spawns a goroutine. A caller wanting to process many pairs runs Run
repeatedly, optionally from multiple goroutines of its own, each against
its own *store.DB handle.
*/
package motiontree

import (
	"context"
	"time"

	"github.com/motiontree/motiontree/align"
	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/config"
	"github.com/motiontree/motiontree/diffmatrix"
	"github.com/motiontree/motiontree/geom"
	"github.com/motiontree/motiontree/io/pdbx/cif"
	"github.com/motiontree/motiontree/motionerr"
	"github.com/motiontree/motiontree/output"
	"github.com/motiontree/motiontree/store"
	"github.com/motiontree/motiontree/structfile"
)

// Input names the two conformations a Run compares. ID1/ID2 are the
// protein identifiers used as cache and output-directory keys (e.g. a
// PDB ID); Path1/Path2 are the local structure files those identifiers
// resolve to, which need not share their spelling with ID1/ID2.
type Input struct {
	ID1, Path1, Chain1 string
	ID2, Path2, Chain2 string
	// RemoteURL1 and RemoteURL2, if set, are fetched when Path1/Path2
	// don't already exist locally (structfile.FetchLazy).
	RemoteURL1, RemoteURL2 string
}

// Run executes the full pipeline for one protein pair and parameter set,
// writing artifacts to cfg.Paths.OutputRoot and caching intermediate and
// final results in db.
//
// Run does not read from db: every call recomputes the pipeline, then
// saves D0 and the run. A motionerr.StoreFailure from either write is
// ignored, and the computed Result is still returned.
func Run(ctx context.Context, cfg *config.Config, db *store.DB, in Input) (cluster.Result, error) {
	if err := cfg.Validate(); err != nil {
		return cluster.Result{}, err
	}
	params := cfg.Parameters.ToClusterParams()

	chain1, err := loadChain(ctx, in.Path1, in.RemoteURL1, in.Chain1)
	if err != nil {
		return cluster.Result{}, err
	}
	chain2, err := loadChain(ctx, in.Path2, in.RemoteURL2, in.Chain2)
	if err != nil {
		return cluster.Result{}, err
	}

	mode := align.Standard
	if cfg.Alignment.Mode == "permissive" {
		mode = align.Permissive
	}
	alignment, err := align.AlignResidues(toSequenceResidues(chain1), toSequenceResidues(chain2), mode)
	if err != nil {
		return cluster.Result{}, err
	}

	coords1, err := geom.BuildCoordinates(selectAligned(chain1, alignment.RI1))
	if err != nil {
		return cluster.Result{}, err
	}
	coords2, err := geom.BuildCoordinates(selectAligned(chain2, alignment.RI2))
	if err != nil {
		return cluster.Result{}, err
	}

	d1 := geom.IntraDistanceMatrix(coords1)
	d2 := geom.IntraDistanceMatrix(coords2)

	dm, err := diffmatrix.Build(d1, d2)
	if err != nil {
		return cluster.Result{}, err
	}

	engine, err := cluster.New(dm, params)
	if err != nil {
		return cluster.Result{}, err
	}

	start := time.Now()
	result, runErr := engine.Run(ctx)
	elapsed := time.Since(start).Milliseconds()
	// runErr may be motionerr.NoCandidatePair with a non-empty partial
	// Result; the artifacts below are still worth writing.

	pairKey := store.PairKey{P1: in.ID1, C1: in.Chain1, P2: in.ID2, C2: in.Chain2}
	_ = db.SaveDiffMatrix(pairKey, dm.Persisted, 0, false)

	runKey := store.RunKey{
		PairKey:   pairKey,
		Sigma:     params.SpatialProximity,
		SmallNode: params.SmallNode,
		ClustSize: params.ClustSize,
		Magnitude: params.Magnitude,
	}
	_ = db.SaveRun(runKey, result, alignment.Identity, elapsed)

	if writeErr := output.WriteArtifacts(cfg.Paths.OutputRoot, runKey, dm.Persisted, result, [2]structfile.Chain{chain1, chain2}); writeErr != nil {
		if runErr != nil {
			return result, runErr
		}
		return result, writeErr
	}

	return result, runErr
}

func loadChain(ctx context.Context, path, remoteURL, chainID string) (structfile.Chain, error) {
	r, err := structfile.FetchLazy(ctx, path, remoteURL)
	if err != nil {
		return structfile.Chain{}, err
	}
	defer r.Close()

	parsed, err := cif.NewParser(r).Parse()
	if err != nil {
		return structfile.Chain{}, motionerr.Wrap(motionerr.IOFailure, "parsing structure file", err)
	}

	return structfile.ExtractChain(parsed, chainID)
}

func toSequenceResidues(chain structfile.Chain) []align.SequenceResidue {
	out := make([]align.SequenceResidue, len(chain.Residues))
	for i, r := range chain.Residues {
		out[i] = align.SequenceResidue{ChainPosition: r.ChainPosition, OneLetter: r.OneLetter}
	}
	return out
}

// selectAligned picks out, in alignment order, the residues a residue-index
// list names, so geom only ever sees the residues both conformations have
// in common.
func selectAligned(chain structfile.Chain, ri []int) []geom.ResidueCoord {
	byPosition := make(map[int]geom.ResidueCoord, len(chain.Residues))
	for _, r := range chain.Residues {
		byPosition[r.ChainPosition] = geom.ResidueCoord{ChainPosition: r.ChainPosition, CA: r.CA, HasCA: r.HasCA}
	}
	out := make([]geom.ResidueCoord, len(ri))
	for i, pos := range ri {
		out[i] = byPosition[pos]
	}
	return out
}
