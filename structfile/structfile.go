/*
Package structfile extracts a single polymer chain's residues, with their
alpha-carbon coordinates where present, from a macromolecular CIF file: the minimal slice of mmCIF
ingestion the motion tree pipeline needs from component inputs otherwise
treated as a black box (structural file parsing and remote retrieval).

It adapts io/pdbx/cif's generic CIF parser, reading only the atom_site
loop and discarding everything else: symmetry, entity metadata,
experimental headers, and every other category a full mmCIF reader would
expose.
*/
package structfile

import (
	"fmt"
	"sort"

	"github.com/motiontree/motiontree/geom"
	"github.com/motiontree/motiontree/io/pdbx/cif"
	"github.com/motiontree/motiontree/motionerr"
)

// Residue is one atom_site-derived residue: its chain position, residue
// name, and alpha-carbon coordinate if one was present.
type Residue struct {
	ChainPosition int
	Name3         string
	OneLetter     byte
	CA            geom.Coord
	HasCA         bool
}

// Chain is an ordered (by chain position) list of residues belonging to
// one author-assigned chain identifier.
type Chain struct {
	ID       string
	Residues []Residue
}

// ResidueCoords projects a Chain into the geom package's input shape.
func (c Chain) ResidueCoords() []geom.ResidueCoord {
	out := make([]geom.ResidueCoord, len(c.Residues))
	for i, r := range c.Residues {
		out[i] = geom.ResidueCoord{ChainPosition: r.ChainPosition, CA: r.CA, HasCA: r.HasCA}
	}
	return out
}

const (
	tagGroupPDB    = "_atom_site.group_PDB"
	tagAtomID      = "_atom_site.label_atom_id"
	tagCompID      = "_atom_site.label_comp_id"
	tagAuthAsymID  = "_atom_site.auth_asym_id"
	tagLabelAsymID = "_atom_site.label_asym_id"
	tagAuthSeqID   = "_atom_site.auth_seq_id"
	tagCartnX      = "_atom_site.Cartn_x"
	tagCartnY      = "_atom_site.Cartn_y"
	tagCartnZ      = "_atom_site.Cartn_z"
)

// ExtractChain selects one chain's residues out of an already-parsed CIF
// file's atom_site loop, keyed by author-assigned chain identifier. It
// fails with CHAIN_NOT_FOUND when no atom_site row carries that chain ID.
func ExtractChain(c cif.CIF, chainID string) (Chain, error) {
	for _, block := range c.DataBlocks {
		if _, ok := block.DataItems[tagAtomID]; !ok {
			continue
		}
		chain, err := extractFromAtomSite(block.DataItems, chainID)
		if err != nil {
			return Chain{}, err
		}
		if len(chain.Residues) > 0 {
			return chain, nil
		}
	}
	return Chain{}, motionerr.New(motionerr.ChainNotFound,
		fmt.Sprintf("chain %q not found in atom_site loop", chainID))
}

func extractFromAtomSite(items map[string]any, chainID string) (Chain, error) {
	asymTag := tagAuthAsymID
	if _, ok := items[asymTag]; !ok {
		asymTag = tagLabelAsymID
	}

	asym, aok := items[asymTag].([]any)
	seq, sok := items[tagAuthSeqID].([]any)
	atomName, tok := items[tagAtomID].([]any)
	compName, cok := items[tagCompID].([]any)
	x, xok := items[tagCartnX].([]any)
	y, yok := items[tagCartnY].([]any)
	z, zok := items[tagCartnZ].([]any)
	if !aok || !sok || !tok || !cok || !xok || !yok || !zok {
		return Chain{}, motionerr.New(motionerr.IOFailure,
			"atom_site loop is missing a required column")
	}

	byPosition := make(map[int]*Residue)
	var order []int
	for i := range asym {
		chain, ok := toString(asym[i])
		if !ok || chain != chainID {
			continue
		}
		pos, ok := toInt(seq[i])
		if !ok {
			continue
		}
		r, exists := byPosition[pos]
		if !exists {
			name3, _ := toString(compName[i])
			r = &Residue{ChainPosition: pos, Name3: name3, OneLetter: oneLetterFor(name3)}
			byPosition[pos] = r
			order = append(order, pos)
		}
		if name, ok := toString(atomName[i]); ok && name == "CA" && !r.HasCA {
			xv, _ := toFloat64(x[i])
			yv, _ := toFloat64(y[i])
			zv, _ := toFloat64(z[i])
			r.CA = geom.Coord{X: xv, Y: yv, Z: zv}
			r.HasCA = true
		}
	}

	sort.Ints(order)
	residues := make([]Residue, len(order))
	for i, pos := range order {
		residues[i] = *byPosition[pos]
	}
	return Chain{ID: chainID, Residues: residues}, nil
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

// aminoAcid3to1 maps the twenty standard residue names to their one-letter
// codes; anything else (modified residues, ligands, water) maps to 'X'.
var aminoAcid3to1 = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

func oneLetterFor(name3 string) byte {
	if c, ok := aminoAcid3to1[name3]; ok {
		return c
	}
	return 'X'
}
