package store

import (
	"database/sql"
	"errors"

	"gonum.org/v1/gonum/mat"
)

// SaveDiffMatrix persists D0 (and, if already known, an RMSD) for a
// protein pair. When haveRMSD is false the RMSD is stored as NULL: the
// pair may be cached before RMSD is ever computed.
func (db *DB) SaveDiffMatrix(key PairKey, d0 *mat.Dense, rmsd float64, haveRMSD bool) error {
	blob, err := d0.MarshalBinary()
	if err != nil {
		return storeErr("marshal diff matrix", err)
	}

	var rmsdArg any
	if haveRMSD {
		rmsdArg = rmsd
	}

	_, err = db.conn.Exec(
		`INSERT INTO protein_pairs (p1, c1, p2, c2, rmsd, diff_matrix)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (p1, c1, p2, c2) DO UPDATE SET rmsd = excluded.rmsd, diff_matrix = excluded.diff_matrix`,
		key.P1, key.C1, key.P2, key.C2, rmsdArg, blob,
	)
	if err != nil {
		return storeErr("insert protein pair", err)
	}
	return nil
}

// LoadDiffMatrix returns the cached D0 for a pair, or (nil, nil, false,
// nil) if no row exists.
func (db *DB) LoadDiffMatrix(key PairKey) (d0 *mat.Dense, rmsd *float64, ok bool, err error) {
	var blob []byte
	var rmsdVal sql.NullFloat64

	row := db.conn.QueryRow(
		`SELECT rmsd, diff_matrix FROM protein_pairs WHERE p1 = ? AND c1 = ? AND p2 = ? AND c2 = ?`,
		key.P1, key.C1, key.P2, key.C2,
	)
	if scanErr := row.Scan(&rmsdVal, &blob); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, nil, false, nil
		}
		return nil, nil, false, storeErr("query protein pair", scanErr)
	}

	d := new(mat.Dense)
	if unmarshalErr := d.UnmarshalBinary(blob); unmarshalErr != nil {
		return nil, nil, false, storeErr("unmarshal diff matrix", unmarshalErr)
	}

	if rmsdVal.Valid {
		rmsd = &rmsdVal.Float64
	}
	return d, rmsd, true, nil
}
