package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"

	"github.com/motiontree/motiontree/cluster"
)

// saveMotionTree persists a run's linkage matrix plus its ancillary
// metrics within tx. elapsed is in milliseconds.
func saveMotionTree(tx *sql.Tx, key RunKey, linkage []cluster.LinkageRow, seqIdentity float64, elapsedMs int64) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(linkage); err != nil {
		return storeErr("marshal linkage", err)
	}

	_, err := tx.Exec(
		`INSERT INTO motion_trees
		 (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude, linkage, seq_identity, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude)
		 DO UPDATE SET linkage = excluded.linkage, seq_identity = excluded.seq_identity, elapsed_ms = excluded.elapsed_ms`,
		key.P1, key.C1, key.P2, key.C2, key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude,
		buf.Bytes(), seqIdentity, elapsedMs,
	)
	if err != nil {
		return storeErr("insert motion tree", err)
	}
	return nil
}

// LoadMotionTree returns the cached linkage matrix for a run, or ok=false
// if nothing is cached.
func (db *DB) LoadMotionTree(key RunKey) (linkage []cluster.LinkageRow, seqIdentity float64, elapsedMs int64, ok bool, err error) {
	var blob []byte
	var seqIdentityVal sql.NullFloat64
	var elapsedVal sql.NullInt64

	row := db.conn.QueryRow(
		`SELECT linkage, seq_identity, elapsed_ms FROM motion_trees
		 WHERE p1 = ? AND c1 = ? AND p2 = ? AND c2 = ? AND sigma = ? AND small_node = ? AND clust_size = ? AND magnitude = ?`,
		key.P1, key.C1, key.P2, key.C2, key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude,
	)
	if scanErr := row.Scan(&blob, &seqIdentityVal, &elapsedVal); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, 0, 0, false, nil
		}
		return nil, 0, 0, false, storeErr("query motion tree", scanErr)
	}

	if decodeErr := gob.NewDecoder(bytes.NewReader(blob)).Decode(&linkage); decodeErr != nil {
		return nil, 0, 0, false, storeErr("unmarshal linkage", decodeErr)
	}
	return linkage, seqIdentityVal.Float64, elapsedVal.Int64, true, nil
}
