package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/rle"
)

// saveNodes replaces the effective-node rows for a run within tx. Each
// node's domains are stored run-length encoded, the same Range
// representation the output formatter renders into domains.info, rather
// than spelling out every residue index.
func saveNodes(tx *sql.Tx, key RunKey, nodes []cluster.EffectiveNode) error {
	if _, err := tx.Exec(
		`DELETE FROM nodes WHERE p1 = ? AND c1 = ? AND p2 = ? AND c2 = ? AND sigma = ? AND small_node = ? AND clust_size = ? AND magnitude = ?`,
		key.P1, key.C1, key.P2, key.C2, key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude,
	); err != nil {
		return storeErr("clear prior nodes", err)
	}

	for seq, node := range nodes {
		large, err := encodeRanges(rle.Encode(node.LargeDomain))
		if err != nil {
			return err
		}
		small, err := encodeRanges(rle.Encode(node.SmallDomain))
		if err != nil {
			return err
		}

		if _, err := tx.Exec(
			`INSERT INTO nodes
			 (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude, seq, node_magnitude, large_domain, small_domain)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key.P1, key.C1, key.P2, key.C2, key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude,
			seq, node.Magnitude, large, small,
		); err != nil {
			return storeErr("insert node", err)
		}
	}
	return nil
}

// LoadNodes returns the effective nodes for a run in sequence order.
func (db *DB) LoadNodes(key RunKey) ([]cluster.EffectiveNode, error) {
	rows, err := db.conn.Query(
		`SELECT node_magnitude, large_domain, small_domain FROM nodes
		 WHERE p1 = ? AND c1 = ? AND p2 = ? AND c2 = ? AND sigma = ? AND small_node = ? AND clust_size = ? AND magnitude = ?
		 ORDER BY seq ASC`,
		key.P1, key.C1, key.P2, key.C2, key.Sigma, key.SmallNode, key.ClustSize, key.Magnitude,
	)
	if err != nil {
		return nil, storeErr("query nodes", err)
	}
	defer rows.Close()

	var out []cluster.EffectiveNode
	for rows.Next() {
		var magnitude float64
		var largeBlob, smallBlob []byte
		if err := rows.Scan(&magnitude, &largeBlob, &smallBlob); err != nil {
			return nil, storeErr("scan node", err)
		}
		large, err := decodeRanges(largeBlob)
		if err != nil {
			return nil, err
		}
		small, err := decodeRanges(smallBlob)
		if err != nil {
			return nil, err
		}
		out = append(out, cluster.EffectiveNode{
			Magnitude:   magnitude,
			LargeDomain: expandRanges(large),
			SmallDomain: expandRanges(small),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate nodes", err)
	}
	return out, nil
}

func encodeRanges(ranges []rle.Range) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ranges); err != nil {
		return nil, storeErr("marshal residue ranges", err)
	}
	return buf.Bytes(), nil
}

func decodeRanges(blob []byte) ([]rle.Range, error) {
	var ranges []rle.Range
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&ranges); err != nil {
		return nil, storeErr("unmarshal residue ranges", err)
	}
	return ranges, nil
}

func expandRanges(ranges []rle.Range) []int {
	var out []int
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			out = append(out, i)
		}
	}
	return out
}
