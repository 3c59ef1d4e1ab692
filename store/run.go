package store

import "github.com/motiontree/motiontree/cluster"

// SaveRun persists a complete clustering run — the linkage matrix and its
// effective nodes — atomically: either both tables get the new rows or
// neither does.
func (db *DB) SaveRun(key RunKey, result cluster.Result, seqIdentity float64, elapsedMs int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return storeErr("begin run save", err)
	}

	if err := saveMotionTree(tx, key, result.Linkage, seqIdentity, elapsedMs); err != nil {
		tx.Rollback()
		return err
	}
	if err := saveNodes(tx, key, result.EffectiveNodes); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit run save", err)
	}
	return nil
}

// LoadRun returns the cached Result for a run, or ok=false if no motion
// tree row exists for key.
func (db *DB) LoadRun(key RunKey) (result cluster.Result, seqIdentity float64, elapsedMs int64, ok bool, err error) {
	linkage, seqIdentity, elapsedMs, ok, err := db.LoadMotionTree(key)
	if err != nil || !ok {
		return cluster.Result{}, 0, 0, ok, err
	}

	nodes, err := db.LoadNodes(key)
	if err != nil {
		return cluster.Result{}, 0, 0, false, err
	}

	return cluster.Result{Linkage: linkage, EffectiveNodes: nodes}, seqIdentity, elapsedMs, true, nil
}
