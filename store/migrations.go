package store

import "database/sql"

// Migration is a single schema migration step, applied at most once.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations. Append new
// ones to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "protein pairs, motion trees, nodes",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS protein_pairs (
    p1 TEXT NOT NULL,
    c1 TEXT NOT NULL,
    p2 TEXT NOT NULL,
    c2 TEXT NOT NULL,
    rmsd REAL,
    diff_matrix BLOB NOT NULL,
    PRIMARY KEY (p1, c1, p2, c2)
);

CREATE TABLE IF NOT EXISTS motion_trees (
    p1 TEXT NOT NULL,
    c1 TEXT NOT NULL,
    p2 TEXT NOT NULL,
    c2 TEXT NOT NULL,
    sigma REAL NOT NULL,
    small_node INTEGER NOT NULL,
    clust_size INTEGER NOT NULL,
    magnitude INTEGER NOT NULL,
    linkage BLOB NOT NULL,
    seq_identity REAL,
    elapsed_ms INTEGER,
    PRIMARY KEY (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude),
    FOREIGN KEY (p1, c1, p2, c2) REFERENCES protein_pairs(p1, c1, p2, c2)
);

CREATE TABLE IF NOT EXISTS nodes (
    p1 TEXT NOT NULL,
    c1 TEXT NOT NULL,
    p2 TEXT NOT NULL,
    c2 TEXT NOT NULL,
    sigma REAL NOT NULL,
    small_node INTEGER NOT NULL,
    clust_size INTEGER NOT NULL,
    magnitude INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    node_magnitude REAL NOT NULL,
    large_domain BLOB NOT NULL,
    small_domain BLOB NOT NULL,
    PRIMARY KEY (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude, seq),
    FOREIGN KEY (p1, c1, p2, c2, sigma, small_node, clust_size, magnitude)
        REFERENCES motion_trees(p1, c1, p2, c2, sigma, small_node, clust_size, magnitude)
);

CREATE INDEX IF NOT EXISTS idx_motion_trees_pair ON motion_trees(p1, c1, p2, c2);
CREATE INDEX IF NOT EXISTS idx_nodes_tree ON nodes(p1, c1, p2, c2, sigma, small_node, clust_size, magnitude);
`)
			return err
		},
	},
}

func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
