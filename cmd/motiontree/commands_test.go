package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

const atomSiteHeader = "data_TEST\nloop_\n" +
	"_atom_site.group_PDB\n_atom_site.label_atom_id\n_atom_site.label_comp_id\n" +
	"_atom_site.auth_asym_id\n_atom_site.auth_seq_id\n" +
	"_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n"

func straightChainCIF(n int) string {
	body := ""
	for i := 0; i < n; i++ {
		x := strconv.Itoa(i * 6)
		body += "ATOM CA ALA A " + strconv.Itoa(i+1) + " " + x + ".000 0.000 0.000\n"
	}
	return atomSiteHeader + body
}

func writeTestFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunCommandProducesArtifacts(t *testing.T) {
	dir := t.TempDir()
	path1 := writeTestFixture(t, dir, "a.cif", straightChainCIF(6))
	path2 := writeTestFixture(t, dir, "b.cif", straightChainCIF(6))
	configPath := writeTestFixture(t, dir, "config.yaml",
		"paths:\n  output_root: "+filepath.Join(dir, "out")+"\n"+
			"parameters:\n  spatial_proximity: 7\n  small_node: 0\n  clust_size: 10\n  magnitude: 1\n  dissimilarity_k: 5\n")

	app := application()
	var out bytes.Buffer
	app.Writer = &out

	args := []string{"motiontree", "run",
		"--config", configPath,
		"--id1", "CONFA", "--path1", path1, "--chain1", "A",
		"--id2", "CONFB", "--path2", path2, "--chain2", "A",
	}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected a summary line on stdout, got none")
	}

	artifact := filepath.Join(dir, "out", "CONFA_A_CONFB_A", "sp_7_node_0_clust_10_mag_1", "domains.info")
	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("domains.info not written: %v", err)
	}
}

func TestValidateConfigCommandReportsValid(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestFixture(t, dir, "config.yaml",
		"parameters:\n  spatial_proximity: 7\n  small_node: 0\n  clust_size: 10\n  magnitude: 1\n  dissimilarity_k: 5\n")

	app := application()
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"motiontree", "validate-config", "--config", configPath}); err != nil {
		t.Fatalf("validate-config: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected a validity report on stdout, got none")
	}
}

func TestValidateConfigCommandReportsInvalid(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestFixture(t, dir, "config.yaml",
		"parameters:\n  clust_size: 5\n  magnitude: 0\n")

	app := application()
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"motiontree", "validate-config", "--config", configPath}); err == nil {
		t.Fatal("expected an error for out-of-range parameters, got nil")
	}
	if out.Len() == 0 {
		t.Error("expected a validity report on stdout even on failure, got none")
	}
}

func TestRunCommandFallsBackToConfigPaths(t *testing.T) {
	dir := t.TempDir()
	writeTestFixture(t, dir, "1abc.cif", straightChainCIF(6))
	writeTestFixture(t, dir, "1abd.cif", straightChainCIF(6))
	configPath := writeTestFixture(t, dir, "config.yaml",
		"paths:\n"+
			"  input_dir: "+dir+"\n"+
			"  output_root: "+filepath.Join(dir, "out")+"\n"+
			"  protein1: 1abc\n  chain1: A\n  protein2: 1abd\n  chain2: A\n"+
			"parameters:\n  spatial_proximity: 7\n  small_node: 0\n  clust_size: 10\n  magnitude: 1\n  dissimilarity_k: 5\n")

	app := application()
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"motiontree", "run", "--config", configPath}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	artifact := filepath.Join(dir, "out", "1abc_A_1abd_A", "sp_7_node_0_clust_10_mag_1", "domains.info")
	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("domains.info not written: %v", err)
	}
}

func TestRunCommandRequiresFlags(t *testing.T) {
	app := application()
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{"motiontree", "run"})
	if err == nil {
		t.Fatal("expected an error for missing required flags, got nil")
	}
}
