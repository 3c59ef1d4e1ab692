package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/motiontree/motiontree/config"
	"github.com/motiontree/motiontree/motiontree"
	"github.com/motiontree/motiontree/store"
)

// application builds the motiontree CLI surface: a "run" command doing the
// whole pipeline plus a "validate-config" command for checking a config
// file without running anything, the same two-command shape as the
// teacher's cmd/poly.
func application() *cli.App {
	return &cli.App{
		Name:  "motiontree",
		Usage: "compute a Motion Tree between two protein conformations",
		Commands: []*cli.Command{
			runCommand(),
			validateConfigCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "align two structures, cluster their distance-difference matrix, and write artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a config YAML file; defaults to the XDG search path"},
			&cli.StringFlag{Name: "id1", Usage: "identifier for the first conformation (e.g. a PDB ID); defaults to the config file's paths.protein1"},
			&cli.StringFlag{Name: "path1", Usage: "structure file for the first conformation; defaults to paths.input_dir/<id1>.cif"},
			&cli.StringFlag{Name: "chain1", Usage: "chain identifier in the first structure; defaults to paths.chain1"},
			&cli.StringFlag{Name: "id2", Usage: "identifier for the second conformation; defaults to paths.protein2"},
			&cli.StringFlag{Name: "path2", Usage: "structure file for the second conformation; defaults to paths.input_dir/<id2>.cif"},
			&cli.StringFlag{Name: "chain2", Usage: "chain identifier in the second structure; defaults to paths.chain2"},
			&cli.StringFlag{Name: "url1", Usage: "remote URL to fetch path1 from if it's missing locally"},
			&cli.StringFlag{Name: "url2", Usage: "remote URL to fetch path2 from if it's missing locally"},
		},
		Action: func(c *cli.Context) error {
			cfgPath, err := config.ResolveConfigPath(c.String("config"))
			if err != nil {
				return err
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			dbPath := cfg.Paths.OutputRoot + "/motiontree.db"
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			id1 := firstNonEmpty(c.String("id1"), cfg.Paths.Protein1)
			chain1 := firstNonEmpty(c.String("chain1"), cfg.Paths.Chain1)
			path1 := firstNonEmpty(c.String("path1"), pathForID(cfg, id1))
			id2 := firstNonEmpty(c.String("id2"), cfg.Paths.Protein2)
			chain2 := firstNonEmpty(c.String("chain2"), cfg.Paths.Chain2)
			path2 := firstNonEmpty(c.String("path2"), pathForID(cfg, id2))

			if id1 == "" || chain1 == "" || id2 == "" || chain2 == "" {
				return fmt.Errorf("id1/chain1/id2/chain2 must be given as flags or set in the config file's paths section")
			}

			result, err := motiontree.Run(context.Background(), cfg, db, motiontree.Input{
				ID1: id1, Path1: path1, Chain1: chain1,
				ID2: id2, Path2: path2, Chain2: chain2,
				RemoteURL1: c.String("url1"), RemoteURL2: c.String("url2"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%d merges, %d effective node(s)\n", len(result.Linkage), len(result.EffectiveNodes))
			return nil
		},
	}
}

// validateConfigCommand loads a config file, runs its bounds validation,
// and reports the result to the app's writer without running a pipeline.
func validateConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate-config",
		Usage: "load a config file and report whether its parameters are valid",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a config YAML file; defaults to the XDG search path"},
		},
		Action: func(c *cli.Context) error {
			cfgPath, err := config.ResolveConfigPath(c.String("config"))
			if err != nil {
				return err
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(c.App.Writer, "%s: invalid: %v\n", cfgPath, err)
				return err
			}

			fmt.Fprintf(c.App.Writer, "%s: valid\n", cfgPath)
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pathForID(cfg *config.Config, id string) string {
	if id == "" {
		return ""
	}
	return cfg.Paths.StructurePath(id)
}
