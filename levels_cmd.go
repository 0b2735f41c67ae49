package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows the levels that will be played, in order. Level files under
./levels replace the built-in set.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	defs, err := levels.Load()
	if err != nil {
		return err
	}
	catalog, err := obj.NewCatalog(defs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Levels:")
	fmt.Fprintln(out)

	names := make(map[int]string, catalog.Len())
	maxNameLen := 4 // "Name" header
	for _, id := range catalog.IDs() {
		def, _ := catalog.Get(id)
		name := def.Name
		if def.Boss {
			name += " (boss)"
		}
		names[id] = name
		maxNameLen = max(maxNameLen, len(name))
	}

	fmt.Fprintf(out, "  %-3s  %-*s  %-10s  %-9s  %-7s  %s\n", "ID", maxNameLen, "Name", "Background", "Platforms", "Enemies", "Items")
	fmt.Fprintf(out, "  %-3s  %-*s  %-10s  %-9s  %-7s  %s\n", "--", maxNameLen, "----", "----------", "---------", "-------", "-----")
	for _, id := range catalog.IDs() {
		def, _ := catalog.Get(id)
		fmt.Fprintf(out, "  %-3d  %-*s  %-10s  %-9d  %-7d  %d\n",
			def.ID, maxNameLen, names[id], def.Background, len(def.Platforms), len(def.Enemies), len(def.Collectibles))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'platformer play --level <id>' to start from a level.")
	return nil
}
