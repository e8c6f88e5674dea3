// Command gen-catalog writes the example machines into a Loam repository, so
// that "dfsm serve --store loam --dir <target>" has something to serve.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/dfsm/internal/cli"
	loamAdapter "github.com/aretw0/dfsm/pkg/adapters/loam"
	"github.com/aretw0/loam"
)

func main() {
	sourceDir := "examples"
	targetDir := "examples/catalog"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		sourceDir = os.Args[2]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating machine catalog in: %s\n", targetDir)

	// Init Loam (No Versioning = pure file generation)
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	check(err)
	writer := loamAdapter.NewWriter(loam.NewTypedRepository[loamAdapter.MachineMetadata](repo))
	ctx := context.TODO()

	files, err := filepath.Glob(filepath.Join(sourceDir, "*.*"))
	check(err)
	for _, path := range files {
		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		_, doc, err := cli.LoadMachine(path)
		check(err)
		check(writer.Save(ctx, doc))
		fmt.Printf("  %s -> %s.md\n", path, doc.Name)
	}

	fmt.Println("Done. Verify contents in", targetDir)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
