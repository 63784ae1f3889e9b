package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/milk9111/actionanim/prefabs"
)

type schemaTarget struct {
	file        string
	title       string
	description string
	value       any
}

var targets = []schemaTarget{
	{
		file:        "clips.schema.json",
		title:       "Clip Sheet",
		description: "Validates *.clips.yaml: sheet geometry and named frame ranges",
		value:       new(prefabs.ClipSheetSpec),
	},
	{
		file:        "anim.schema.json",
		title:       "Animation Catalog",
		description: "Validates *.anim.yaml: animation sets keyed by action name",
		value:       new(prefabs.AnimationCatalogSpec),
	},
	{
		file:        "animation.schema.json",
		title:       "Animation Config",
		description: "Validates animation.yaml: queue cap and random seed",
		value:       new(prefabs.AnimationConfigSpec),
	},
	{
		file:        "entity.schema.json",
		title:       "Entity Prefab",
		description: "Validates entity prefabs such as player.yaml",
		value:       new(prefabs.EntityBuildSpec),
	},
}

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas to")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	for _, target := range targets {
		schema := buildSchema(target)
		if err := writeSchema(filepath.Join(outDir, target.file), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", target.file, err)
			os.Exit(1)
		}
	}
}

func buildSchema(target schemaTarget) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(target.value)
	schema.Title = target.title
	schema.Description = target.description
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
