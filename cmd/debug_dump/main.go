package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mods-merger/core/dcx"
	"mods-merger/core/merge"
	"mods-merger/feature/materialdef"
	"mods-merger/feature/merging"
	"mods-merger/feature/model"
	"mods-merger/feature/text"

	"github.com/davecgh/go-spew/spew"
)

func main() {
	kind := flag.String("kind", "", "asset kind (model, text, materialdef); inferred from the file name when empty")
	depth := flag.Int("depth", 6, "maximum nesting depth to print")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: debug_dump [-kind K] [-depth N] FILE")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	k := merge.AssetKind(*kind)
	if k == "" {
		if k, err = merging.InferKind(path); err != nil {
			log.Fatal(err)
		}
	}

	mode, err := dcx.Detect(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("=== %s (%s, container %s, %d bytes) ===\n", path, k, mode, len(data))

	var doc any
	switch k {
	case merge.KindModel:
		doc, err = model.Decode(data)
	case merge.KindText:
		doc, err = text.Decode(data)
	case merge.KindMaterialDef:
		doc, err = materialdef.Decode(data)
	default:
		err = fmt.Errorf("unknown kind %q", k)
	}
	if err != nil {
		log.Fatal(err)
	}

	cfg := spew.ConfigState{Indent: "  ", MaxDepth: *depth, DisablePointerAddresses: true, SortKeys: true}
	cfg.Dump(doc)
}
