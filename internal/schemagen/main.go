package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/lintsel/api/v1beta1/configs"
	"github.com/macropower/lintsel/pkg/schema"
)

var outFile = flag.String("o", "schema.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	gen := schema.NewGenerator(configs.New(),
		"github.com/macropower/lintsel/api/v1beta1",
		"github.com/macropower/lintsel/api/v1beta1/configs",
		"github.com/macropower/lintsel/pkg/policy",
	)
	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	// Write schema.json file.
	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
