package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kiwiland/railquery/internal/edgelist"
	"github.com/kiwiland/railquery/internal/engine"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Need path of input file as only argument")
		return
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read input file: %v", err)
	}

	g, err := edgelist.Build(string(data))
	if err != nil {
		log.Fatalf("build graph: %v", err)
	}

	runBattery(engine.New(g), os.Stdout)
}
