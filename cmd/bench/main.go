// Command bench measures cold vs warm List performance of the fs adapter,
// i.e. how much the persistent metadata index saves on a large vault.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	canvas "github.com/Kevdome3000/infinite-canvas"
)

func main() {
	count := flag.Int("count", 1000, "Number of documents to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "canvas_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	ctx := context.Background()

	fmt.Printf("Generating %d documents in %s...\n", *count, benchDir)
	startGen := time.Now()

	store, err := canvas.Open(benchDir)
	if err != nil {
		panic(err)
	}
	base := time.Now().Add(-time.Duration(*count) * time.Second)
	for i := 0; i < *count; i++ {
		doc := canvas.Document{
			ID:        fmt.Sprintf("doc-%06d", i),
			Name:      fmt.Sprintf("Canvas %d", i),
			Content:   fmt.Sprintf(`{"shapes":[],"seq":%d}`, i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Save(ctx, doc); err != nil {
			panic(err)
		}
	}
	if err := store.Close(); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	// Run 1: cold, populates the index.
	store1, err := canvas.Open(benchDir)
	if err != nil {
		panic(err)
	}
	fmt.Println("Running List (Run 1 - Cold)...")
	startList := time.Now()
	list, err := store1.List(ctx)
	if err != nil {
		panic(err)
	}
	cold := time.Since(startList)
	fmt.Printf("Run 1 Result: %v (Items: %d)\n", cold, len(list))
	if err := store1.Close(); err != nil {
		panic(err)
	}

	// Run 2: warm, re-instantiated to simulate a fresh CLI invocation
	// serving metadata from the persisted index.
	store2, err := canvas.Open(benchDir)
	if err != nil {
		panic(err)
	}
	fmt.Println("Running List (Run 2 - Warm)...")
	startList2 := time.Now()
	list2, err := store2.List(ctx)
	if err != nil {
		panic(err)
	}
	warm := time.Since(startList2)
	fmt.Printf("Run 2 Result: %v (Items: %d)\n", warm, len(list2))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d documents):\n", *count)
	fmt.Printf("  Cold: %v\n", cold)
	fmt.Printf("  Warm: %v\n", warm)
	fmt.Printf("--------------------------------------------------\n")
}
