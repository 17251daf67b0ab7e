// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command pcolbench exercises Map under sequential inserts, batched
// transaction edits and random lookups, and reports basic timings. It is a
// development tool, not a benchmark suite with statistical rigor.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/gopcol/pcol"
)

type config struct {
	Keys        int `json:"keys"`
	Lookups     int `json:"lookups"`
	BatchWrites int `json:"batchWrites"`
}

func defaultConfig() config {
	return config{Keys: 100_000, Lookups: 1_000_000, BatchWrites: 10_000}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return cfg, fmt.Errorf("parsing jsonc config: %w", err)
	}

	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	log.SetFlags(log.Lmicroseconds)

	configPath := pflag.StringP("config", "c", "", "path to a JSONC config file overriding the defaults")
	seed := pflag.Uint64P("seed", "s", 42, "PRNG seed")
	verbose := pflag.BoolP("verbose", "v", false, "print trie shape diagnostics after each stage")
	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}

	prng := rand.New(rand.NewPCG(*seed, *seed))

	m := pcol.NewMapWithHash[int, int64](pcol.HashInt)

	ts := time.Now()
	for i := 0; i < cfg.Keys; i++ {
		m = m.Assoc(i, int64(i))
	}
	log.Printf("Assoc %d keys one at a time: %v, size: %d", cfg.Keys, time.Since(ts), m.Size())
	if *verbose {
		log.Printf("trie shape: %s", m.Stats())
	}

	ts = time.Now()
	m2 := m.Transaction(func(mc *pcol.MapCommit[int, int64]) {
		for i := 0; i < cfg.BatchWrites; i++ {
			key := cfg.Keys + i
			mc.Assoc(key, int64(key))
		}
	})
	log.Printf("Transaction with %d writes: %v, size: %d", cfg.BatchWrites, time.Since(ts), m2.Size())
	log.Printf("original map untouched by transaction: size %d", m.Size())
	if *verbose {
		log.Printf("trie shape after transaction: %s", m2.Stats())
	}

	ts = time.Now()
	hits := 0
	for i := 0; i < cfg.Lookups; i++ {
		if _, ok := m2.Get(prng.IntN(cfg.Keys + cfg.BatchWrites)); ok {
			hits++
		}
	}
	log.Printf("%d random Get calls: %v, hits: %d", cfg.Lookups, time.Since(ts), hits)
}
