package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
)

var regions = []string{
	"London", "Surrey", "Kent", "Essex", "Berkshire", "Hertfordshire",
	"Buckinghamshire", "Sussex", "Oxfordshire", "Hampshire",
}

var towns = []string{
	"Westminster", "Camden", "Greenwich", "Hackney", "Croydon", "Guildford",
	"Woking", "Canterbury", "Maidstone", "Chelmsford", "Colchester", "Reading",
	"Slough", "Watford", "St Albans", "Aylesbury", "Brighton", "Oxford",
	"Winchester", "Basingstoke",
}

func main() {
	groups := flag.Int("groups", 4, "Number of groups")
	maxChildren := flag.Int("children", 5, "Maximum children per group, at most 99 (groups may be empty)")
	singles := flag.Int("singles", 3, "Number of top-level single places")
	seed := flag.Uint64("seed", 1, "Random seed")
	wrap := flag.Bool("wrap", false, `Wrap the list as {"locations": [...]} (load with --selector '$.locations[*]')`)
	out := flag.String("out", "", "Output file (default stdout)")
	flag.Parse()

	if *groups < 0 || *maxChildren < 0 || *maxChildren > 99 || *singles < 0 {
		flag.Usage()
		os.Exit(1)
	}

	locs := generate(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *groups, *maxChildren, *singles)

	// Same validation the loaders apply.
	if _, err := graph.FromLocations(locs); err != nil {
		fatal(err)
	}

	var payload any = locs
	if *wrap {
		payload = map[string]any{"locations": locs}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fatal(err)
	}
	data = append(data, '\n')

	if *out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d top-level locations to %s\n", len(locs), *out)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// generate builds groups first, then singles. Group i gets ids i*100, its
// children i*100+1.., and singles continue after the last group block.
func generate(rng *rand.Rand, groups, maxChildren, singles int) []api.Location {
	locs := make([]api.Location, 0, groups+singles)
	for g := 1; g <= groups; g++ {
		id := int64(g * 100)
		loc := api.Location{
			ID:       id,
			Name:     name(regions, g-1),
			Children: []api.Location{},
		}
		n := 0
		if maxChildren > 0 {
			n = rng.IntN(maxChildren + 1)
		}
		for c := 1; c <= n; c++ {
			pid := id
			loc.Children = append(loc.Children, api.Location{
				ID:       id + int64(c),
				Name:     name(towns, rng.IntN(len(towns))),
				ParentID: &pid,
			})
		}
		locs = append(locs, loc)
	}
	base := int64((groups + 1) * 100)
	for s := 0; s < singles; s++ {
		locs = append(locs, api.Location{ID: base + int64(s), Name: name(towns, rng.IntN(len(towns)))})
	}
	return locs
}

// name cycles through pool, numbering repeats.
func name(pool []string, i int) string {
	n := pool[i%len(pool)]
	if round := i / len(pool); round > 0 {
		return fmt.Sprintf("%s %d", n, round+1)
	}
	return n
}
