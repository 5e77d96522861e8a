package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"electora/internal/app/bootstrap"
)

// Simulation process entrypoint: drives bulk vote assignment toward
// per-candidate targets. Expects -cycle plus one or more -target flags.
//
//	simulate -cycle cycle-2026 -target cand-a=120 -target cand-b=80
func main() {
	var cycleID string
	targets := targetFlags{}
	flag.StringVar(&cycleID, "cycle", "", "voting cycle id to simulate against")
	flag.Var(&targets, "target", "candidate target as candidate_id=votes (repeatable)")
	flag.Parse()

	if cycleID == "" || len(targets) == 0 {
		log.Fatal("usage: simulate -cycle <cycle_id> -target <candidate_id>=<votes> [-target ...]")
	}

	app, err := bootstrap.BuildSimulator()
	if err != nil {
		log.Fatalf("bootstrap simulator failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("simulator shutdown close failed: %v", err)
		}
	}()

	report, err := app.Run(context.Background(), cycleID, targets)
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	log.Printf("votes created: %d", report.VotesCreated)
	log.Printf("votes repointed: %d", report.VotesRepointed)
	log.Printf("voters spent: %d", report.VotersSpent)
	if len(report.Unmet) > 0 {
		unmet := make([]string, 0, len(report.Unmet))
		for candidateID, remaining := range report.Unmet {
			unmet = append(unmet, fmt.Sprintf("%s=%d", candidateID, remaining))
		}
		sort.Strings(unmet)
		log.Printf("unmet targets: %s", strings.Join(unmet, " "))
	}
}

type targetFlags map[string]int

func (t targetFlags) String() string {
	parts := make([]string, 0, len(t))
	for candidateID, votes := range t {
		parts = append(parts, fmt.Sprintf("%s=%d", candidateID, votes))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func (t targetFlags) Set(raw string) error {
	candidateID, votesRaw, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("target %q must look like candidate_id=votes", raw)
	}
	votes, err := strconv.Atoi(votesRaw)
	if err != nil || votes < 0 {
		return fmt.Errorf("target %q has an invalid vote count", raw)
	}
	t[strings.TrimSpace(candidateID)] = votes
	return nil
}
