package scanner

import (
	"math/rand"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// simulatedServices is the pool the fallback draws from.
var simulatedServices = []string{"ssh", "http", "https", "rdp", "unknown"}

// simulate builds a deterministic pseudo-random set of findings: three open
// ports per target from the [20,1024) range. The fixed seed keeps repeated
// fallback runs identical for a fixed target list.
func (s *NmapScanner) simulate() []domain.Finding {
	r := rand.New(rand.NewSource(s.seed))

	var findings []domain.Finding
	for _, target := range s.targets {
		for _, offset := range r.Perm(1004)[:3] {
			service := simulatedServices[r.Intn(len(simulatedServices))]
			findings = append(findings, domain.NewFinding(
				target,
				"tcp",
				20+offset,
				service,
				"simulated",
				cvesForService(service),
			))
		}
	}
	return findings
}
