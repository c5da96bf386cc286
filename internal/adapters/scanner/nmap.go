package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// scannerName tags observations regardless of whether the probe was real or
// simulated, matching the persisted artifact contract.
const scannerName = "nmap"

// NmapScanner produces one observation per cycle. When the real probe is
// disabled or fails it degrades to a deterministic simulation so the
// pipeline keeps working.
type NmapScanner struct {
	targets  []string
	useNmap  bool
	scansDir string
	seed     int64
	now      func() time.Time
}

var _ ports.Scanner = (*NmapScanner)(nil)

// New creates a scanner for the given targets. scansDir receives one
// snapshot per observation.
func New(targets []string, useNmap bool, scansDir string) *NmapScanner {
	return &NmapScanner{
		targets:  targets,
		useNmap:  useNmap,
		scansDir: scansDir,
		seed:     42,
		now:      time.Now,
	}
}

// Scan runs the probe (or the fallback) and persists the observation
// snapshot. Snapshot write failures are fatal: the scans directory is part
// of the dashboard contract.
func (s *NmapScanner) Scan(ctx context.Context) (domain.ScanObservation, error) {
	var findings []domain.Finding

	if s.useNmap {
		probed, err := s.probe(ctx)
		if err != nil {
			slog.Warn("nmap probe failed, falling back to simulation", "error", err)
			if werr := s.writeFailure(err); werr != nil {
				return domain.ScanObservation{}, werr
			}
			findings = s.simulate()
		} else {
			findings = probed
		}
	} else {
		findings = s.simulate()
	}

	obs := domain.ScanObservation{
		Timestamp: s.now().UTC(),
		Scanner:   scannerName,
		Findings:  findings,
	}

	if err := s.writeSnapshot(obs); err != nil {
		return domain.ScanObservation{}, err
	}
	return obs, nil
}

// probe runs a service-detection scan against the configured targets.
func (s *NmapScanner) probe(ctx context.Context) ([]domain.Finding, error) {
	sc, err := nmap.NewScanner(ctx,
		nmap.WithTargets(s.targets...),
		nmap.WithServiceInfo(),
		nmap.WithSkipHostDiscovery(),
		nmap.WithDisabledDNSResolution(),
	)
	if err != nil {
		return nil, fmt.Errorf("create nmap scanner: %w", err)
	}

	result, warnings, err := sc.Run()
	if err != nil {
		return nil, fmt.Errorf("run nmap: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		slog.Warn("nmap scan produced warnings", "warnings", *warnings)
	}

	var findings []domain.Finding
	for _, h := range result.Hosts {
		host := pickHostAddress(h)
		if host == "" {
			continue
		}
		for _, p := range h.Ports {
			if !strings.HasPrefix(strings.ToLower(p.State.State), "open") {
				continue
			}
			findings = append(findings, domain.NewFinding(
				host,
				p.Protocol,
				int(p.ID),
				p.Service.Name,
				p.Service.Product,
				cvesForService(p.Service.Name),
			))
		}
	}
	return findings, nil
}

func pickHostAddress(h nmap.Host) string {
	for _, a := range h.Addresses {
		if a.AddrType == "ipv4" {
			return a.Addr
		}
	}
	if len(h.Addresses) > 0 {
		return h.Addresses[0].Addr
	}
	return ""
}

// writeSnapshot persists the observation under scans/.
func (s *NmapScanner) writeSnapshot(obs domain.ScanObservation) error {
	if err := os.MkdirAll(s.scansDir, 0755); err != nil {
		return fmt.Errorf("create scans directory: %w", err)
	}
	data, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scan snapshot: %w", err)
	}
	name := fmt.Sprintf("scan_%s.json", obs.Timestamp.Format(time.RFC3339))
	if err := os.WriteFile(filepath.Join(s.scansDir, name), data, 0644); err != nil {
		return fmt.Errorf("write scan snapshot: %w", err)
	}
	return nil
}

// writeFailure records why the real probe was unavailable.
func (s *NmapScanner) writeFailure(cause error) error {
	if err := os.MkdirAll(s.scansDir, 0755); err != nil {
		return fmt.Errorf("create scans directory: %w", err)
	}
	data, err := json.MarshalIndent(map[string]string{"error": cause.Error()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode probe failure: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.scansDir, "nmap_failure.json"), data, 0644); err != nil {
		return fmt.Errorf("write probe failure: %w", err)
	}
	return nil
}
