package domain

import "time"

// Finding is a single discovered open port/service on a host.
// Immutable once created.
type Finding struct {
	Host     string   `json:"host"`
	Protocol string   `json:"protocol"`
	Port     int      `json:"port"`
	Service  string   `json:"service"`
	Product  string   `json:"product,omitempty"`
	CVE      []string `json:"cve"`
}

// NewFinding builds a Finding, applying the default protocol and service
// names used across the scanner adapters.
func NewFinding(host, protocol string, port int, service, product string, cves []string) Finding {
	if protocol == "" {
		protocol = "tcp"
	}
	if service == "" {
		service = "unknown"
	}
	return Finding{
		Host:     host,
		Protocol: protocol,
		Port:     port,
		Service:  service,
		Product:  product,
		CVE:      cves,
	}
}

// HasKnownVulnerabilities reports whether any CVE identifier is associated
// with the finding's service.
func (f Finding) HasKnownVulnerabilities() bool {
	return len(f.CVE) > 0
}

// ScanObservation is one scanner run: a timestamp, the scanner that produced
// it and the ordered list of findings. The analysis core consumes it
// read-only.
type ScanObservation struct {
	Timestamp time.Time `json:"timestamp"`
	Scanner   string    `json:"scanner"`
	Findings  []Finding `json:"findings"`
}
