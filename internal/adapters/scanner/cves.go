package scanner

// serviceCVEs is a minimal mapping between well-known services and public
// CVE identifiers, used to tag findings with known vulnerabilities.
var serviceCVEs = map[string][]string{
	"ssh":   {"CVE-2023-38408", "CVE-2018-15473"},
	"http":  {"CVE-2021-41773", "CVE-2022-23943"},
	"https": {"CVE-2022-0778"},
	"mysql": {"CVE-2021-35604"},
	"rdp":   {"CVE-2019-0708"},
}

// cvesForService returns the known CVEs of a service, or nil.
func cvesForService(service string) []string {
	return serviceCVEs[service]
}
