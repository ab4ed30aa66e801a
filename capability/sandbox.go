package capability

import "strings"

// AllowlistSandbox permits exec only for commands whose argv[0] (the
// program name) appears in Allowed. An empty Allowed set permits
// everything, matching spec.md §6's "consulted by the core before exec"
// contract without forcing every caller to configure a policy.
type AllowlistSandbox struct {
	Allowed map[string]bool
}

// NewAllowlistSandbox builds a sandbox permitting exactly the named
// programs.
func NewAllowlistSandbox(programs ...string) *AllowlistSandbox {
	allowed := make(map[string]bool, len(programs))
	for _, p := range programs {
		allowed[p] = true
	}
	return &AllowlistSandbox{Allowed: allowed}
}

// IsAllowed reports whether command's program name is permitted.
func (s *AllowlistSandbox) IsAllowed(command string) bool {
	if len(s.Allowed) == 0 {
		return true
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	return s.Allowed[fields[0]]
}
