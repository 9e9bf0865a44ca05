package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names one external binary a preview decoder runs.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status is the outcome of looking a Requirement up on PATH.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	// Path is the resolved executable when Available.
	Path   string
	Detail string
}

// lookPath is swapped in tests that need to fake PATH resolution.
var lookPath = exec.LookPath

// CheckBinaries resolves every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		results[i] = check(req)
	}
	return results
}

func check(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := lookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	status.Path = resolved
	return status
}
