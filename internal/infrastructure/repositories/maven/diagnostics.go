package maven

import (
	"regexp"
	"sort"
)

// missingArtifactPatterns are the resolution-failure phrasings Maven emits.
var missingArtifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Could not find artifact ([^:\s]+:[^:\s]+:[^:\s]+:[^:\s]+)`),
	regexp.MustCompile(`Failure to find ([^:\s]+:[^:\s]+:[^:\s]+:[^:\s]+)`),
	regexp.MustCompile(`The following artifacts could not be resolved: ([^:\s]+:[^:\s]+:[^:\s]+:[^:\s]+)`),
	regexp.MustCompile(`Missing artifact ([^:\s]+:[^:\s]+:[^:\s]+:[^:\s]+)`),
}

// ExtractMissingArtifacts pulls the artifact coordinates mentioned by
// resolution errors out of raw build diagnostics. The strings are reported
// verbatim; this is a confidence signal, not a parse of the build output.
func ExtractMissingArtifacts(output string) []string {
	seen := make(map[string]bool)
	for _, pattern := range missingArtifactPatterns {
		for _, match := range pattern.FindAllStringSubmatch(output, -1) {
			seen[match[1]] = true
		}
	}

	out := make([]string, 0, len(seen))
	for coord := range seen {
		out = append(out, coord)
	}
	sort.Strings(out)
	return out
}
