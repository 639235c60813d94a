package brew

import (
	"encoding/json"
	"strings"
)

type nameVersion struct {
	name    string
	version string
}

// parseVersions parses `brew list --versions` output. Each line is a name
// followed by one or more versions; the first version wins. Lines without a
// version are skipped.
func parseVersions(out string) []nameVersion {
	var parsed []nameVersion
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		parsed = append(parsed, nameVersion{name: fields[0], version: fields[1]})
	}
	return parsed
}

// parseTap extracts the tap from `brew info --json=v2` output. The core tap
// is normalized to "" so only third-party taps surface in listings.
func parseTap(out []byte) string {
	var info struct {
		Formulae []struct {
			Tap string `json:"tap"`
		} `json:"formulae"`
	}
	if err := json.Unmarshal(out, &info); err != nil || len(info.Formulae) == 0 {
		return ""
	}
	tap := info.Formulae[0].Tap
	if tap == "homebrew/core" {
		return ""
	}
	return tap
}
