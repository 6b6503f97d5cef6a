package config

import (
	"os"
	"path/filepath"
)

// Candidates holds every filesystem location that may hold the settings document.
type Candidates struct {
	Primary  string   `json:"primary"`  // settings file next to the program
	Fallback string   `json:"fallback"` // settings file in the per-user config dir
	Legacy   []string `json:"legacy"`   // superseded files, migrated from once
}

// DefaultCandidates returns the candidate set for this process: the program
// directory as primary, the per-user configuration directory as fallback,
// and the known legacy filenames next to the primary.
func DefaultCandidates() Candidates {
	programDir := ProgramDir()
	c := Candidates{
		Primary:  filepath.Join(programDir, SettingsFileName),
		Fallback: filepath.Join(UserConfigDir(AppName), SettingsFileName),
	}
	for _, name := range legacyFileNames {
		c.Legacy = append(c.Legacy, filepath.Join(programDir, name))
	}
	return c
}

// Rule identifies which resolution step selected the active path.
type Rule string

const (
	// RulePrimaryExists means the primary file exists and is readable.
	RulePrimaryExists Rule = "primary-exists"
	// RuleFallbackExists means no readable primary, but the fallback file exists.
	RuleFallbackExists Rule = "fallback-exists"
	// RulePrimaryWritable means neither file exists but the primary
	// directory accepted a probe write.
	RulePrimaryWritable Rule = "primary-writable"
	// RuleFallbackDefault means nothing exists and the primary directory
	// rejected the probe; the fallback is used sight unseen.
	RuleFallbackDefault Rule = "fallback-default"
	// RuleSaveRetargeted means a failed primary write moved the active
	// path to the fallback after resolution.
	RuleSaveRetargeted Rule = "save-retargeted"
)

// Resolution is the outcome of resolving the active settings path.
type Resolution struct {
	Candidates
	Active string `json:"active"`
	Rule   Rule   `json:"rule"`
}

// Resolve picks the active path for the given candidates. The application
// store and the paths diagnostic both go through this one function; there
// is no other resolution logic anywhere.
func Resolve(c Candidates) Resolution {
	res := Resolution{Candidates: c}
	switch {
	case isReadable(c.Primary):
		res.Active, res.Rule = c.Primary, RulePrimaryExists
	case exists(c.Fallback):
		res.Active, res.Rule = c.Fallback, RuleFallbackExists
	case probeWritable(filepath.Dir(c.Primary)):
		res.Active, res.Rule = c.Primary, RulePrimaryWritable
	default:
		res.Active, res.Rule = c.Fallback, RuleFallbackDefault
	}
	return res
}

// isReadable reports whether the file exists and its content can be read.
func isReadable(path string) bool {
	_, err := os.ReadFile(path)
	return err == nil
}

// exists reports whether the path exists at all.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// probeWritable reports whether dir accepts writes, creating it first if
// needed. The probe file is removed again; a probe that cannot be cleaned
// up counts as a failure.
func probeWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false
	}
	probe := filepath.Join(dir, probeFileName)
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	return os.Remove(probe) == nil
}
