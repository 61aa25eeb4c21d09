// Package platform supplies the OS-appropriate well-known application-data
// directories used as scan roots for log discovery.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDataDirs returns the application-data base directories for the current
// OS, filtered to those that exist.
func AppDataDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filterExisting(appDataCandidates(runtime.GOOS, home))
}

// ExtraDirs returns additional program-installation roots consulted only
// when the application-data tier yields nothing.
func ExtraDirs() []string {
	return filterExisting(extraCandidates(runtime.GOOS))
}

// appDataCandidates lists the per-OS-family application data directories.
// Candidates may not exist; callers filter.
func appDataCandidates(goos, home string) []string {
	switch goos {
	case "windows":
		dirs := []string{
			os.Getenv("LOCALAPPDATA"),
			os.Getenv("APPDATA"),
			os.Getenv("PROGRAMDATA"),
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			dirs = append(dirs, filepath.Join(profile, "AppData", "LocalLow"))
		}
		return dirs
	case "darwin":
		if home == "" {
			return nil
		}
		return []string{
			filepath.Join(home, "Library", "Application Support"),
			filepath.Join(home, "Library", "Logs"),
			filepath.Join(home, "Library", "Caches"),
		}
	default:
		dirs := []string{}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".config"),
				filepath.Join(home, ".local", "share"),
				filepath.Join(home, ".cache"),
			)
		}
		return append(dirs, "/var/log")
	}
}

// extraCandidates lists program-installation roots per OS family.
func extraCandidates(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			os.Getenv("ProgramFiles"),
			os.Getenv("ProgramFiles(x86)"),
		}
	default:
		return []string{"/opt", "/usr/local"}
	}
}

func filterExisting(dirs []string) []string {
	existing := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	return existing
}
