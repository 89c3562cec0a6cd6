package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// systemDirs mirrors the teacher's cmd/openapi/main.go loadSpec() and
// cli security_utils.go validateFilePath: a user-supplied template
// directory must not resolve under any of these, matching spec.md
// §4.4's path-safety rule.
var systemDirs = []string{
	"/etc/", "/usr/", "/bin/", "/sbin/", "/sys/", "/proc/", "/dev/",
	"/boot/", "/root/",
}

// allowedPrefixes are conventionally writable scratch directories that
// are accepted before any other check runs.
var allowedPrefixes = []string{"/tmp/", "/var/tmp/"}

// ValidateTemplateDir validates a user-supplied template bundle
// directory: a path containing ".." is rejected when it does not exist
// on disk, and no access to system directories.
// Directories under /tmp, /var/tmp, the user's home, or the current
// workspace are permitted.
func ValidateTemplateDir(dir string) (string, error) {
	clean := filepath.Clean(dir)

	for _, allowed := range allowedPrefixes {
		if strings.HasPrefix(clean, allowed) {
			return clean, nil
		}
	}

	if strings.Contains(clean, "..") {
		if _, err := os.Stat(clean); err != nil {
			return "", fmt.Errorf("templates: invalid template dir: path traversal not allowed")
		}
	}

	if filepath.IsAbs(clean) {
		for _, sysDir := range systemDirs {
			if strings.HasPrefix(clean, sysDir) {
				return "", fmt.Errorf("templates: invalid template dir: access to system directory not allowed")
			}
		}
	}

	return clean, nil
}
