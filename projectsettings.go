package srctrail

import (
	"fmt"
	"os"
	"strings"
)

const defaultProjectSettingsDocument = "<?xml version=\"1.0\" encoding=\"utf-8\" ?>\n" +
	"<config>\n" +
	"    <version>0</version>\n" +
	"</config>\n"

// projectSettingsPath derives the .srctrlprj sidecar path from the
// database path by replacing everything after the last '.' (not the last
// path separator) with "srctrlprj". A database path with no '.' at all
// simply gets the suffix appended, matching the original's documented
// quirk around paths that contain a '.' earlier in a directory name.
func projectSettingsPath(databasePath string) string {
	if idx := strings.LastIndex(databasePath, "."); idx != -1 {
		return databasePath[:idx] + ".srctrlprj"
	}
	return databasePath + ".srctrlprj"
}

// createProjectSettingsFileIfMissing writes the default sidecar document
// when it does not already exist, and leaves any existing one untouched.
func createProjectSettingsFileIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(defaultProjectSettingsDocument), 0o644); err != nil {
		return fmt.Errorf("create project settings file: %w", err)
	}
	return nil
}

// readProjectSettingsText reads the sidecar's full contents verbatim, for
// mirroring into meta[project_settings].
func readProjectSettingsText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read project settings file: %w", err)
	}
	return string(data), nil
}
