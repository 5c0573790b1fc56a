package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// OtherRunning reports whether a process other than this one is running the
// same executable. The check is advisory: name collisions with unrelated
// binaries count as a match, which is acceptable for a startup warning.
func OtherRunning() (bool, error) {
	executable, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve executable: %w", err)
	}

	processList, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	return scan(filepath.Base(executable), os.Getpid(), processList), nil
}

// scan reports whether processList holds a process with the given executable
// name besides the one identified by thisProcessID.
func scan(executableName string, thisProcessID int, processList []ps.Process) bool {
	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != executableName {
			continue
		}

		return true
	}

	return false
}
