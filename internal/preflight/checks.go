package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// criticalFreeBytes is the floor below which a run refuses to start;
	// the merged intermediate alone can exceed the inputs' combined size.
	criticalFreeBytes = 2 << 30
	// recommendedFreeBytes is the threshold below which the check still
	// passes but flags that space is tight.
	recommendedFreeBytes = 10 << 30
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies free space on the filesystem holding path.
func CheckDiskSpace(name, path string) Result {
	free, err := freeBytes(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	freeGiB := float64(free) / (1 << 30)
	switch {
	case free < criticalFreeBytes:
		return Result{Name: name, Detail: fmt.Sprintf("%.1f GiB free (critically low)", freeGiB)}
	case free < recommendedFreeBytes:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free (low; 10 GiB recommended)", freeGiB)}
	default:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", freeGiB)}
	}
}

func freeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
