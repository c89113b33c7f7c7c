package probe

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DirSize returns the total apparent byte size of every regular file
// reachable under root. Symlinked files contribute their target's
// size, matching symlink-based environment provisioning where the
// linked base installation appears in both the before and after
// measurement and cancels out of the diff. Dangling links contribute
// nothing.
func DirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			total += info.Size()
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}
