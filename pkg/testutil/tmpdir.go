package testutil

import (
	"os"

	"src.squeak.sh/pkg/must"
)

// InTempDir is like TempDir, but also changes into the directory. When the test
// finishes, it changes back to the old working directory.
func InTempDir(c interface {
	Cleanuper
	TempDirer
}) string {
	dir := c.TempDir()
	old := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(old)) })
	return dir
}
