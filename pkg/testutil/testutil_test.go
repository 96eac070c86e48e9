package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestSet(t *testing.T) {
	c := &cleanuper{}
	s := "foo"
	Set(c, &s, "bar")
	if s != "bar" {
		t.Errorf("After Set, s = %q, want %q", s, "bar")
	}
	c.runCleanups()
	if s != "foo" {
		t.Errorf("After cleanup, s = %q, want %q", s, "foo")
	}
}

func TestSetenv(t *testing.T) {
	const name = "SQUEAK_TESTUTIL_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	Setenv(c, name, "1")
	if got := os.Getenv(name); got != "1" {
		t.Errorf("Getenv = %q, want 1", got)
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("variable still set after cleanup")
	}
}

func TestUnsetenvPrefix(t *testing.T) {
	const a, b, other = "SQUEAK_TESTUTIL_A", "SQUEAK_TESTUTIL_B", "OTHER_TESTUTIL_C"
	c0 := &cleanuper{}
	for _, name := range []string{a, b, other} {
		Setenv(c0, name, "1")
	}
	defer c0.runCleanups()

	c := &cleanuper{}
	UnsetenvPrefix(c, "SQUEAK_TESTUTIL_")
	for _, name := range []string{a, b} {
		if _, ok := os.LookupEnv(name); ok {
			t.Errorf("%s still set", name)
		}
	}
	if os.Getenv(other) != "1" {
		t.Errorf("%s was unset", other)
	}
	c.runCleanups()
	for _, name := range []string{a, b} {
		if os.Getenv(name) != "1" {
			t.Errorf("%s not restored after cleanup", name)
		}
	}
}

func TestTempDirWith(t *testing.T) {
	root := TempDirWith(t, Dir{
		"a":   "alpha",
		"sub": Dir{"b": "beta"},
	})
	content, err := os.ReadFile(filepath.Join(root, "sub", "b"))
	if err != nil || string(content) != "beta" {
		t.Errorf("got (%q, %v), want (\"beta\", nil)", content, err)
	}
}

func TestDedent(t *testing.T) {
	got := Dedent(`
		foo
		  bar
		`)
	want := "foo\n  bar\n"
	if got != want {
		t.Errorf("Dedent -> %q, want %q", got, want)
	}
}

type tempDirCleanuper struct {
	cleanuper
	dir string
}

func (c *tempDirCleanuper) TempDir() string { return c.dir }

func TestInTempDir(t *testing.T) {
	old, _ := os.Getwd()
	c := &tempDirCleanuper{dir: t.TempDir()}
	dir := InTempDir(c)
	wd, _ := os.Getwd()
	if evalSymlinks(wd) != evalSymlinks(dir) {
		t.Errorf("Getwd = %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd, _ := os.Getwd(); wd != old {
		t.Errorf("after cleanup, Getwd = %q, want %q", wd, old)
	}
}

func evalSymlinks(path string) string {
	if p, err := filepath.EvalSymlinks(path); err == nil {
		return p
	}
	return path
}
