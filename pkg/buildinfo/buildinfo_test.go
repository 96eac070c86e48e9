package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.squeak.sh/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, Program,
		ThatSqueak("--version").WritesStdout(Value.Version+"\n"),
		ThatSqueak("--version", "--json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatSqueak("--buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: %v\n",
				Value.Version, Value.GoVersion, Value.Reproducible)),
		ThatSqueak("--buildinfo", "--json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatSqueak().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

var devVersionTests = []struct {
	name        string
	vcsOverride string
	bi          *debug.BuildInfo
	want        string
}{
	// next is always "0.3.0"
	{
		"no BuildInfo",
		"",
		nil,
		"0.3.0-dev.unknown",
	},
	{
		"BuildInfo with Main.Version = (devel)",
		"",
		&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
		"0.3.0-dev.unknown",
	},
	{
		"BuildInfo with non-empty Main.Version != (devel)",
		"",
		&debug.BuildInfo{Main: debug.Module{Version: "v0.3.0-dev.squeak"}},
		"0.3.0-dev.squeak",
	},
	{
		"BuildInfo with VCS data from clean checkout",
		"",
		&debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
			{Key: "vcs.time", Value: "2026-10-19T08:30:00Z"},
			{Key: "vcs.modified", Value: "false"},
		}},
		"0.3.0-dev.0.20261019083000-abcdef012345",
	},
	{
		"BuildInfo with VCS data from dirty checkout",
		"",
		&debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
			{Key: "vcs.time", Value: "2026-10-19T08:30:00Z"},
			{Key: "vcs.modified", Value: "true"},
		}},
		"0.3.0-dev.0.20261019083000-abcdef012345-dirty",
	},
	{
		"BuildInfo with unknown VCS timestamp format",
		"",
		&debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
			{Key: "vcs.time", Value: "April First"},
			{Key: "vcs.modified", Value: "false"},
		}},
		"0.3.0-dev.unknown",
	},
	{
		"vcsOverride",
		"20261019083000-abcdef012345",
		nil,
		"0.3.0-dev.0.20261019083000-abcdef012345",
	},
}

func TestDevVersion(t *testing.T) {
	for _, test := range devVersionTests {
		t.Run(test.name, func(t *testing.T) {
			f := func() (*debug.BuildInfo, bool) {
				if test.bi == nil {
					return nil, false
				}
				return test.bi, true
			}
			got := devVersion("0.3.0", test.vcsOverride, f)
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
