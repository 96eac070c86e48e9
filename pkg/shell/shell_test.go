package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"src.squeak.sh/pkg/channel"
	"src.squeak.sh/pkg/config"
	"src.squeak.sh/pkg/decor"
	"src.squeak.sh/pkg/ioctrl"
	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/store"
	"src.squeak.sh/pkg/store/storedefs"
	"src.squeak.sh/pkg/store/storetest"
)

type fixture struct {
	sh          *Shell
	out, errOut bytes.Buffer
}

func setup(t *testing.T, opts ...channel.Option) *fixture {
	t.Helper()
	f := &fixture{}
	opts = append([]channel.Option{
		channel.WithStdout(&f.out), channel.WithStderr(&f.errOut),
		channel.WithStandard(ioformat.StdNone),
		channel.WithEcho(ioctrl.EchoDirect, ioctrl.TMI, ioctrl.CatAll),
	}, opts...)
	f.sh = New(Config{Name: "test", Channel: channel.New(opts...), Columns: decor.Fixed(30)})
	return f
}

func (f *fixture) exec(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := f.sh.Exec(line)
		require.NoError(t, err, "line %q", line)
	}
}

func TestInteract(t *testing.T) {
	f := setup(t)
	err := f.sh.Interact(strings.NewReader("list\nquit\nlist\n"), false)
	require.NoError(t, err)

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "Now running in test shell.\n"))
	assert.True(t, strings.HasSuffix(out, "Leaving test shell.\n"))
	assert.Equal(t, 1, strings.Count(out, "These are the commands"))
	assert.NotContains(t, out, Prompt)
}

func TestInteract_Prompt(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.sh.Interact(strings.NewReader("exit"), true))
	assert.Contains(t, f.out.String(), Prompt)
}

func TestInteract_ErrorsGoToStderr(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.sh.Interact(strings.NewReader("nope\nclear x\n"), false))

	errOut := f.errOut.String()
	assert.Contains(t, errOut, "[UNKNOWN COMMAND: nope: unknown command]")
	assert.Contains(t, errOut, "[USAGE ERROR: clear: wrong number of arguments: want 0, got 1]")
}

func TestInteract_AppliesUpdates(t *testing.T) {
	updates := make(chan *config.Config, 1)
	cfg := config.Default()
	cfg.Echo.Mode = ioctrl.EchoNone
	updates <- cfg
	close(updates)

	f := setup(t)
	f.sh.updates = updates
	require.NoError(t, f.sh.Interact(strings.NewReader("list\n"), false))

	assert.Contains(t, f.out.String(), "Now running in test shell.")
	assert.NotContains(t, f.out.String(), "These are the commands")
}

func TestExec_Errors(t *testing.T) {
	f := setup(t)

	_, err := f.sh.Exec("bogus arg")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = f.sh.Exec("shutup")
	var argErr *ArgCountError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, ArgCountError{"shutup", 1, 0}, *argErr)

	_, err = f.sh.Exec("!abc")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = f.sh.Exec("!99")
	assert.ErrorIs(t, err, storedefs.ErrNoMatchingCmd)
	assert.EqualError(t, err, "no command matching 99: no matching command line")

	// Lines that fail do not enter the history.
	next, _ := f.sh.history.NextCmdSeq()
	assert.Equal(t, 1, next)
}

func TestExec_BlankLine(t *testing.T) {
	f := setup(t)
	quit, err := f.sh.Exec("  \n")
	assert.False(t, quit)
	assert.NoError(t, err)
	assert.Empty(t, f.out.String())
}

func TestHistory(t *testing.T) {
	f := setup(t)
	f.exec(t, "list", "list", "help list", "speakup")
	f.out.Reset()
	f.exec(t, "history")

	assert.Equal(t,
		"4  history\n3  speakup\n2  help list\n1  list\n"+
			"Use ! to recall a command, such as !2\n",
		f.out.String())

	f.out.Reset()
	f.exec(t, "history list help")
	assert.Equal(t,
		"2  help list\n1  list\nUse ! to recall a command, such as !2\n",
		f.out.String())
}

func TestRecall(t *testing.T) {
	f := setup(t)
	f.exec(t, "shutup error", "speakup")
	f.exec(t, "!1")

	vrb, cat := f.sh.ch.Window()
	assert.Equal(t, ioctrl.TMI, vrb)
	assert.Equal(t, ioctrl.CatAll&^ioctrl.CatError, cat)
	assert.Contains(t, f.out.String(), "shutup error\n")

	// A recalled line that repeats the last entry is not added again.
	next, _ := f.sh.history.NextCmdSeq()
	assert.Equal(t, 4, next)
	f.exec(t, "!3")
	next, _ = f.sh.history.NextCmdSeq()
	assert.Equal(t, 4, next)
}

func TestQuit(t *testing.T) {
	for _, line := range []string{"quit", "exit", "  exit now"} {
		f := setup(t)
		quit, err := f.sh.Exec(line)
		assert.True(t, quit, line)
		assert.NoError(t, err, line)
		assert.Equal(t, "Leaving test shell.\n", f.out.String())
	}
}

func TestShutUpAndSpeakUp(t *testing.T) {
	tests := []struct {
		lines   []string
		wantVrb ioctrl.Verbosity
		wantCat ioctrl.Category
	}{
		{[]string{"shutup chatty"}, ioctrl.Chatty, ioctrl.CatAll},
		{[]string{"shutup quiet"}, ioctrl.Quiet, ioctrl.CatAll},
		{[]string{"shutup normal"}, ioctrl.TMI, ioctrl.CatAll &^ ioctrl.CatNormal},
		{[]string{"shutup debug|testing"}, ioctrl.TMI, ioctrl.CatNormal | ioctrl.CatWarning | ioctrl.CatError},
		{[]string{"shutup quiet", "speakup chatty"}, ioctrl.Chatty, ioctrl.CatAll},
		{[]string{"shutup chatty", "speakup quiet"}, ioctrl.Chatty, ioctrl.CatAll},
		{[]string{"shutup error", "shutup quiet", "speakup"}, ioctrl.TMI, ioctrl.CatAll},
		{[]string{"shutup warning", "speakup warning tmi"}, ioctrl.TMI, ioctrl.CatAll},
	}
	for _, test := range tests {
		f := setup(t)
		f.exec(t, test.lines...)
		vrb, cat := f.sh.ch.Window()
		assert.Equal(t, test.wantVrb, vrb, "%q", test.lines)
		assert.Equal(t, test.wantCat, cat, "%q", test.lines)
	}
}

func TestShutUp_ReportsWindow(t *testing.T) {
	f := setup(t)
	f.exec(t, "shutup chatty")
	assert.Equal(t, "Permitting verbosity up to chatty, categories all\n", f.out.String())
}

func TestShutUp_InvalidArgument(t *testing.T) {
	f := setup(t)
	_, err := f.sh.Exec("shutup loud")
	var argErr *ioformat.InvalidArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestClear(t *testing.T) {
	f := setup(t)
	f.exec(t, "clear")
	assert.Empty(t, f.out.String())

	f = setup(t, channel.WithStandard(ioformat.StdANSI))
	f.exec(t, "clear")
	assert.Contains(t, f.out.String(), "\033[2J\033[1;1H")
}

func TestHelp(t *testing.T) {
	f := setup(t)
	f.exec(t, "help")
	out := f.out.String()
	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Repeat("*", 30), lines[0])
	assert.Equal(t, "*            Help            *", lines[1])
	assert.Contains(t, out, "quit or exit to leave test shell\n")
	assert.Contains(t, out, decor.Pad(helpColumn, decor.AlignLeft, "history", ' ')+"Show previously entered commands\n")
	assert.Contains(t, out, "Use help <command>")

	f.out.Reset()
	f.exec(t, "help shutup")
	assert.Contains(t, f.out.String(), "The name normal is taken as a category.")

	_, err := f.sh.Exec("help shutup nope")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestList(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.sh.Register(Command{Name: "zap", Fn: func(*Shell, []string) error { return nil }}))
	f.exec(t, "list")
	assert.Contains(t, f.out.String(), "clear\thelp\thistory\nlist\tshutup\tspeakup\nzap\n")
}

func TestRegister(t *testing.T) {
	f := setup(t)
	var got []string
	require.NoError(t, f.sh.Register(Command{
		Name: "echo", Variadic: true,
		Fn: func(sh *Shell, args []string) error {
			got = args
			return sh.Channel().Print(strings.Join(args, " "), ioctrl.EndL)
		},
	}))
	f.exec(t, "echo a  b")
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, "a b\n", f.out.String())

	assert.ErrorIs(t, f.sh.Register(Command{Name: "echo"}), ErrDuplicateCommand)
	assert.ErrorIs(t, f.sh.Register(Command{Name: "quit"}), ErrDuplicateCommand)
}

func TestPanickingCommand(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.sh.Register(Command{
		Name: "boom",
		Fn:   func(*Shell, []string) error { panic("kaboom") },
	}))
	_, err := f.sh.Exec("boom")
	assert.EqualError(t, err, "boom: kaboom")
	f.exec(t, "list")
}

func TestApply(t *testing.T) {
	f := setup(t)
	cfg := config.Default()
	cfg.Permit = config.Permit{Verbosity: ioctrl.Chatty, Categories: ioctrl.CatNormal | ioctrl.CatError}
	cfg.Echo = config.Echo{Mode: ioctrl.EchoDirect, Verbosity: ioctrl.Quiet, Categories: ioctrl.CatAll}
	cfg.Format.Prompt = "red"
	f.sh.Apply(cfg)

	vrb, cat := f.sh.ch.Window()
	assert.Equal(t, ioctrl.Chatty, vrb)
	assert.Equal(t, ioctrl.CatNormal|ioctrl.CatError, cat)
	assert.Equal(t, []ioformat.Flag{ioformat.FG(ioformat.Red)}, f.sh.prompt)

	// Normal messages are no longer echoed, quiet ones are.
	f.exec(t, "list", "shutup tmi")
	assert.Equal(t, "Permitting verbosity up to tmi, categories normal|error\n", f.out.String())
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	require.NoError(t, os.WriteFile(good, []byte("# setup\nshutup debug\n\nlist\nquit\nnope\n"), 0600))
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("list\nnope\nlist\n"), 0600))
	binary := filepath.Join(dir, "binary")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe}, 0600))

	f := setup(t)
	require.NoError(t, f.sh.Script(good))
	assert.Contains(t, f.out.String(), "Leaving test shell.")

	err := f.sh.Script(bad)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), bad+":2:")

	assert.ErrorIs(t, f.sh.Script(binary), errSourceNotUTF8)
	assert.ErrorIs(t, f.sh.Script(filepath.Join(dir, "missing")), os.ErrNotExist)
}

func TestShell_WithDBHistory(t *testing.T) {
	st := store.MustTempStore(t)
	f := setup(t)
	f.sh.history = st
	f.exec(t, "list", "list", "speakup")

	cmds, err := st.CmdsWithSeq(0, 100)
	require.NoError(t, err)
	assert.Equal(t, []storedefs.Cmd{{Text: "list", Seq: 1}, {Text: "speakup", Seq: 2}}, cmds)

	f.exec(t, "!1")
	_, err = f.sh.Exec("!5")
	assert.True(t, errors.Is(err, storedefs.ErrNoMatchingCmd))
}

func TestMemHistory(t *testing.T) {
	storetest.TestCmd(t, newMemHistory())
}

var errBrokenOutput = errors.New("broken output")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBrokenOutput }

func TestCommands_ReportWriteErrors(t *testing.T) {
	for _, line := range []string{"help", "help list", "list", "history", "shutup chatty", "speakup"} {
		f := setup(t, channel.WithStdout(brokenWriter{}))
		_, err := f.sh.Exec(line)
		assert.ErrorIs(t, err, errBrokenOutput, line)
	}
}
