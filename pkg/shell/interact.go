package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"src.squeak.sh/pkg/channel"
	"src.squeak.sh/pkg/config"
	"src.squeak.sh/pkg/decor"
	"src.squeak.sh/pkg/ioctrl"
	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/store/storedefs"
	"src.squeak.sh/pkg/sys"
)

// Prompt is printed before each line read in interactive mode.
const Prompt = ">>> "

// Config keeps the dependencies of a Shell.
type Config struct {
	// Name is shown in the greeting and farewell.
	Name    string
	Channel *channel.Channel
	// Columns is the width of the output. It defaults to
	// sys.DefaultColumns.
	Columns decor.Columns
	// History defaults to an in-memory history.
	History storedefs.Store
	// Updates, if not nil, delivers configurations to apply between command
	// lines.
	Updates <-chan *config.Config
}

// Shell reads command lines and reports on a channel.
type Shell struct {
	name     string
	ch       *channel.Channel
	decor    decor.Decor
	history  storedefs.Store
	updates  <-chan *config.Config
	commands map[string]Command
	prompt   []ioformat.Flag
}

// New creates a Shell with the default commands.
func New(cfg Config) *Shell {
	if cfg.Columns == nil {
		cfg.Columns = decor.Fixed(sys.DefaultColumns)
	}
	if cfg.History == nil {
		cfg.History = newMemHistory()
	}
	sh := &Shell{
		name:     cfg.Name,
		ch:       cfg.Channel,
		decor:    decor.New(cfg.Columns),
		history:  cfg.History,
		updates:  cfg.Updates,
		commands: make(map[string]Command),
	}
	for _, cmd := range defaultCommands {
		sh.commands[cmd.Name] = cmd
	}
	return sh
}

// Channel returns the channel the shell reports on.
func (sh *Shell) Channel() *channel.Channel { return sh.ch }

// Apply applies a configuration to the echo and the permission window of the
// channel, and to the prompt. The base profile is only read when the channel
// is created.
func (sh *Shell) Apply(cfg *config.Config) {
	sh.ch.ConfigureEcho(cfg.Echo.Mode, cfg.Echo.Verbosity, cfg.Echo.Categories)
	sh.ch.SpeakUp()
	sh.ch.ShutUpVrb(cfg.Permit.Verbosity)
	if cfg.Permit.Categories != ioctrl.CatAll {
		sh.ch.ShutUpCat(ioctrl.CatAll &^ cfg.Permit.Categories)
	}
	sh.prompt = cfg.Format.PromptFlags()
}

func (sh *Shell) applyUpdates() {
	for {
		select {
		case cfg, ok := <-sh.updates:
			if !ok {
				sh.updates = nil
				return
			}
			logger.Println("applying reloaded configuration")
			sh.Apply(cfg)
		default:
			return
		}
	}
}

// Interact runs the read-execute loop until the input ends or a quit
// command. The prompt is printed only if prompt is true.
func (sh *Shell) Interact(in io.Reader, prompt bool) error {
	sh.ch.Print(ioformat.FGGreen, "Now running in ", sh.name, " shell.", ioctrl.EndL)
	r := bufio.NewReader(in)
	for {
		sh.applyUpdates()
		if prompt {
			sh.ch.Set(sh.prompt...)
			sh.ch.Print(Prompt, ioctrl.End|ioctrl.Flush)
		}
		line, err := r.ReadString('\n')
		if line != "" {
			quit, execErr := sh.Exec(line)
			if execErr != nil {
				sh.ShowError(execErr)
			}
			if quit {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ShowError reports err in the error category.
func (sh *Shell) ShowError(err error) {
	sh.ch.Vrb(ioctrl.Quiet).Cat(ioctrl.CatError).Print(err, ioctrl.EndL)
}

// Exec runs one command line. It reports whether the line asked to leave the
// shell. A line of the form !N runs the history entry N instead.
func (sh *Shell) Exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		line, err = sh.recall(rest)
		if err != nil {
			return false, err
		}
		sh.ch.Print(ioctrl.Chatty, line, ioctrl.EndL)
	}
	words := strings.Fields(line)
	name, args := words[0], words[1:]
	if isQuit(name) {
		sh.ch.Print(ioformat.FGGreen, "Leaving ", sh.name, " shell.", ioctrl.EndL)
		return true, nil
	}
	cmd, ok := sh.commands[name]
	if !ok {
		return false, fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}
	if !cmd.Variadic && len(args) != cmd.Args {
		return false, &ArgCountError{name, cmd.Args, len(args)}
	}
	sh.remember(line)
	return false, sh.call(cmd, args)
}

func (sh *Shell) recall(s string) (string, error) {
	seq, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("!%s: %w", s, ErrUnknownCommand)
	}
	line, err := sh.history.Cmd(seq)
	if err != nil {
		return "", fmt.Errorf("no command matching %d: %w", seq, err)
	}
	return line, nil
}

// remember adds line to the history unless it repeats the last entry.
func (sh *Shell) remember(line string) {
	if last, err := sh.history.LastCmd(); err == nil && last.Text == line {
		return
	}
	if _, err := sh.history.AddCmd(line); err != nil {
		logger.Println("add to history:", err)
	}
}

func (sh *Shell) call(cmd Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("command %s panicked: %v\n%s", cmd.Name, r, sys.DumpStack())
			err = fmt.Errorf("%s: %v", cmd.Name, r)
		}
	}()
	return cmd.Fn(sh, args)
}
