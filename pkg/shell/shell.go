// Package shell is the interactive front end of squeak: a small command
// shell that reports on a channel.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"src.squeak.sh/pkg/channel"
	"src.squeak.sh/pkg/config"
	"src.squeak.sh/pkg/logutil"
	"src.squeak.sh/pkg/prog"
	"src.squeak.sh/pkg/store"
	"src.squeak.sh/pkg/store/storedefs"
	"src.squeak.sh/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct {
	// Name is the name of the shell. It defaults to "squeak".
	Name string
}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one script can be given")
	}
	name := p.Name
	if name == "" {
		name = "squeak"
	}

	cfgPath, watch := configPath(fds, f)
	cfg, err := config.Load(cfgPath, f.Env...)
	if err != nil {
		return err
	}
	if cfg.Log != "" && f.Log == "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	tw := sys.NewTermWidth(fds[1])
	defer tw.Close()
	ch := channel.New(
		channel.WithStdout(fds[1]), channel.WithStderr(fds[2]),
		channel.WithBase(cfg.Format.Flags(sys.IsATTY(fds[1].Fd()))...))

	history, closeHistory := openHistory(fds, f, cfg)
	defer closeHistory()

	shCfg := Config{Name: name, Channel: ch, Columns: tw, History: history}
	if len(args) == 0 && watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		updates, err := config.Watch(ctx, cfgPath, config.DefaultDebounce, f.Env...)
		if err != nil {
			logger.Println("not watching configuration:", err)
		} else {
			shCfg.Updates = updates
		}
	}
	sh := New(shCfg)
	sh.Apply(cfg)

	if len(args) == 1 {
		if err := sh.Script(args[0]); err != nil {
			sh.ShowError(err)
			return prog.Exit(2)
		}
		return nil
	}
	return sh.Interact(fds[0], sys.IsATTY(fds[0].Fd()))
}

// configPath returns the configuration file to load and whether it should be
// watched. A missing default file means no file.
func configPath(fds [3]*os.File, f *prog.Flags) (string, bool) {
	if f.Config != "" {
		return f.Config, true
	}
	p, err := ConfigPath()
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
		return "", false
	}
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return "", false
	}
	return p, true
}

// openHistory opens the history database, falling back to an in-memory
// history when it cannot be opened.
func openHistory(fds [3]*os.File, f *prog.Flags, cfg *config.Config) (storedefs.Store, func()) {
	if f.NoHistory {
		return newMemHistory(), func() {}
	}
	path := f.History
	if path == "" {
		path = cfg.History
	}
	if path == "" {
		var err error
		path, err = HistoryPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return newMemHistory(), func() {}
		}
	}
	st, err := store.NewStore(path)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
		fmt.Fprintln(fds[2], "Command history will not be saved.")
		return newMemHistory(), func() {}
	}
	return st, func() {
		if err := st.Close(); err != nil {
			logger.Println("close history:", err)
		}
	}
}
