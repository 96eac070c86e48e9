package shell

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"src.squeak.sh/pkg/decor"
	"src.squeak.sh/pkg/errutil"
	"src.squeak.sh/pkg/ioctrl"
	"src.squeak.sh/pkg/ioformat"
	"src.squeak.sh/pkg/store/storedefs"
	"src.squeak.sh/pkg/stringify"
)

// Errors of command lines.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
)

func init() {
	stringify.RegisterErrorKind(ErrUnknownCommand, "UNKNOWN COMMAND")
	stringify.RegisterErrorKind(storedefs.ErrNoMatchingCmd, "NO MATCHING COMMAND")
}

// ArgCountError is returned when a command is called with the wrong number of
// arguments.
type ArgCountError struct {
	Name      string
	Want, Got int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("%s: wrong number of arguments: want %d, got %d", e.Name, e.Want, e.Got)
}

// ErrorKind implements stringify.Kinded.
func (e *ArgCountError) ErrorKind() string { return "USAGE ERROR" }

// Command is a command of the shell.
type Command struct {
	Name string
	// Short is shown by "help"; Long by "help <name>".
	Short, Long string
	// Args is the number of arguments the command takes, unless Variadic is
	// true.
	Args     int
	Variadic bool
	Fn       func(sh *Shell, args []string) error
}

// Register adds a command to the shell.
func (sh *Shell) Register(cmd Command) error {
	if _, ok := sh.commands[cmd.Name]; ok || isQuit(cmd.Name) {
		return fmt.Errorf("%s: %w", cmd.Name, ErrDuplicateCommand)
	}
	sh.commands[cmd.Name] = cmd
	return nil
}

// Commands returns the names of the registered commands, sorted.
func (sh *Shell) Commands() []string {
	names := make([]string, 0, len(sh.commands))
	for name := range sh.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func isQuit(name string) bool { return name == "quit" || name == "exit" }

var defaultCommands = []Command{
	{
		Name: "help", Short: "Show the available commands",
		Long:     "Without arguments, lists the commands with a short description. With command names, shows their long descriptions.",
		Variadic: true, Fn: (*Shell).help,
	},
	{
		Name: "list", Short: "List the names of all commands",
		Long: "Lists the names of all registered commands, three per line.",
		Fn:   (*Shell).list,
	},
	{
		Name: "history", Short: "Show previously entered commands",
		Long:     "Shows previously entered commands, newest first. With command names, shows only the entries of those commands. An entry can be run again with !N, such as !2.",
		Variadic: true, Fn: (*Shell).showHistory,
	},
	{
		Name: "clear", Short: "Clear the screen",
		Long: "Clears the screen and moves the cursor to the top left corner.",
		Fn:   (*Shell).clear,
	},
	{
		Name: "shutup", Short: "Suppress messages",
		Long: "Suppresses a category (normal, warning, error, debug, testing; combined with |) or every verbosity above a tier (quiet, chatty, tmi). " +
			"The name normal is taken as a category.",
		Args: 1, Fn: (*Shell).shutUp,
	},
	{
		Name: "speakup", Short: "Permit messages",
		Long: "Permits a category or a verbosity tier, named as for shutup. Without arguments, permits everything.",
		Variadic: true, Fn: (*Shell).speakUp,
	},
}

const helpColumn = 20

func (sh *Shell) help(args []string) error {
	ch := sh.ch
	if len(args) == 0 {
		errs := sh.banner("Help", "The following commands are available")
		errs = append(errs, ch.Print(ioformat.FGWhite, "quit", ioformat.FGGreen, " or ",
			ioformat.FGWhite, "exit", ioformat.FGGreen, " to leave ", sh.name, " shell", ioctrl.EndL))
		for _, name := range sh.Commands() {
			errs = append(errs, ch.Print(ioformat.FGWhite, decor.Pad(helpColumn, decor.AlignLeft, name, ' '),
				ioformat.FGGreen, sh.commands[name].Short, ioctrl.EndL))
		}
		errs = append(errs, ch.Print("Use help <command> for a longer description, such as 'help history'", ioctrl.EndL))
		return errutil.Multi(errs...)
	}
	errs := sh.banner("Help for the commands:")
	for _, name := range args {
		cmd, ok := sh.commands[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrUnknownCommand))
			continue
		}
		errs = append(errs, ch.Print(ioformat.FGWhite, decor.Pad(helpColumn, decor.AlignLeft, name, ' '),
			ioformat.FGGreen, cmd.Long, ioctrl.EndL))
	}
	return errutil.Multi(errs...)
}

// banner prints lines centered in a box of asterisks as wide as the output.
// It returns the errors of the writes, nil ones included.
func (sh *Shell) banner(lines ...string) []error {
	errs := []error{sh.ch.Print(ioformat.FGGreen, sh.decor.Fill('*'), ioctrl.LF)}
	for _, line := range lines {
		errs = append(errs, sh.ch.Print("*", decor.Pad(sh.decor.Width()-2, decor.AlignCenter, " "+line+" ", ' '), "*", ioctrl.LF))
	}
	return append(errs, sh.ch.Print(sh.decor.Fill('*'), ioctrl.EndL))
}

func (sh *Shell) list([]string) error {
	ch := sh.ch
	errs := []error{ch.Print(ioformat.FGGreen, "These are the commands currently available:", ioctrl.LF,
		ioformat.FGWhite, "exit", ioformat.FGGreen, " or ", ioformat.FGWhite, "quit",
		ioformat.FGGreen, " to end the session.", ioctrl.EndL)}
	names := sh.Commands()
	for i := 0; i < len(names); i += 3 {
		row := names[i:min(i+3, len(names))]
		errs = append(errs, ch.Print(strings.Join(row, "\t"), ioctrl.EndL))
	}
	return errutil.Multi(errs...)
}

func (sh *Shell) showHistory(words []string) error {
	next, err := sh.history.NextCmdSeq()
	if err != nil {
		return err
	}
	cmds, err := sh.history.CmdsWithSeq(0, next)
	if err != nil {
		return err
	}
	var errs []error
	for _, cmd := range slices.Backward(cmds) {
		if len(words) > 0 && !slices.Contains(words, firstWord(cmd.Text)) {
			continue
		}
		errs = append(errs, sh.ch.Print(cmd.Seq, "  ", cmd.Text, ioctrl.EndL))
	}
	errs = append(errs, sh.ch.Print("Use ! to recall a command, such as !2", ioctrl.EndL))
	return errutil.Multi(errs...)
}

func firstWord(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func (sh *Shell) clear([]string) error {
	if sh.ch.Format().Standard != ioformat.StdANSI {
		return nil
	}
	return sh.ch.Print("\033[2J\033[1;1H", ioctrl.End|ioctrl.Flush)
}

// parseWindow parses the argument of shutup and speakup. Exactly one of the
// results is meaningful, as told by isVrb.
func parseWindow(arg string) (vrb ioctrl.Verbosity, cat ioctrl.Category, isVrb bool, err error) {
	if arg != ioctrl.Normal.String() {
		if v, err := ioctrl.ParseVerbosity(arg); err == nil {
			return v, 0, true, nil
		}
	}
	cat, err = ioctrl.ParseCategory(arg)
	if err != nil {
		return 0, 0, false, &ioformat.InvalidArgumentError{
			What: "window", Reason: fmt.Sprintf("%q is neither a verbosity nor a category", arg)}
	}
	return 0, cat, false, nil
}

func (sh *Shell) shutUp(args []string) error {
	vrb, cat, isVrb, err := parseWindow(args[0])
	if err != nil {
		return err
	}
	if isVrb {
		sh.ch.ShutUpVrb(vrb)
	} else {
		sh.ch.ShutUpCat(cat)
	}
	return sh.showWindow()
}

func (sh *Shell) speakUp(args []string) error {
	if len(args) == 0 {
		sh.ch.SpeakUp()
		return sh.showWindow()
	}
	for _, arg := range args {
		vrb, cat, isVrb, err := parseWindow(arg)
		if err != nil {
			return err
		}
		if isVrb {
			sh.ch.SpeakUpVrb(vrb)
		} else {
			sh.ch.SpeakUpCat(cat)
		}
	}
	return sh.showWindow()
}

// showWindow prints the permission window as a quiet message.
func (sh *Shell) showWindow() error {
	vrb, cat := sh.ch.Window()
	return sh.ch.Vrb(ioctrl.Quiet).
		Print("Permitting verbosity up to ", vrb.String(), ", categories ", cat.String(), ioctrl.EndL)
}
