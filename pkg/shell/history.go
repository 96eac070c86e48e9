package shell

import (
	"strings"

	"src.squeak.sh/pkg/store/storedefs"
)

// memHistory is a storedefs.Store that lives in memory. It is used when no
// history database can be opened.
type memHistory struct {
	cmds []storedefs.Cmd
	next int
}

func newMemHistory() *memHistory { return &memHistory{next: 1} }

func (h *memHistory) NextCmdSeq() (int, error) { return h.next, nil }

func (h *memHistory) AddCmd(text string) (int, error) {
	seq := h.next
	h.cmds = append(h.cmds, storedefs.Cmd{Text: text, Seq: seq})
	h.next++
	return seq, nil
}

func (h *memHistory) DelCmd(seq int) error {
	for i, cmd := range h.cmds {
		if cmd.Seq == seq {
			h.cmds = append(h.cmds[:i], h.cmds[i+1:]...)
			break
		}
	}
	return nil
}

func (h *memHistory) Cmd(seq int) (string, error) {
	for _, cmd := range h.cmds {
		if cmd.Seq == seq {
			return cmd.Text, nil
		}
	}
	return "", storedefs.ErrNoMatchingCmd
}

func (h *memHistory) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	for _, cmd := range h.cmds {
		if from <= cmd.Seq && cmd.Seq < upto {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func (h *memHistory) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	for i := len(h.cmds) - 1; i >= 0; i-- {
		cmd := h.cmds[i]
		if cmd.Seq < upto && strings.HasPrefix(cmd.Text, prefix) {
			return cmd, nil
		}
	}
	return storedefs.Cmd{}, storedefs.ErrNoMatchingCmd
}

func (h *memHistory) LastCmd() (storedefs.Cmd, error) {
	if len(h.cmds) == 0 {
		return storedefs.Cmd{}, storedefs.ErrNoMatchingCmd
	}
	return h.cmds[len(h.cmds)-1], nil
}
