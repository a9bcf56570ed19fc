// Package transport connects the shot wizard to chat surfaces. Adapters own
// the wire protocol (Telegram long polling, Slack Socket Mode) and render each
// sequencer.Reply as the surface allows; the wizard itself stays transport
// agnostic behind the Core interface.
package transport

import (
	"strings"

	"caddie/internal/sequencer"
)

// Core is the sequencer surface the adapters drive. Every method takes the
// caller's stable user identifier and returns exactly one reply.
type Core interface {
	Start(userID string) sequencer.Reply
	Input(userID, text string) sequencer.Reply
	StartShot(userID string) sequencer.Reply
	AdvanceHole(userID string) sequencer.Reply
	Stats(userID string) sequencer.Reply
	EndSession(userID string) sequencer.Reply
	Help(userID string) sequencer.Reply
}

// Slash commands shared by every adapter.
const (
	CmdStart      = "start"
	CmdShot       = "shot"
	CmdNextHole   = "next_hole"
	CmdStats      = "stats"
	CmdEndSession = "end_session"
	CmdHelp       = "help"
)

// Dispatch routes one incoming line to the core: a recognized /command calls
// its handler, anything else is fed to the wizard as a raw token. An unknown
// /command falls through as raw input too, so the wizard can re-prompt.
func Dispatch(core Core, userID, text string) sequencer.Reply {
	line := strings.TrimSpace(text)
	if strings.HasPrefix(line, "/") {
		cmd := strings.TrimPrefix(strings.Fields(line)[0], "/")
		// Telegram appends the bot name in group chats: /stats@CaddieBot.
		if i := strings.Index(cmd, "@"); i >= 0 {
			cmd = cmd[:i]
		}
		if r, ok := DispatchCommand(core, userID, cmd); ok {
			return r
		}
	}
	return core.Input(userID, line)
}

// DispatchCommand invokes the handler for a bare command name, reporting
// whether the name was recognized.
func DispatchCommand(core Core, userID, cmd string) (sequencer.Reply, bool) {
	switch cmd {
	case CmdStart:
		return core.Start(userID), true
	case CmdShot:
		return core.StartShot(userID), true
	case CmdNextHole:
		return core.AdvanceHole(userID), true
	case CmdStats:
		return core.Stats(userID), true
	case CmdEndSession:
		return core.EndSession(userID), true
	case CmdHelp:
		return core.Help(userID), true
	}
	return sequencer.Reply{}, false
}

// Options flattens a reply's offered set in presentation order: the current
// step's choices first, control tokens after.
func Options(r sequencer.Reply) []string {
	out := make([]string, 0, len(r.Choices)+len(r.Controls))
	out = append(out, r.Choices...)
	out = append(out, r.Controls...)
	return out
}

// Chunk splits options into keyboard rows of at most columns entries.
// A non-positive columns means one row per option.
func Chunk(options []string, columns int) [][]string {
	if columns <= 0 {
		columns = 1
	}
	var rows [][]string
	for start := 0; start < len(options); start += columns {
		end := start + columns
		if end > len(options) {
			end = len(options)
		}
		rows = append(rows, options[start:end])
	}
	return rows
}
