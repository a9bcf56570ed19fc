package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"caddie/internal/sequencer"
	"caddie/internal/session"
	"caddie/internal/telemetry"
	"caddie/internal/transport"
	"caddie/internal/ui"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper for survey functions to allow mocking in tests
var (
	askOneFunc = survey.AskOne
)

// cmdQuit leaves the console wizard; it exists only on this surface.
const cmdQuit = "/quit"

func init() {
	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Run the shot wizard in the terminal",
		Long: `Run the same wizard the chat bots serve, locally. Options are picked
from a select list, the slash commands work as they do in chat, and
CSV exports are written to --out.`,
		RunE: runConsole,
	}
	consoleCmd.Flags().String("user", "console", "User identifier for the local session")
	consoleCmd.Flags().String("out", ".", "Directory CSV exports are written to")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	// The bare root command reuses this handler without the console flags.
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = "console"
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = "."
	}
	return consoleLoop(cmd, userID, outDir)
}

func consoleLoop(cmd *cobra.Command, userID, outDir string) error {
	core := newConsoleCore()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.Title(viper.GetString("bot_name")+" console"))
	fmt.Fprintln(out, ui.Faint("Slash commands work as in chat. "+cmdQuit+" leaves."))

	reply := core.Start(userID)
	for {
		printReply(cmd, reply, outDir)
		line, err := promptLine(reply)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				fmt.Fprintln(out, ui.Faint("Bye."))
				return nil
			}
			return err
		}
		if line == cmdQuit {
			fmt.Fprintln(out, ui.Faint("Bye."))
			return nil
		}
		reply = transport.Dispatch(core, userID, line)
	}
}

func newConsoleCore() *sequencer.Sequencer {
	logger := telemetry.NewLogger(viper.GetBool("verbose"), viper.GetString("log_file"), true)
	core := sequencer.New(buildCatalog(), session.NewStore(), logger, nil)
	core.SetBotName(viper.GetString("bot_name"))
	return core
}

func printReply(cmd *cobra.Command, r sequencer.Reply, outDir string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Prompt(r.Text))
	for _, att := range r.Attachments {
		path, err := saveAttachment(outDir, att)
		if err != nil {
			fmt.Fprintln(out, ui.Error("Could not save "+att.Name+": "+err.Error()))
			continue
		}
		fmt.Fprintln(out, ui.Success("Saved "+path))
	}
}

// promptLine asks for the next token. Steps with a closed option set become
// a select list with the slash commands appended; free text otherwise.
func promptLine(r sequencer.Reply) (string, error) {
	options := transport.Options(r)
	if len(options) == 0 {
		var line string
		err := askOneFunc(&survey.Input{Message: ">"}, &line)
		return strings.TrimSpace(line), err
	}
	options = append(options, "/"+transport.CmdStats, "/"+transport.CmdHelp, cmdQuit)
	var choice string
	err := askOneFunc(&survey.Select{
		Message:  "Pick:",
		Options:  options,
		PageSize: 12,
	}, &choice)
	return choice, err
}

func saveAttachment(dir string, att sequencer.Attachment) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, att.Name)
	if err := os.WriteFile(path, att.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
