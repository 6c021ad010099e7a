package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"rpbot/core/interaction"
	"rpbot/feature/setup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	setupServerID  uint64
	setupUserID    uint64
	setupChannelID uint64
	setupMode      string
	setupLocale    string
	setupYes       bool
)

// setupCmd runs one setup from the terminal.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the managed roles and channels of a server",
	Long: `Provisions the roles, categories and channels of a server linked to a universe.

When the server was set up before, the overwrite is confirmed on the terminal
instead of through a prompt on the platform.

Examples:
  # Full setup with interactive confirmation
  setup --server 123456789012345678

  # Roles and roads only, auto-confirm
  setup --server 123456789012345678 --mode partial --yes`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().Uint64Var(&setupServerID, "server", 0, "Server ID to set up")
	setupCmd.Flags().Uint64Var(&setupUserID, "user", 0, "User the setup runs on behalf of")
	setupCmd.Flags().Uint64Var(&setupChannelID, "channel", 0, "Channel the setup was requested from")
	setupCmd.Flags().StringVar(&setupMode, "mode", string(setup.ModeFull), "Setup mode: full or partial")
	setupCmd.Flags().StringVar(&setupLocale, "locale", "", "Locale of resource names and messages")
	setupCmd.Flags().BoolVar(&setupYes, "yes", false, "Auto-confirm overwriting an existing setup (non-interactive)")
	_ = setupCmd.MarkFlagRequired("server")

	RootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	mode, err := setup.ParseMode(setupMode)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logg.Sync()

	locale := setupLocale
	if locale == "" {
		locale = rt.cfg.I18n.DefaultLocale
	}

	confirmer := &terminalConfirmer{
		in:      os.Stdin,
		out:     cmd.OutOrStdout(),
		yes:     setupYes,
		timeout: rt.cfg.Setup.ConfirmTimeout(),
	}
	orchestrator := setup.NewOrchestrator(rt.engine(), confirmer, rt.logg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	token, runErr := orchestrator.Run(ctx, setup.Request{
		ServerID:  setupServerID,
		UserID:    setupUserID,
		ChannelID: setupChannelID,
		Mode:      mode,
		Locale:    locale,
	})

	key := string(token)
	if runErr != nil {
		key = setup.Key(runErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rt.translator.Translate(ctx, locale, key))

	if runErr != nil {
		return runErr
	}
	rt.logg.Info("Setup command finished", zap.String("token", key))
	return nil
}

// terminalConfirmer asks on the terminal. With yes set it always continues.
type terminalConfirmer struct {
	in      io.Reader
	out     io.Writer
	yes     bool
	timeout time.Duration
}

func (t *terminalConfirmer) Confirm(ctx context.Context, p interaction.Prompt) (interaction.Choice, error) {
	if t.yes {
		fmt.Fprintln(t.out, "Auto-confirmed via --yes flag")
		return interaction.Continue, nil
	}

	fmt.Fprintf(t.out, "%s\nType '%s' or '%s': ", p.Content, p.ContinueLabel, p.CancelLabel)

	answers := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(t.in).ReadString('\n')
		if err != nil && line == "" {
			close(answers)
			return
		}
		answers <- strings.TrimSpace(line)
	}()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case answer, ok := <-answers:
		if ok && (strings.EqualFold(answer, p.ContinueLabel) || strings.EqualFold(answer, "yes")) {
			return interaction.Continue, nil
		}
		return interaction.Cancel, nil
	case <-timer.C:
		return interaction.Cancel, interaction.ErrTimeout
	case <-ctx.Done():
		return interaction.Cancel, ctx.Err()
	}
}
