package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/securepay/pkg/utils"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	server  string
	timeout time.Duration
}

// NewRootCommand builds the `securepay-admin` command tree.
// NewRootCommand 构建 `securepay-admin` 命令树。
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "securepay-admin",
		Short: "A CLI tool for inspecting SecurePay risk assessments and plans.",
		Long: `securepay-admin runs the SecurePay risk engine from the command line.
By default every command is evaluated in-process. With --server the risk
commands are sent to a running SecurePay gRPC endpoint instead.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "", "gRPC address of a running SecurePay server (empty runs locally)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "timeout for a single command")

	rootCmd.AddCommand(
		newScoreCmd(opts),
		newLevelCmd(opts),
		newInsightsCmd(opts),
		newVulnerabilitiesCmd(opts),
		newAssessCmd(opts),
		newPlansCmd(opts),
	)
	return rootCmd
}

// Execute is the main entry point for the CLI application.
// Execute 是 CLI 应用程序的主入口点。
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext bounds a command by the --timeout flag.
func (o *options) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.timeout)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := utils.ToJSONPretty(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
