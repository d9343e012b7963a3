package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cougarbots/site/internal/watch"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/tui"
)

type previewOptions struct {
	watch      bool
	exitOnDone bool
	frame      time.Duration
}

func newPreviewCommand(root *rootOptions) *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the intro timeline in the terminal",
		Long: `Runs the intro state machine in the terminal and shows the phase, the
current montage image, the darkness level and the visible text.

Keys: esc/space skip, r replay, q quit.
With --watch the config file is reloaded on save and the preview restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), root, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the intro config when it changes on disk")
	cmd.Flags().BoolVar(&opts.exitOnDone, "exit", false, "quit when the intro finishes")
	cmd.Flags().DurationVar(&opts.frame, "frame", tui.DefaultFrame, "virtual time per frame")
	return cmd
}

func runPreview(ctx context.Context, root *rootOptions, opts *previewOptions) error {
	cfg, err := root.loadIntro()
	if err != nil {
		return err
	}

	model, err := tui.New(cfg, tui.Options{
		Frame:      opts.frame,
		ExitOnDone: opts.exitOnDone,
		Logger:     root.logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.watch {
		if err := startWatch(ctx, root, program); err != nil {
			return err
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// startWatch 把磁盘上的配置变化转发给预览程序
func startWatch(ctx context.Context, root *rootOptions, program *tea.Program) error {
	path, ok := root.diskPath()
	if !ok {
		return fmt.Errorf("--watch needs a config file on disk, %s not found", root.configPath)
	}
	w, err := watch.New(path, watch.Options{
		Logger:   root.logger,
		OnReload: func(cfg *config.IntroConfig) { program.Send(tui.ConfigMsg{Config: cfg}) },
		OnError:  func(err error) { program.Send(tui.ReloadErrMsg{Err: err}) },
	})
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			root.logger.Warn("config watcher stopped", zap.Error(err))
		}
	}()
	return nil
}
