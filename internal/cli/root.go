// Package cli 实现 cougarbots 命令行入口
//
// 不带子命令时直接打开窗口播放（与 play 相同），其余子命令用于在没有
// 图形环境时检查开场动画：终端预览、时间线导出和视口分类。
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cougarbots/site/internal/logging"
	"github.com/cougarbots/site/pkg/config"
)

// rootOptions 所有子命令共享的参数
type rootOptions struct {
	verbose    bool
	configPath string

	env    config.Env
	logger *zap.Logger
}

// Execute 解析 os.Args 并执行对应命令
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	play := &playOptions{}

	rootCmd := &cobra.Command{
		Use:   "cougarbots",
		Short: "Canterbury Cougarbots intro sequence",
		Long: `Plays the Canterbury Cougarbots site intro: an accelerating photo montage,
the team title, the season subtitle and the slide-up reveal of the team page.

Running without a subcommand opens the window, same as "cougarbots play".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, play)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging (also COUGARBOTS_VERBOSE)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultIntroConfigPath, "intro config file (also COUGARBOTS_INTRO_CONFIG)")

	rootCmd.AddCommand(newPlayCommand(opts, play))
	rootCmd.AddCommand(newPreviewCommand(opts))
	rootCmd.AddCommand(newTimelineCommand(opts))
	rootCmd.AddCommand(newClassifyCommand())

	return rootCmd
}

// init 合并环境变量并创建日志器；命令行参数优先于环境变量
func (o *rootOptions) init(cmd *cobra.Command) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	o.env = env
	if !cmd.Flags().Changed("verbose") && env.Verbose {
		o.verbose = true
	}
	if !cmd.Flags().Changed("config") && env.IntroConfig != "" {
		o.configPath = env.IntroConfig
	}

	logger, err := logging.New(o.verbose)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func (o *rootOptions) loadIntro() (*config.IntroConfig, error) {
	cfg, err := config.LoadIntroConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("开场动画配置加载失败: %w", err)
	}
	o.logger.Debug("intro config loaded",
		zap.String("path", o.configPath),
		zap.Int("images", cfg.ImageCount))
	return cfg, nil
}

// diskPath 配置在磁盘上的位置；热重载只能监听磁盘文件
func (o *rootOptions) diskPath() (string, bool) {
	if _, err := os.Stat(o.configPath); err != nil {
		return "", false
	}
	return o.configPath, true
}
