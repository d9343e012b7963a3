package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cougarbots/site/pkg/clock"
	"github.com/cougarbots/site/pkg/config"
	"github.com/cougarbots/site/pkg/intro"
)

// timelineLimit 防止错误配置导致无限推进
const timelineLimit = 5 * time.Minute

type timelineOptions struct {
	images int
	skipAt time.Duration
	width  int
	height int
	flash  bool
	output string
}

// timelineEvent 一次可见状态变化
type timelineEvent struct {
	At       time.Duration `yaml:"-"`
	AtMs     float64       `yaml:"at_ms"`
	Change   string        `yaml:"change"`
	Phase    string        `yaml:"phase"`
	Index    int           `yaml:"index"`
	Darkness float64       `yaml:"darkness"`
}

func newTimelineCommand(root *rootOptions) *cobra.Command {
	opts := &timelineOptions{}
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print every state change of a headless intro run",
		Long: `Runs the intro on a virtual clock without a window and prints each visible
state change with its exact time: montage advances, the caption switch, title,
subtitle, reveal, slide-up and done.

Examples:
  cougarbots timeline
  cougarbots timeline --images 8 --skip-at 1.2s
  cougarbots timeline --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadIntro()
			if err != nil {
				return err
			}
			if opts.images > 0 {
				cfg.ImageCount = opts.images
			}
			events, err := recordTimeline(cfg, opts)
			if err != nil {
				return err
			}
			return writeTimeline(cmd.OutOrStdout(), events, opts.output)
		},
	}
	cmd.Flags().IntVar(&opts.images, "images", 0, "override the montage image count")
	cmd.Flags().DurationVar(&opts.skipAt, "skip-at", 0, "press skip at this time (0 = never)")
	cmd.Flags().IntVar(&opts.width, "width", config.WindowWidth, "viewport width")
	cmd.Flags().IntVar(&opts.height, "height", config.WindowHeight, "viewport height")
	cmd.Flags().BoolVar(&opts.flash, "flash", false, "include flash pulses")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, yaml)")
	return cmd
}

// recordTimeline 逐个触发计时器并记录快照的变化
//
// 时钟每次直接跳到下一个到期时间，所以记录的时间是精确的触发时刻。
func recordTimeline(cfg *config.IntroConfig, opts *timelineOptions) ([]timelineEvent, error) {
	clk := clock.New()
	viewport := intro.NewViewport(opts.width, opts.height)
	done := false
	seq, err := intro.Mount(intro.Options{
		Images:    cfg.ImagePaths(),
		Timings:   cfg.Timings.ToIntro(),
		Scheduler: clk,
		Viewport:  viewport,
		OnDone:    func() { done = true },
	})
	if err != nil {
		return nil, fmt.Errorf("mount intro: %w", err)
	}
	defer seq.Unmount()

	var events []timelineEvent
	prev := seq.Snapshot()
	record := func(change string) {
		st := seq.Snapshot()
		events = append(events, timelineEvent{
			At:       clk.Now(),
			AtMs:     float64(clk.Now()) / float64(time.Millisecond),
			Change:   change,
			Phase:    st.Phase.String(),
			Index:    st.Index,
			Darkness: st.Darkness,
		})
	}
	record("mount " + intro.ClassifyViewport(opts.width, opts.height).String())

	skipPending := opts.skipAt > 0
	for !done {
		due, ok := clk.NextDue()
		if !ok {
			return events, errors.New("timeline stalled with no pending timers")
		}
		if skipPending && opts.skipAt <= due {
			clk.Advance(opts.skipAt - clk.Now())
			skipPending = false
			seq.Skip()
			if seq.Skipped() {
				record("skip")
			} else {
				record("skip ignored")
			}
			prev = seq.Snapshot()
			continue
		}
		if due > timelineLimit {
			return events, fmt.Errorf("timeline exceeded %s", timelineLimit)
		}
		clk.Advance(due - clk.Now())

		st := seq.Snapshot()
		for _, change := range diffStates(prev, st, opts.flash) {
			record(change)
		}
		prev = st
	}
	// 完成之后才到的跳过同样要记录
	if skipPending {
		if opts.skipAt > clk.Now() {
			clk.Advance(opts.skipAt - clk.Now())
		}
		seq.Skip()
		record("skip ignored")
	}
	return events, nil
}

// diffStates 列出两个快照之间的可见变化
func diffStates(prev, cur intro.State, flash bool) []string {
	var changes []string
	if cur.Index != prev.Index {
		changes = append(changes, fmt.Sprintf("advance %d", cur.Index))
	}
	if flash && cur.Flash != prev.Flash {
		if cur.Flash {
			changes = append(changes, "flash on")
		} else {
			changes = append(changes, "flash off")
		}
	}
	if cur.Caption != prev.Caption {
		changes = append(changes, "caption "+cur.Caption.String())
	}
	if cur.Phase != prev.Phase {
		changes = append(changes, "phase "+cur.Phase.String())
	}
	if cur.SlideUp && !prev.SlideUp {
		changes = append(changes, "slide-up")
	}
	return changes
}

func writeTimeline(w io.Writer, events []timelineEvent, format string) error {
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("encode timeline: %w", err)
		}
		return enc.Close()
	case "text", "":
		fmt.Fprintf(w, "%10s  %-16s  %-8s  %5s  %s\n", "TIME", "CHANGE", "PHASE", "IMAGE", "DARKNESS")
		for _, e := range events {
			fmt.Fprintf(w, "%8.1fms  %-16s  %-8s  %5d  %.2f\n", e.AtMs, e.Change, e.Phase, e.Index+1, e.Darkness)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (text, yaml)", format)
	}
}
