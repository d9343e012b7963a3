package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cougarbots/site/pkg/intro"
	"github.com/cougarbots/site/pkg/scenes"
	"github.com/cougarbots/site/pkg/utils"
)

type classifyOptions struct {
	width, height int
	safeTop       int
	safeBottom    int
	layout        bool
}

func newClassifyCommand() *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show the device class and intro layout for a viewport size",
		Long: `Prints whether a viewport counts as a phone (width <= 640, height <= 720 or
height/width >= 1.35) and, with --layout, the rectangles the intro uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.width <= 0 || opts.height <= 0 {
				return errors.New("--width and --height must be positive")
			}
			out := cmd.OutOrStdout()
			class := intro.ClassifyViewport(opts.width, opts.height)
			fmt.Fprintf(out, "%dx%d: %s\n", opts.width, opts.height, class)
			if !opts.layout {
				return nil
			}

			safe := utils.SafeArea{Top: opts.safeTop, Bottom: opts.safeBottom}
			l := scenes.ComputeIntroLayout(opts.width, opts.height, class == intro.DevicePhone, safe)
			fmt.Fprintf(out, "portrait  %v\n", l.Portrait)
			fmt.Fprintf(out, "caption   %v\n", l.Caption)
			fmt.Fprintf(out, "skip      %v\n", l.Skip)
			fmt.Fprintf(out, "hint y    %d\n", l.HintY)
			fmt.Fprintf(out, "logo      %d\n", l.LogoSize)
			fmt.Fprintf(out, "title     %.1fpx  subtitle %.1fpx\n", l.TitleSize, l.SubtitleSize)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", 0, "viewport width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "viewport height in pixels")
	cmd.Flags().IntVar(&opts.safeTop, "safe-top", 0, "top safe-area inset (phones only)")
	cmd.Flags().IntVar(&opts.safeBottom, "safe-bottom", 0, "bottom safe-area inset (phones only)")
	cmd.Flags().BoolVar(&opts.layout, "layout", false, "also print the intro layout")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
