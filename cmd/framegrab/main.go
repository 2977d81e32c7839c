package main

import (
	"context"
	"fmt"
	"os"

	"github.com/framegrab/framegrab/internal/extract"
	"github.com/framegrab/framegrab/internal/infra/config"
	"github.com/framegrab/framegrab/pkg/logger"
	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.LoadCLI()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	app := &cli.Command{
		Name:      "framegrab",
		Usage:     "Extract still frames from a video file as JPEG images",
		ArgsUsage: "<video>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for the extracted frames",
				Value:   cfg.OutputDir,
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Keep every N-th frame",
				Value:   cfg.Interval,
			},
			&cli.Float64Flag{
				Name:  "fps",
				Usage: "Target output frame rate (overrides --interval when below the source rate)",
			},
			&cli.IntFlag{
				Name:  "max-frames",
				Usage: "Stop after saving this many frames (0 = no limit)",
			},
			&cli.IntFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Usage:   "JPEG quality, 1-100",
				Value:   cfg.JPEGQuality,
			},
			&cli.Float64Flag{
				Name:  "every",
				Usage: "Keep one frame per this many seconds of video (instead of --interval/--fps)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress the progress bar",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("expected exactly one video path", 2)
			}
			if cmd.Float64("every") > 0 && (cmd.IsSet("interval") || cmd.IsSet("fps")) {
				return cli.Exit("--every cannot be combined with --interval or --fps", 2)
			}
			return run(ctx, cmd, cfg)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command, cfg *config.CLI) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	videoPath := cmd.Args().First()
	extractor := extract.New(log)

	opts := extract.Options{
		OutputDir: cmd.String("output"),
		Interval:  cmd.Int("interval"),
		TargetFPS: cmd.Float64("fps"),
		MaxFrames: cmd.Int("max-frames"),
		Quality:   cmd.Int("quality"),
	}

	if every := cmd.Float64("every"); every > 0 {
		info, err := extractor.Probe(videoPath)
		if err != nil {
			return err
		}
		opts.Interval = extract.IntervalForSeconds(info.FPS, every)
		opts.TargetFPS = 0
	}

	plan, err := extractor.Plan(videoPath, opts)
	if err != nil {
		return err
	}

	printPlan(plan)

	if !cmd.Bool("quiet") && plan.Estimated > 0 {
		bar := progressbar.Default(int64(plan.Estimated), "extracting")
		opts.Progress = func(saved int) {
			_ = bar.Add(1)
		}
	}

	result, err := extractor.Extract(ctx, videoPath, opts)
	if err != nil {
		return err
	}

	fmt.Printf("\nExtraction complete.\n")
	fmt.Printf("Saved frames: %d\n", result.SavedCount)
	fmt.Printf("Output directory: %s\n", opts.OutputDir)
	return nil
}

func printPlan(plan *extract.Plan) {
	fmt.Println("Video info:")
	fmt.Printf("  - resolution: %d x %d\n", plan.Video.Width, plan.Video.Height)
	fmt.Printf("  - source frame rate: %.2f FPS\n", plan.Video.FPS)
	fmt.Printf("  - total frames: %d\n", plan.Video.TotalFrames)
	fmt.Printf("  - duration: %.2f s\n", plan.Video.Duration)
	fmt.Printf("  - output format: JPG (quality: %d)\n", plan.Quality)
	fmt.Println("Extraction settings:")
	fmt.Printf("  - frame interval: %d\n", plan.Interval)
	fmt.Printf("  - estimated frames: %d\n", plan.Estimated)
}
