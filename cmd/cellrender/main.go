package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/video"
	"github.com/san-kum/cellrender/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	settingsFile string
	presetName   string
	quiet        bool
	themeName    string

	// paths
	simConfigPath string
	resultsGlob   string
	fieldsGlob    string
	imageDir      string
	imagesGlob    string
	videoPath     string

	// drawing
	canvasSize  int
	fieldScale  float64
	fieldSlice  int
	colormap    string
	scaleRadius bool
	adhesion    bool
	guides      bool
	label       bool
	cells       bool
	fieldNative bool

	// video
	fps     float64
	encoder string

	// output
	svgOut      bool
	useTUI      bool
	dryRun      bool
	statsCSV    string
	plotWidth   int
	plotHeight  int
	previewCols int
	fieldOut    string
	savePreset  string

	log = viz.StdLogger()
)

// main registers the cellrender commands and exits with status 1 when a
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cellrender",
		Short:         "render cell simulation snapshots to images and video",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Quiet = quiet
			viz.SetTheme(themeName)
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "render settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "start from a named preset")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "lab", fmt.Sprintf("console theme %v", viz.ThemeNames()))

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render every snapshot to a PNG frame",
		Args:  cobra.NoArgs,
		RunE:  renderCommand,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().BoolVar(&svgOut, "svg", false, "also write an SVG per frame")
	renderCmd.Flags().BoolVar(&dryRun, "dry-run", false, "render in memory without writing files")
	renderCmd.Flags().BoolVar(&useTUI, "tui", false, "show a progress view")

	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "assemble rendered frames into a video",
		Args:  cobra.NoArgs,
		RunE:  videoCommand,
	}
	addVideoFlags(videoCmd)
	videoCmd.Flags().BoolVar(&useTUI, "tui", false, "show a progress view")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render frames, then assemble the video",
		Args:  cobra.NoArgs,
		RunE:  runCommand,
	}
	addRenderFlags(runCmd)
	addVideoFlags(runCmd)
	runCmd.Flags().BoolVar(&svgOut, "svg", false, "also write an SVG per frame")
	runCmd.Flags().BoolVar(&useTUI, "tui", false, "show a progress view")

	fieldCmd := &cobra.Command{
		Use:   "field [file]",
		Short: "render field-only frames, or a single field file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fieldCommand,
	}
	fieldCmd.Flags().StringVar(&simConfigPath, "config", config.DefaultSimConfigPath, "simulation config.txt, optional")
	fieldCmd.Flags().StringVar(&fieldsGlob, "fields", "", "field file glob")
	fieldCmd.Flags().StringVar(&imageDir, "image-dir", config.DefaultImageDir, "output directory for frames")
	fieldCmd.Flags().BoolVar(&fieldNative, "field-native", false, "keep one pixel per grid cell")
	fieldCmd.Flags().BoolVar(&useTUI, "tui", false, "show a progress view")
	fieldCmd.Flags().IntVar(&canvasSize, "canvas", config.DefaultCanvasSize, "output size in pixels")
	fieldCmd.Flags().Float64Var(&fieldScale, "field-scale", config.DefaultFieldScale, "colormap index multiplier")
	fieldCmd.Flags().IntVar(&fieldSlice, "slice", 0, "z slice for volumetric fields")
	fieldCmd.Flags().StringVar(&colormap, "colormap", config.DefaultColormap, "colormap name")
	fieldCmd.Flags().StringVarP(&fieldOut, "output", "o", "", "output png for a single file (default <image_dir>/cells_<id>.png)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "summarize snapshots without writing images",
		Args:  cobra.NoArgs,
		RunE:  statsCommand,
	}
	statsCmd.Flags().StringVar(&simConfigPath, "config", config.DefaultSimConfigPath, "simulation config.txt")
	statsCmd.Flags().StringVar(&resultsGlob, "results", config.DefaultResultsGlob, "snapshot file glob")
	statsCmd.Flags().StringVar(&statsCSV, "csv", "", "also write the stats to this csv file")
	statsCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	statsCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	previewCmd := &cobra.Command{
		Use:   "preview [snapshot]",
		Short: "draw a snapshot in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewCommand,
	}
	previewCmd.Flags().StringVar(&simConfigPath, "config", config.DefaultSimConfigPath, "simulation config.txt")
	previewCmd.Flags().IntVar(&previewCols, "cols", 80, "preview width in characters")
	previewCmd.Flags().BoolVar(&adhesion, "adhesion", true, "draw adhesion edges")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  presetsCommand,
	}
	presetsCmd.Flags().StringVar(&savePreset, "save", "", "write the preset to this settings file")

	rootCmd.AddCommand(renderCmd, videoCmd, runCmd, fieldCmd, statsCmd, previewCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&simConfigPath, "config", config.DefaultSimConfigPath, "simulation config.txt")
	f.StringVar(&resultsGlob, "results", config.DefaultResultsGlob, "snapshot file glob")
	f.StringVar(&fieldsGlob, "fields", "", "field file glob, paired with snapshots in order")
	f.StringVar(&imageDir, "image-dir", config.DefaultImageDir, "output directory for frames")
	f.IntVar(&canvasSize, "canvas", config.DefaultCanvasSize, "canvas size in pixels")
	f.Float64Var(&fieldScale, "field-scale", config.DefaultFieldScale, "colormap index multiplier")
	f.IntVar(&fieldSlice, "slice", 0, "z slice for volumetric fields")
	f.StringVar(&colormap, "colormap", config.DefaultColormap, "field colormap")
	f.BoolVar(&scaleRadius, "scale-radius", true, "scale radii with the grid")
	f.BoolVar(&adhesion, "adhesion", true, "draw adhesion edges")
	f.BoolVar(&guides, "guides", false, "draw the dish outline and centre axes")
	f.BoolVar(&label, "label", false, "draw the step label")
	f.BoolVar(&cells, "cells", true, "draw cells; off renders one field-only frame per field file")
	f.BoolVar(&fieldNative, "field-native", false, "keep field-only frames at one pixel per grid cell")
}

func addVideoFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&imagesGlob, "images", config.DefaultImageGlob, "frame glob, sorted by name")
	f.StringVarP(&videoPath, "out", "o", config.DefaultVideoPath, "output video")
	f.Float64Var(&fps, "fps", config.DefaultFPS, "frames per second")
	f.StringVar(&encoder, "encoder", config.DefaultEncoder, fmt.Sprintf("video encoder %v", video.NewRegistry().List()))
}

func presetsCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, name := range config.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	s := config.GetPreset(args[0])
	if s == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if savePreset != "" {
		if err := config.Save(savePreset, s); err != nil {
			return err
		}
		log.Infof("wrote %s", savePreset)
		return nil
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
