package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pngo/config"
	"pngo/logging"
	"pngo/pngdecoder"
	"pngo/utils"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pngo",
		Short:        "Decode PNG images into RGB pixel grids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadFromEnv(&config.Config, os.Getenv); err != nil {
				return err
			}
			logging.Init(config.Config.LogLevel)
			return nil
		},
	}
	root.AddCommand(decodeCommand(), chunksCommand(), paletteCommand())
	return root
}

func newDecoder() (*pngdecoder.PngDecoder, error) {
	opts, err := config.Config.Decoder.Options(logging.GlobalLogger())
	if err != nil {
		return nil, err
	}
	return pngdecoder.NewDecoder(opts), nil
}

func decodeCommand() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode PNG files and write each as a binary PPM",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := newDecoder()
			if err != nil {
				return err
			}

			var g errgroup.Group
			g.SetLimit(config.Config.Batch.Workers)
			for _, path := range args {
				path := path
				g.Go(func() error {
					defer logging.LogPanics(nil)
					logging.Debug().Str("path", path).Msg("decoding")
					img, err := dec.DecodeFile(path)
					if err != nil {
						logging.Error().Err(err).Str("path", path).Msg("failed to decode")
						return fmt.Errorf("%s: %w", path, err)
					}
					out := ppmName(path, outDir)
					if err := utils.CreatePPM(out, img); err != nil {
						return fmt.Errorf("%s: %w", out, err)
					}
					logging.Info().
						Str("path", path).
						Str("out", out).
						Int("width", img.Width()).
						Int("height", img.Height()).
						Msg("decoded")
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the .ppm files (default: next to each input)")
	return cmd
}

func ppmName(path, outDir string) string {
	name := strings.TrimSuffix(path, filepath.Ext(path)) + ".ppm"
	if outDir == "" {
		return name
	}
	return filepath.Join(outDir, filepath.Base(name))
}

func chunksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks FILE",
		Short: "List the chunks of a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pngdecoder.ReadFile(args[0])
			if err != nil {
				return err
			}
			chunks, err := pngdecoder.Frame(data)
			if err != nil {
				return err
			}
			for _, chunk := range chunks {
				kind := "ancillary"
				if chunk.Critical() {
					kind = "critical"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %10d  %s\n", chunk.Tag, chunk.Length, kind)
			}
			return nil
		},
	}
}

func paletteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palette FILE",
		Short: "Print the palette of a PNG file as hex colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pngdecoder.ReadFile(args[0])
			if err != nil {
				return err
			}
			chunks, err := pngdecoder.Frame(data)
			if err != nil {
				return err
			}
			palette, err := pngdecoder.ExtractPalette(chunks)
			if err != nil {
				return err
			}
			if palette == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no PLTE chunk")
				return nil
			}
			for i, c := range palette {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, c.Hex())
			}
			return nil
		},
	}
}
