//go:build linux

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tcassar-diss/classicbpf/frontend"
)

func main() {
	cfg := &frontend.CaptureCfg{}

	app := &cli.App{
		Name:  "cbpfctl",
		Usage: "attach a classic BPF filter to a raw socket and watch what gets through",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "iface",
				Aliases:     []string{"i"},
				Value:       "eth0",
				Usage:       "interface to capture on",
				Destination: &cfg.Iface,
			}, &cli.StringFlag{
				Name:        "preset",
				Aliases:     []string{"p"},
				Value:       "icmp6",
				Usage:       "filter preset to attach (built-in: icmp6, accept-all, drop-all)",
				Destination: &cfg.PresetName,
			}, &cli.StringFlag{
				Name:        "preset-file",
				Usage:       "TOML file of additional presets; overrides the built-ins",
				Destination: &cfg.PresetPath,
			}, &cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"c"},
				Usage:       "stop after this many frames (0 runs until interrupted)",
				Destination: &cfg.Count,
			}, &cli.BoolFlag{
				Name:        "verbose",
				Usage:       "log every frame that passes the filter",
				Destination: &cfg.Verbose,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Len() != 0 {
				_ = cli.ShowAppHelp(cCtx)

				return cli.Exit(
					fmt.Sprintf("\nERROR: unexpected arguments: %v", cCtx.Args().Slice()),
					1,
				)
			}

			if err := frontend.Run(cfg); err != nil {
				return cli.Exit(
					fmt.Sprintf("cbpfctl encountered an error it couldn't recover from: %v", err),
					2,
				)
			}

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
