package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/samcharles93/skipwalk/internal/version"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			fmt.Printf("version:    %s\n", info.Version)
			if info.Commit != "" {
				fmt.Printf("commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Printf("build time: %s\n", info.BuildTime)
			}
			fmt.Printf("go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if n, err := cpu.CountsWithContext(ctx, true); err == nil {
				fmt.Printf("cpus:       %d (default workers: %d)\n", n, runtime.GOMAXPROCS(0))
			}
			return nil
		},
	}
}
