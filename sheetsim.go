// Replays scripted gestures against a sheet controller.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/sheet/core/fling"
	"github.com/jmigpin/sheet/core/fswatcher"
	"github.com/jmigpin/sheet/core/replay"
	"github.com/jmigpin/sheet/core/sheet"
	"github.com/jmigpin/sheet/core/sheetconf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	debug      bool
	dump       bool
	configPath string
)

func main() {
	log.SetFlags(0)
	if err := Execute(); err != nil {
		log.Fatal(err)
	}
}

func Execute() error {
	root := &cobra.Command{
		Use:           "sheetsim",
		Short:         "Replay gesture scripts against a draggable panel controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetFlags(log.Llongfile)
				sheet.LogDebug()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log controller decisions")
	root.PersistentFlags().BoolVar(&dump, "dump", false, "dump the final controller state")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $SHEETSIM_CONFIG)")

	root.AddCommand(runCmd(), checkCmd(), watchCmd(), flingCmd(), configCmd())
	return root.Execute()
}

//----------

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a script (.in) or all scripts of an archive (.txt), printing the transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd.OutOrStdout(), args[0])
		},
	}
	return cmd
}

func checkCmd() *cobra.Command {
	update := false
	cmd := &cobra.Command{
		Use:   "check <archive.txt>...",
		Short: "Compare the transcripts of archive scripts with their .out files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				if update {
					if err := updateArchive(filename); err != nil {
						return err
					}
					continue
				}
				n, err := checkArchive(cmd.OutOrStdout(), filename)
				if err != nil {
					return err
				}
				failed += n
			}
			if failed > 0 {
				return errors.Errorf("%d failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "rewrite the .out files with the current transcripts")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Run a script or archive every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			out := cmd.OutOrStdout()
			return watchFile(ctx, args[0], func() error {
				fmt.Fprintf(out, "== %v %v\n", args[0], time.Now().Format("15:04:05"))
				return runFile(out, args[0])
			})
		},
	}
	return cmd
}

func flingCmd() *cobra.Command {
	dpi := 0.0
	cmd := &cobra.Command{
		Use:   "fling <velocity>...",
		Short: "Print the natural fling distance (px) and duration for velocities (px/s)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dpi == 0 {
				cfg, err := sheetconf.Load(configPath)
				if err != nil {
					return err
				}
				dpi = cfg.DensityDPI
			}
			m := fling.New(dpi)
			for _, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return err
				}
				d := m.Distance(v)
				fmt.Fprintf(cmd.OutOrStdout(), "v=%v distance=%.1f duration=%v velocity(distance)=%.1f\n", v, d, m.Duration(v).Round(time.Millisecond), m.Velocity(d))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "display density (default from config)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the config in toml (defaults, file and env overrides applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sheetconf.Load(configPath)
			if err != nil {
				return err
			}
			return sheetconf.Write(cmd.OutOrStdout(), cfg)
		},
	}
	return cmd
}

//----------

func runFile(out io.Writer, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if filepath.Ext(filename) == ".txt" {
		return runArchive(out, src, filename)
	}
	cfg, err := sheetconf.Load(configPath)
	if err != nil {
		return err
	}
	return runScript(out, src, filename, cfg)
}

func runArchive(out io.Writer, src []byte, filename string) error {
	ar, cases := replay.ParseArchive(src)
	cfg, err := sheetconf.Parse(ar.Comment)
	if err != nil {
		return errors.Wrapf(err, "%s: archive config", filename)
	}
	for _, c := range cases {
		fmt.Fprintf(out, "-- %v.out --\n", c.Name)
		if err := runScript(out, c.In, filename+":"+c.Name, cfg); err != nil {
			return err
		}
	}
	return nil
}

func runScript(out io.Writer, src []byte, filename string, cfg sheet.Config) error {
	sc, err := replay.ParseScript(src, filename)
	if err != nil {
		return err
	}
	r := replay.NewRunner(out, cfg)
	err = r.Run(sc)
	if dump {
		if c := r.Controller(); c != nil {
			fmt.Fprint(out, spew.Sdump(c.Snapshot()))
		}
	}
	return err
}

func checkArchive(out io.Writer, filename string) (int, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return 0, err
	}
	res, err := replay.CheckArchive(src, filename)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, cr := range res {
		if cr.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %v\n\t%v\n", cr.Case.Name, cr.Err)
			if debug {
				fmt.Fprintf(out, "got:\n%s", cr.Got)
			}
			continue
		}
		fmt.Fprintf(out, "ok   %v\n", cr.Case.Name)
	}
	return failed, nil
}

func updateArchive(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	res, err := replay.UpdateArchive(src, filename)
	if err != nil {
		return err
	}
	if bytes.Equal(res, src) {
		return nil
	}
	return os.WriteFile(filename, res, 0o644)
}

//----------

func watchFile(ctx context.Context, filename string, run func() error) error {
	w, err := fswatcher.NewFsnWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetOpMask(fswatcher.ContentOps)
	if err := w.Add(filename); err != nil {
		return err
	}

	rerun := func() {
		if err := run(); err != nil {
			log.Print(err)
		}
	}
	rerun()

	// editors often write a file more than once per save
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			switch t := ev.(type) {
			case error:
				log.Print(t)
			case *fswatcher.Event:
				sheet.Logf("watch: %v %v", t.Op, t.Name)
				timer.Reset(100 * time.Millisecond)
			}
		case <-timer.C:
			rerun()
		}
	}
}
