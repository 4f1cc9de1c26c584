package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aelto/cahirp/internal/modscan"
	"github.com/aelto/cahirp/internal/source"
)

// debounceWindow coalesces a burst of filesystem events (an editor's save,
// which is often a write plus a rename) into a single rebuild.
const debounceWindow = 200 * time.Millisecond

func newWatchCmd(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild automatically as recipe files change",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return processFlagsAfterParse(cmd, config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.UseColor = ResolveColorMode(config)
			return runWatch(cmd, config)
		},
	}
	cmd.Flags().BoolVar(&config.Clean, "clean", false, "Wipe the output root before the first build")
	annotateFlag(cmd, "clean", modeGroupLabel)
	return cmd
}

// runWatch builds once, then watches every enabled mod's recipe folder and
// rebuilds on change until interrupted; an interrupt cancels any pending
// rebuild and runs one final build. Every build after the first runs clean so
// a deleted directive's prior output does not linger.
func runWatch(cmd *cobra.Command, config *Config) error {
	if err := runBuild(cmd, config); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecipeDirs(watcher, config.GameRoot); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), "watching for recipe changes, press ctrl+c to stop")

	var timer *time.Timer
	rebuild := func() {
		rebuildConfig := *config
		rebuildConfig.Clean = true
		if err := runBuild(cmd, &rebuildConfig); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "rebuild failed:", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			rebuild()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "watch error:", err)
		}
	}
}

// addRecipeDirs registers every enabled mod's recipe folder with watcher.
// A mod with no recipe folder is silently skipped; fsnotify has nothing to
// watch there until the folder is created.
func addRecipeDirs(watcher *fsnotify.Watcher, gameRoot string) error {
	mods, err := modscan.List(source.DirModEnumerator{}, gameRoot)
	if err != nil {
		return err
	}

	for _, m := range modscan.Enabled(mods) {
		dir := m.RecipeDir()
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return nil
}
