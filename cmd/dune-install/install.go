package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dunetools/dune-install/internal/conflict"
	"github.com/dunetools/dune-install/internal/env"
	"github.com/dunetools/dune-install/internal/installer"
	"github.com/dunetools/dune-install/internal/platform"
	"github.com/dunetools/dune-install/internal/session"
	"github.com/dunetools/dune-install/internal/shell"
	"github.com/dunetools/dune-install/internal/ui"
)

// run executes one installation end to end.
func run(ctx context.Context, releaseVersion string) error {
	out := ui.NewOutput(os.Stdout, os.Stderr)
	logger := ui.NewLogger()

	snap, err := env.Capture()
	if err != nil {
		return err
	}

	// Resolve the target before anything touches the network or the
	// filesystem; an unsupported platform fails here.
	osName, arch, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return err
	}
	target, err := platform.Resolve(osName, arch)
	if err != nil {
		return err
	}
	logger.Debug("platform resolved", "os", osName, "arch", arch, "target", target)

	rec := conflict.Recommend(snap)
	sess := session.New(os.Stdin, out)
	installRoot, err := sess.ChooseInstallRoot(rec)
	if err != nil {
		return fmt.Errorf("read install root choice: %w", err)
	}

	mgr := installer.NewManager(installer.Config{Output: out, Logger: logger})
	result, err := mgr.Install(ctx, &installer.InstallPlan{
		Target:      target,
		Version:     releaseVersion,
		InstallRoot: installRoot,
	})
	if err != nil {
		return err
	}

	return integrate(snap, sess, out, result.InstallRoot)
}

// integrate wires the install root into the user's shell startup file,
// or prints manual instructions when it cannot or may not.
func integrate(snap *env.Snapshot, sess *session.Session, out *ui.Output, installRoot string) error {
	dialect := shell.DetectDialect(snap)
	profile := shell.NewProfile(snap, dialect, installRoot)

	if !dialect.IsSupported() {
		printManualInstructions(out, snap, profile)
		return nil
	}

	engine, err := shell.NewEngine(snap)
	if err != nil {
		return err
	}

	status, err := engine.Inspect(profile)
	if err != nil {
		return err
	}

	out.Header("Shell integration (%s)", dialect)

	if status.AlreadyPresent {
		out.Success("%s already sources the dune environment", snap.AbbreviateHome(status.MatchedFile))
		printRefresh(out, engine.RefreshCommand(profile, status.MatchedFile))
		return nil
	}

	if status.WritableTarget == "" {
		out.Warn("no writable %s config file found", dialect)
		printManualInstructions(out, snap, profile)
		return nil
	}

	question := fmt.Sprintf("Append dune integration to %s?", snap.AbbreviateHome(status.WritableTarget))
	accepted, err := sess.Confirm(question)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !accepted {
		out.Info("leaving your shell configuration untouched")
		printManualInstructions(out, snap, profile)
		return nil
	}

	appended, err := engine.Append(profile, status.WritableTarget)
	if err != nil {
		return err
	}
	out.Success("updated %s", snap.AbbreviateHome(appended.File))
	printSummary(out, snap, installRoot, engine.RefreshCommand(profile, appended.File))
	return nil
}

// printManualInstructions shows what to add by hand. For supported
// dialects that is the loader-sourcing block; for unknown shells the
// plain PATH export.
func printManualInstructions(out *ui.Output, snap *env.Snapshot, profile *shell.Profile) {
	out.Info("")
	if profile.Dialect.IsSupported() {
		out.Info("Add the following to your shell configuration:")
		out.Dim("  %s", profile.SourceLine(snap))
		out.Dim("  %s \"%s\"", shell.EnvHook, snap.AbbreviateHome(profile.InstallRoot))
	} else {
		out.Warn("shell %q is not recognized", snap.Shell)
		out.Info("The environment loader is at:")
		out.Dim("  %s", snap.AbbreviateHome(profile.LoaderPath))
		out.Info("To use dune, add this to your shell startup file:")
		out.Dim("  %s", shell.ExportLine(profile.InstallRoot))
	}
}

func printSummary(out *ui.Output, snap *env.Snapshot, installRoot, refresh string) {
	out.Info("")
	out.Success("dune is installed in %s", snap.AbbreviateHome(installRoot))
	out.Info("Run the following to use dune in this session:")
	printRefresh(out, refresh)
	out.Info("Then check the installation with:")
	out.Dim("  dune --version")
}

func printRefresh(out *ui.Output, refresh string) {
	if refresh == "" {
		return
	}
	out.Dim("  %s", refresh)
}
