package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dunetools/dune-install/internal/ui"
)

// Config bundles the collaborators a Manager needs. Zero fields get
// working defaults.
type Config struct {
	Downloader *Downloader
	Output     *ui.Output
	Logger     *log.Logger
	// TempBase overrides where the scoped working directory is
	// created. Empty means the system temp directory.
	TempBase string
}

// Manager runs one installation end to end: scoped working directory,
// download, verification, extraction, and the copy into the install
// root.
type Manager struct {
	downloader *Downloader
	output     *ui.Output
	logger     *log.Logger
	tempBase   string
}

// NewManager creates a manager from the config.
func NewManager(cfg Config) *Manager {
	if cfg.Downloader == nil {
		cfg.Downloader = NewDownloader()
	}
	if cfg.Output == nil {
		cfg.Output = ui.NewOutput(os.Stdout, os.Stderr)
	}
	if cfg.Logger == nil {
		cfg.Logger = ui.NewLogger()
	}
	return &Manager{
		downloader: cfg.Downloader,
		output:     cfg.Output,
		logger:     cfg.Logger,
		tempBase:   cfg.TempBase,
	}
}

// Result reports how the installation went.
type Result struct {
	InstallRoot  string
	Verification Method
}

// Install executes the plan. The working directory is removed on every
// return path; a canceled context aborts the in-flight transfer, which
// surfaces as an error here and still runs the cleanup.
func (m *Manager) Install(ctx context.Context, plan *InstallPlan) (*Result, error) {
	wd, err := NewWorkdir(m.tempBase)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := wd.Remove(); rerr != nil {
			m.logger.Warn("working directory not fully removed", "path", wd.Path, "err", rerr)
		}
	}()

	ownership := ProbeOwnership(wd.Path)
	m.logger.Debug("ownership probe done", "mode", ownership)

	m.output.Header("Downloading dune %s for %s", plan.Version, plan.Target)
	m.output.Dim("  %s", plan.ArtifactURL())

	plan.ArchiveTempPath = wd.Join(plan.ArtifactName())
	if err := m.downloader.Fetch(ctx, plan.ArtifactURL(), plan.ArchiveTempPath); err != nil {
		return nil, err
	}
	m.output.Success("downloaded %s", plan.ArtifactName())

	method, err := m.verify(ctx, plan, wd)
	if err != nil {
		return nil, err
	}
	switch method {
	case MethodUnverified:
		m.logger.Debug("no signature or checksum manifest published, proceeding unverified")
	default:
		m.output.Success("verified artifact (%s)", method)
	}

	m.output.Header("Installing into %s", plan.InstallRoot)

	distDir := wd.Join("dist")
	if err := NewExtractor(ownership).ExtractTarGz(plan.ArchiveTempPath, distDir); err != nil {
		return nil, err
	}

	distRoot, err := DistRoot(distDir)
	if err != nil {
		return nil, &ExtractError{Archive: plan.ArchiveTempPath, Cause: err}
	}
	if err := InstallTree(distRoot, plan.InstallRoot); err != nil {
		return nil, fmt.Errorf("install distribution: %w", err)
	}
	m.output.Success("installed dune %s", plan.Version)

	return &Result{InstallRoot: plan.InstallRoot, Verification: method}, nil
}

// verify runs the verification ladder: mandatory GPG when a keyring is
// configured and the release publishes a signature, else the checksum
// manifest when published, else unverified.
func (m *Manager) verify(ctx context.Context, plan *InstallPlan, wd *Workdir) (Method, error) {
	if keyring := os.Getenv(EnvGPGKeyring); keyring != "" {
		sigPath := wd.Join(plan.ArtifactName() + ".sig")
		found, err := m.downloader.FetchOptional(ctx, plan.SignatureURL(), sigPath)
		if err != nil {
			return "", err
		}
		if found {
			if err := VerifyGPG(plan.ArchiveTempPath, sigPath, keyring); err != nil {
				return "", err
			}
			return MethodGPG, nil
		}
		m.logger.Debug("keyring configured but release publishes no signature", "url", plan.SignatureURL())
	}

	checksumsPath := wd.Join("checksums.txt")
	found, err := m.downloader.FetchOptional(ctx, plan.ChecksumsURL(), checksumsPath)
	if err != nil {
		return "", err
	}
	if found {
		if err := VerifySHA256(plan.ArchiveTempPath, checksumsPath); err != nil {
			return "", err
		}
		return MethodSHA256, nil
	}

	return MethodUnverified, nil
}
