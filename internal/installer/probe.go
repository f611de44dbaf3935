package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

// ProbeOwnership verifies, inside the working directory, that
// extraction with ownership forced to the invoking user round-trips a
// marker file intact. On success the real extraction runs in
// OwnershipCurrentUser mode; if the self-test fails for any reason the
// installer falls back to OwnershipDefault.
func ProbeOwnership(workdir string) OwnershipMode {
	if err := probeRoundTrip(workdir); err != nil {
		return OwnershipDefault
	}
	return OwnershipCurrentUser
}

func probeRoundTrip(workdir string) error {
	const marker = "dune-install ownership probe\n"

	// Build a one-file tar.gz whose entry claims a foreign owner.
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	header := &tar.Header{
		Name: "probe/marker",
		Mode: 0644,
		Size: int64(len(marker)),
		Uid:  12345,
		Gid:  12345,
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if _, err := tw.Write([]byte(marker)); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	archive := filepath.Join(workdir, "probe.tar.gz")
	if err := os.WriteFile(archive, buf.Bytes(), 0600); err != nil {
		return err
	}

	dest := filepath.Join(workdir, "probe-out")
	if err := NewExtractor(OwnershipCurrentUser).ExtractTarGz(archive, dest); err != nil {
		return err
	}

	extracted := filepath.Join(dest, "probe", "marker")
	content, err := os.ReadFile(extracted)
	if err != nil {
		return err
	}
	if string(content) != marker {
		return fmt.Errorf("probe content mismatch")
	}

	// The extracted file must be fully accessible to the invoking
	// user, which an applied foreign uid would break.
	file, err := os.OpenFile(extracted, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	file.Close()

	os.Remove(archive)
	os.RemoveAll(dest)
	return nil
}
