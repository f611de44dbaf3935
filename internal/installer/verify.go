package installer

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// EnvGPGKeyring names a local GPG keyring (armored or binary) holding
// the release signing key. When it is set and the release publishes a
// detached signature, signature verification is mandatory.
const EnvGPGKeyring = "DUNE_INSTALL_GPG_KEYRING"

// VerifyGPG checks the detached signature at sigPath over the artifact
// using the keys in keyringPath. Armored and binary signatures are
// both accepted.
func VerifyGPG(artifactPath, sigPath, keyringPath string) error {
	keyring, err := loadKeyring(keyringPath)
	if err != nil {
		return &VerifyError{Method: MethodGPG, Artifact: filepath.Base(artifactPath), Cause: err}
	}

	artifact, err := os.Open(artifactPath)
	if err != nil {
		return &VerifyError{Method: MethodGPG, Artifact: filepath.Base(artifactPath), Cause: err}
	}
	defer artifact.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return &VerifyError{Method: MethodGPG, Artifact: filepath.Base(artifactPath), Cause: err}
	}
	defer sig.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, artifact, sig, nil)
	if err != nil {
		if _, serr := artifact.Seek(0, io.SeekStart); serr != nil {
			err = serr
		} else if _, serr := sig.Seek(0, io.SeekStart); serr != nil {
			err = serr
		} else {
			_, err = openpgp.CheckDetachedSignature(keyring, artifact, sig, nil)
		}
	}
	if err != nil {
		return &VerifyError{Method: MethodGPG, Artifact: filepath.Base(artifactPath), Cause: err}
	}
	return nil
}

// VerifySHA256 checks the artifact against the entry for its filename
// in a "checksum  filename" manifest.
func VerifySHA256(artifactPath, checksumsPath string) error {
	name := filepath.Base(artifactPath)

	actual, err := fileSHA256(artifactPath)
	if err != nil {
		return &VerifyError{Method: MethodSHA256, Artifact: name, Cause: err}
	}

	expected, err := findChecksum(checksumsPath, name)
	if err != nil {
		return &VerifyError{Method: MethodSHA256, Artifact: name, Cause: err}
	}

	if !strings.EqualFold(actual, expected) {
		return &VerifyError{
			Method:   MethodSHA256,
			Artifact: name,
			Cause:    fmt.Errorf("checksum mismatch: got %s, manifest says %s", actual, expected),
		}
	}
	return nil
}

// loadKeyring reads an armored keyring, falling back to the binary
// format.
func loadKeyring(path string) (openpgp.EntityList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer file.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		if _, serr := file.Seek(0, io.SeekStart); serr != nil {
			return nil, serr
		}
		keyring, err = openpgp.ReadKeyRing(file)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring %s holds no keys", path)
	}
	return keyring, nil
}

func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum locates the digest for filename in a manifest whose
// lines read "digest  name". Names may carry directory prefixes.
func findChecksum(checksumsPath, filename string) (string, error) {
	file, err := os.Open(checksumsPath)
	if err != nil {
		return "", fmt.Errorf("open checksum manifest: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		entry := strings.TrimPrefix(parts[1], "*")
		if entry == filename || filepath.Base(entry) == filename {
			return parts[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum manifest: %w", err)
	}

	return "", fmt.Errorf("no checksum entry for %s", filename)
}
