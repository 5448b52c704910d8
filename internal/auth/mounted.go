package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// MountedSecretResolver reads credentials from a secret mounted into the
// container. The platform rewrites the files when it rotates the token.
type MountedSecretResolver struct {
	Dir string
}

// NewMountedSecretResolver creates a resolver for dir, or the default mount
// point when dir is empty.
func NewMountedSecretResolver(dir string) *MountedSecretResolver {
	if dir == "" {
		dir = constants.MountedSecretsDir
	}

	return &MountedSecretResolver{Dir: dir}
}

// Name returns the source name.
func (r *MountedSecretResolver) Name() string {
	return constants.SourceMounted
}

// Resolve implements platz.Resolver. The three files are read concurrently. If
// any of them is missing the source is not applicable, even when another file
// failed to read.
func (r *MountedSecretResolver) Resolve(ctx context.Context) (*platz.Credentials, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading mounted secret: %w", err)
	}

	names := [...]string{
		constants.MountedAccessTokenFile,
		constants.MountedServerURLFile,
		constants.MountedExpiresAtFile,
	}

	var (
		contents [len(names)]string
		missing  [len(names)]bool
		group    errgroup.Group
	)

	// Reads are not cancelled on the first failure: a missing file found by a
	// later read still decides the outcome.
	for i, name := range names {
		group.Go(func() error {
			content, readErr := r.read(name)
			if errors.Is(readErr, platz.ErrSourceNotApplicable) {
				missing[i] = true

				return nil
			}

			contents[i] = content

			return readErr
		})
	}

	err = group.Wait()

	for _, absent := range missing {
		if absent {
			return nil, platz.ErrSourceNotApplicable
		}
	}

	if err != nil {
		return nil, err
	}

	token, rawURL, rawExpiry := contents[0], contents[1], contents[2]

	serverURL, err := platz.ParseServerURL(rawURL)
	if err != nil {
		return nil, &platz.MountedSecretError{Path: r.path(constants.MountedServerURLFile), Err: err}
	}

	expiresAt, err := time.Parse(time.RFC3339, rawExpiry)
	if err != nil {
		return nil, &platz.MountedSecretError{Path: r.path(constants.MountedExpiresAtFile), Err: err}
	}

	creds, err := platz.NewCredentials(r.Name(), serverURL, platz.SchemeBearer, token, &expiresAt)
	if err != nil {
		return nil, &platz.MountedSecretError{Path: r.path(constants.MountedAccessTokenFile), Err: err}
	}

	return creds, nil
}

func (r *MountedSecretResolver) read(name string) (string, error) {
	path := r.path(name)

	data, err := os.ReadFile(path) //nolint:gosec // path is built from a fixed file name
	if errors.Is(err, fs.ErrNotExist) {
		return "", platz.ErrSourceNotApplicable
	}

	if err != nil {
		return "", &platz.MountedSecretError{Path: path, Err: err}
	}

	return strings.TrimSpace(string(data)), nil
}

func (r *MountedSecretResolver) path(name string) string {
	return filepath.Join(r.Dir, name)
}
