package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// Static errors for err113 compliance.
var (
	ErrProfileNotFound          = errors.New("profile not found")
	ErrMultipleDefaultProfiles  = errors.New("more than one profile is marked default")
	ErrProfileMissingCredential = errors.New("profile needs exactly one of bearer or user_token")
	ErrProfileMissingToken      = errors.New("profile token is empty")
	ErrNoProfileDirs            = errors.New("no profile directory available")
	ErrProfileLockTimeout       = errors.New("timed out waiting for profile file lock")
)

// ProfileFile is the on-disk profile file.
type ProfileFile struct {
	Profiles map[string]*Profile `toml:"profiles"`
}

// Profile is one named server entry of the profile file.
type Profile struct {
	URL       string           `toml:"url"`
	Default   bool             `toml:"default,omitempty"`
	Bearer    *BearerSecret    `toml:"bearer,omitempty"`
	UserToken *UserTokenSecret `toml:"user_token,omitempty"`
}

// BearerSecret is a bearer token with an optional expiry.
type BearerSecret struct {
	Token     string     `toml:"token"`
	ExpiresAt *time.Time `toml:"expires_at,omitempty"`
}

// UserTokenSecret is a long-lived user API token sent in the x-platz-token header.
type UserTokenSecret struct {
	Token string `toml:"token"`
}

// Validate checks every profile in the file.
func (f *ProfileFile) Validate() error {
	for _, name := range f.Names() {
		err := f.Profiles[name].validate()
		if err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return nil
}

// Names returns profile names in sorted order.
func (f *ProfileFile) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// SetDefault marks name as the only default profile.
func (f *ProfileFile) SetDefault(name string) error {
	if _, ok := f.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	for profileName, profile := range f.Profiles {
		profile.Default = profileName == name
	}

	return nil
}

func (p *Profile) validate() error {
	if p == nil {
		return ErrProfileMissingCredential
	}

	_, err := platz.ParseServerURL(p.URL)
	if err != nil {
		return err
	}

	switch {
	case p.Bearer != nil && p.UserToken == nil:
		if p.Bearer.Token == "" {
			return ErrProfileMissingToken
		}
	case p.UserToken != nil && p.Bearer == nil:
		if p.UserToken.Token == "" {
			return ErrProfileMissingToken
		}
	default:
		return ErrProfileMissingCredential
	}

	return nil
}

// credentials converts a validated profile into a credential record.
func (p *Profile) credentials() (*platz.Credentials, error) {
	serverURL, err := platz.ParseServerURL(p.URL)
	if err != nil {
		return nil, err
	}

	if p.UserToken != nil {
		return platz.NewCredentials(constants.SourceProfile, serverURL, platz.SchemePlatzToken, p.UserToken.Token, nil)
	}

	return platz.NewCredentials(constants.SourceProfile, serverURL, platz.SchemeBearer, p.Bearer.Token, p.Bearer.ExpiresAt)
}

// DefaultProfileDirs returns the config roots searched for the profile file:
// ~/.config first, then the platform config directory.
func DefaultProfileDirs() []string {
	var dirs []string

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}

	if xdg.ConfigHome != "" && !slices.Contains(dirs, xdg.ConfigHome) {
		dirs = append(dirs, xdg.ConfigHome)
	}

	return dirs
}

// ProfileFilePath returns the profile file path under a config root.
func ProfileFilePath(dir string) string {
	return filepath.Join(dir, constants.ConfigDirName, constants.ProfileFileName)
}

// FindProfileFile returns the first existing profile file under dirs, or
// ErrSourceNotApplicable when none exists.
func FindProfileFile(dirs []string) (string, error) {
	for _, dir := range dirs {
		path := ProfileFilePath(dir)

		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return "", &platz.ProfileError{Path: path, Err: err}
		}

		if !info.IsDir() {
			return path, nil
		}
	}

	return "", platz.ErrSourceNotApplicable
}

// LoadProfileFile reads and validates the profile file at path. Unknown keys
// are rejected.
func LoadProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the platz profile file
	if err != nil {
		return nil, &platz.ProfileError{Path: path, Err: err}
	}

	file := &ProfileFile{}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err = decoder.Decode(file)
	if err != nil {
		return nil, &platz.ProfileError{Path: path, Err: err}
	}

	err = file.Validate()
	if err != nil {
		return nil, &platz.ProfileError{Path: path, Err: err}
	}

	return file, nil
}

// profileRecord mirrors Profile for encoding. The expiry is held as a
// time.Time value so it is written as a TOML datetime rather than the quoted
// string go-toml produces for *time.Time.
type profileRecord struct {
	URL       string           `toml:"url"`
	Default   bool             `toml:"default,omitempty"`
	Bearer    *bearerRecord    `toml:"bearer,omitempty"`
	UserToken *UserTokenSecret `toml:"user_token,omitempty"`
}

type bearerRecord struct {
	Token     string `toml:"token"`
	ExpiresAt any    `toml:"expires_at,omitempty"`
}

func encodeProfileFile(file *ProfileFile) ([]byte, error) {
	records := make(map[string]*profileRecord, len(file.Profiles))

	for name, profile := range file.Profiles {
		if profile == nil {
			continue
		}

		record := &profileRecord{URL: profile.URL, Default: profile.Default, UserToken: profile.UserToken}

		if profile.Bearer != nil {
			record.Bearer = &bearerRecord{Token: profile.Bearer.Token}
			if profile.Bearer.ExpiresAt != nil {
				record.Bearer.ExpiresAt = profile.Bearer.ExpiresAt.UTC()
			}
		}

		records[name] = record
	}

	return toml.Marshal(struct {
		Profiles map[string]*profileRecord `toml:"profiles"`
	}{Profiles: records})
}

// SaveProfileFile writes the profile file atomically with owner-only permissions.
func SaveProfileFile(path string, file *ProfileFile) error {
	data, err := encodeProfileFile(file)
	if err != nil {
		return fmt.Errorf("encoding profile file: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	tmp := path + ".tmp"

	err = os.WriteFile(tmp, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing profile file: %w", err)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		return fmt.Errorf("replacing profile file: %w", err)
	}

	return nil
}

// UpdateProfileFile loads the profile file at path under an exclusive file
// lock, applies updateFn and saves the result. A missing file starts empty.
func UpdateProfileFile(ctx context.Context, path string, updateFn func(*ProfileFile) error) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	fileLock := flock.New(path + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, constants.ProfileLockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, constants.ProfileLockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring profile file lock: %w", err)
	}

	if !locked {
		return ErrProfileLockTimeout
	}

	defer func() { _ = fileLock.Unlock() }()

	file := &ProfileFile{}

	_, statErr := os.Stat(path)
	if statErr == nil {
		file, err = LoadProfileFile(path)
		if err != nil {
			return err
		}
	}

	if file.Profiles == nil {
		file.Profiles = make(map[string]*Profile)
	}

	err = updateFn(file)
	if err != nil {
		return err
	}

	err = file.Validate()
	if err != nil {
		return &platz.ProfileError{Path: path, Err: err}
	}

	return SaveProfileFile(path, file)
}

// ProfileResolver reads credentials from the profile file.
type ProfileResolver struct {
	// Profile is the requested profile. When empty, PLATZ_PROFILE is consulted,
	// then the profile marked default.
	Profile string

	// Dirs are the config roots searched in order. Defaults to DefaultProfileDirs.
	Dirs []string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewProfileResolver creates a profile resolver.
func NewProfileResolver(profile string, dirs []string) *ProfileResolver {
	return &ProfileResolver{Profile: profile, Dirs: dirs, LookupEnv: os.LookupEnv}
}

// Name returns the source name.
func (r *ProfileResolver) Name() string {
	return constants.SourceProfile
}

// Resolve implements platz.Resolver.
func (r *ProfileResolver) Resolve(_ context.Context) (*platz.Credentials, error) {
	dirs := r.Dirs
	if len(dirs) == 0 {
		dirs = DefaultProfileDirs()
	}

	path, err := FindProfileFile(dirs)
	if err != nil {
		return nil, err
	}

	file, err := LoadProfileFile(path)
	if err != nil {
		return nil, err
	}

	name, err := r.selectProfile(path, file)
	if err != nil {
		return nil, err
	}

	creds, err := file.Profiles[name].credentials()
	if err != nil {
		return nil, &platz.ProfileError{Path: path, Profile: name, Err: err}
	}

	return creds, nil
}

// RequestedProfile returns the explicitly requested profile name, if any.
func (r *ProfileResolver) RequestedProfile() string {
	if r.Profile != "" {
		return r.Profile
	}

	lookupEnv := r.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	name, _ := lookupEnv(constants.EnvProfile)

	return name
}

func (r *ProfileResolver) selectProfile(path string, file *ProfileFile) (string, error) {
	requested := r.RequestedProfile()
	if requested != "" {
		if _, ok := file.Profiles[requested]; !ok {
			return "", &platz.ProfileError{Path: path, Profile: requested, Err: ErrProfileNotFound}
		}

		return requested, nil
	}

	var defaults []string

	for _, name := range file.Names() {
		if file.Profiles[name].Default {
			defaults = append(defaults, name)
		}
	}

	switch len(defaults) {
	case 0:
		return "", platz.ErrSourceNotApplicable
	case 1:
		return defaults[0], nil
	default:
		return "", &platz.ProfileError{Path: path, Err: fmt.Errorf("%w: %v", ErrMultipleDefaultProfiles, defaults)}
	}
}
