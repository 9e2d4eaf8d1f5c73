package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

// JobFile is a YAML description of a merge: the recognized engine options
// plus sources and destination. Unset fields keep their flag values.
//
//	sources:
//	  - /photos/camera
//	  - /photos/phone
//	destination: /photos/all
//	mode: move
//	on_collision: rename
//	recursive: true
//	included_extensions: [jpg, png]
type JobFile struct {
	Sources     []string
	Destination string
	Mode        domain.Mode
	OnCollision domain.CollisionPolicy
	Recursive   *bool
	Extensions  []string
}

type rawJobFile struct {
	Sources     []string `yaml:"sources"`
	Destination string   `yaml:"destination"`
	Mode        string   `yaml:"mode"`
	OnCollision string   `yaml:"on_collision"`
	Recursive   *bool    `yaml:"recursive"`
	Extensions  []string `yaml:"included_extensions"`
}

func LoadJobFile(path string) (JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JobFile{}, appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
	}
	var raw rawJobFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return JobFile{}, appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
	}

	jf := JobFile{
		Sources:     raw.Sources,
		Destination: raw.Destination,
		Recursive:   raw.Recursive,
		Extensions:  NormalizeExtensions(raw.Extensions),
	}
	if raw.Mode != "" {
		mode, err := domain.ParseMode(raw.Mode)
		if err != nil {
			return JobFile{}, appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
		}
		jf.Mode = mode
	}
	if raw.OnCollision != "" {
		policy, err := domain.ParseCollisionPolicy(raw.OnCollision)
		if err != nil {
			return JobFile{}, appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
		}
		jf.OnCollision = policy
	}
	return jf, nil
}

// NormalizeExtensions lowercases extensions and adds the leading dot that
// users tend to leave out.
func NormalizeExtensions(exts []string) []string {
	var out []string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// LoadDotEnv picks up a .env file when present; a missing file is fine.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func EnvOr(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func EnvTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
