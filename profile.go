package worksite

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Phonesis/personal-work-site/content"
)

// bundledProfile is the CV shipped with the binary.
//
//go:embed data/profile.yaml
var bundledProfile []byte

// LoadProfile reads the CV from path, or the bundled one when path is empty.
func LoadProfile(path string) (content.Profile, error) {
	if path == "" {
		return ParseProfile(bundledProfile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return content.Profile{}, fmt.Errorf("worksite: read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a CV document.
func ParseProfile(data []byte) (content.Profile, error) {
	p, err := content.ParseProfile(data)
	if err != nil {
		return content.Profile{}, err
	}
	if err := ValidateProfile(NewValidator(), p); err != nil {
		return content.Profile{}, err
	}
	return p, nil
}
