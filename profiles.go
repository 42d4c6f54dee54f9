package attestation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadProfiles reads the JSON profile list from path. Input problems are
// fatal for the whole batch: nothing is rendered from a list that cannot be
// fully read and validated.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfilesRead, err)
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes a JSON array of profiles and checks required fields.
func ParseProfiles(data []byte) ([]Profile, error) {
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfilesParse, err)
	}
	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}
	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return profiles, nil
}
