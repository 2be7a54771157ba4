package rarity

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and validates pack blueprints from a JSON file.
// Malformed tables are configuration-time failures, never runtime errors.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToReadTables, err)
	}

	var tables Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToParseTables, err)
	}

	if err := Validate(tables); err != nil {
		return nil, err
	}

	return tables, nil
}
