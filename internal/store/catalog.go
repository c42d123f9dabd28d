package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Big-jpg/swipehire/internal/models"
)

//go:embed catalog.json
var catalogJSON []byte

// SampleJobs returns the built-in demo catalogue used by the seed command.
func SampleJobs() ([]models.Job, error) {
	var jobs []models.Job
	if err := json.Unmarshal(catalogJSON, &jobs); err != nil {
		return nil, fmt.Errorf("decode sample catalogue: %w", err)
	}
	return jobs, nil
}
