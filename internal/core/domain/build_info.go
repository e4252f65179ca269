package domain

import "time"

// BuildInfo is the persisted result of the last successful build of an entry point.
type BuildInfo struct {
	EntryPoint string    `json:"entry_point,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
