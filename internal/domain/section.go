// Package domain contains core domain types for the Spin Bot assistant.
package domain

// Section is one entry of the fixed site catalog.
type Section struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Hints       []string `json:"hints,omitempty"`
}
