package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run   RunMetadata  `json:"run"`
	Turns []TurnRecord `json:"turns"`
}

// Export loads a saved run with its journal.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	turns, err := s.LoadTurns(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Turns: turns}, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
