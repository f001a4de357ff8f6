package export

import (
	"encoding/json"
	"os"

	"github.com/spigell/resume-scorer/internal/candidate"
)

type JSON struct{}

func (JSON) Export(records *candidate.Records, path string) error {
	if err := prepare(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records.Ranked()); err != nil {
		return err
	}
	return file.Close()
}
