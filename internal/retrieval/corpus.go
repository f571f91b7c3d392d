package retrieval

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// LoadCSV reads the FAQ corpus from a CSV file with id, prompt and response
// columns (header names are matched case-insensitively; "question"/"answer"
// are accepted aliases). Rows missing an id get a generated one. A missing
// file is not an error: it yields an empty corpus.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open faq csv: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read faq csv header: %w", err)
	}

	idCol, promptCol, responseCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			idCol = i
		case "prompt", "question":
			promptCol = i
		case "response", "answer":
			responseCol = i
		}
	}
	if promptCol < 0 || responseCol < 0 {
		return nil, fmt.Errorf("faq csv must contain prompt/question and response/answer columns")
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read faq csv row: %w", err)
		}
		if promptCol >= len(record) || responseCol >= len(record) {
			continue
		}

		prompt := strings.TrimSpace(record[promptCol])
		response := strings.TrimSpace(record[responseCol])
		if prompt == "" || response == "" {
			continue
		}

		id := ""
		if idCol >= 0 && idCol < len(record) {
			id = strings.TrimSpace(record[idCol])
		}
		if id == "" {
			id = uuid.NewString()
		}

		entries = append(entries, Entry{ID: id, Prompt: prompt, Response: response})
	}
	return entries, nil
}
