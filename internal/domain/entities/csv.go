package entities

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ProjectsCSVHeader is the exact column contract of the roadmap data file.
// The accented labels come from the dashboard's export format and must not
// change.
var ProjectsCSVHeader = []string{"ID", "Nome do Projeto", "Início", "Fim", "Responsável"}

// MarshalProjectsCSV renders records in the data-file format, header first.
func MarshalProjectsCSV(records []Project) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(ProjectsCSVHeader); err != nil {
		return nil, err
	}
	for i := range records {
		row := []string{
			strconv.Itoa(records[i].ID),
			records[i].Name,
			records[i].Start.String(),
			records[i].End.String(),
			records[i].Owner,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalProjectsCSV parses a full data file. Any defect (wrong header,
// missing column, bad id, bad date, duplicate id) fails the whole file; a
// partially parsed record set is never returned.
func UnmarshalProjectsCSV(r io.Reader) ([]Project, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	header := rows[0]
	if len(header) != len(ProjectsCSVHeader) {
		return nil, fmt.Errorf("expected %d columns, found %d", len(ProjectsCSVHeader), len(header))
	}
	for i, want := range ProjectsCSVHeader {
		if header[i] != want {
			return nil, fmt.Errorf("column %d: expected %q, found %q", i, want, header[i])
		}
	}

	records := make([]Project, 0, len(rows)-1)
	seen := make(map[int]bool, len(rows)-1)
	for n, row := range rows[1:] {
		project, err := parseProjectRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		if seen[project.ID] {
			return nil, fmt.Errorf("row %d: duplicate id %d", n+2, project.ID)
		}
		seen[project.ID] = true
		records = append(records, *project)
	}
	return records, nil
}

func parseProjectRow(row []string) (*Project, error) {
	if len(row) != len(ProjectsCSVHeader) {
		return nil, fmt.Errorf("expected %d fields, found %d", len(ProjectsCSVHeader), len(row))
	}

	id, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", row[0])
	}
	if id < 1 {
		return nil, fmt.Errorf("invalid id %d: must be positive", id)
	}

	start, err := ParseDate(row[2])
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(row[3])
	if err != nil {
		return nil, err
	}

	project := &Project{
		ID:    id,
		Name:  row[1],
		Start: start,
		End:   end,
		Owner: row[4],
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}
