package complaint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDepartments is the built-in category→contact table, used when
// no departments file is configured.
func DefaultDepartments() map[string]string {
	return map[string]string{
		"water":       "water@municipal.gov.in",
		"roads":       "roads@municipal.gov.in",
		"electricity": "electricity@municipal.gov.in",
	}
}

// departmentsFile is the top-level structure of departments.yaml.
type departmentsFile struct {
	Departments []struct {
		Category string `yaml:"category"`
		Email    string `yaml:"email"`
	} `yaml:"departments"`
}

// LoadDepartments reads a category→contact table from a YAML file.
// A missing file falls back to the built-in table.
func LoadDepartments(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDepartments(), nil
		}
		return nil, fmt.Errorf("read departments file: %w", err)
	}

	var f departmentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse departments file: %w", err)
	}

	table := make(map[string]string, len(f.Departments))
	for _, d := range f.Departments {
		if d.Category == "" || d.Email == "" {
			continue
		}
		table[d.Category] = d.Email
	}
	if len(table) == 0 {
		return DefaultDepartments(), nil
	}
	return table, nil
}
