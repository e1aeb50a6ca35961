package kernel

import (
	"fmt"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

const minModuleColumns = 4

// Module is one parsed row of the loaded-module table.
type Module struct {
	Name       string
	Size       string
	UseCount   int
	UsedBy     string
	Dependents []string
	Raw        string
}

// ParseError reports a module line with too few columns.
type ParseError struct {
	Line    string
	Columns int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed module line %q: %d columns, need at least %d", e.Line, e.Columns, minModuleColumns)
}

// ParseModuleLine parses a /proc/modules style line.
func ParseModuleLine(line string) (Module, error) {
	columns := strings.Fields(line)
	if len(columns) < minModuleColumns {
		return Module{}, &ParseError{Line: line, Columns: len(columns)}
	}
	name := columns[0]
	if len(columns) >= 7 {
		name = name + " " + columns[6]
	}
	size, _ := strconv.ParseUint(columns[1], 10, 64)
	useCount, _ := strconv.Atoi(columns[2])
	dependents := strings.TrimSuffix(columns[3], ",")
	usedBy := columns[2] + " " + dependents
	var deps []string
	if dependents != "-" && dependents != "" {
		deps = strings.Split(dependents, ",")
	}
	return Module{
		Name:       name,
		Size:       humanize.Bytes(size),
		UseCount:   useCount,
		UsedBy:     usedBy,
		Dependents: deps,
		Raw:        line,
	}, nil
}

// Base returns the module name without any appended column.
func (m Module) Base() string {
	fields := strings.Fields(m.Name)
	if len(fields) == 0 {
		return "?"
	}
	return fields[0]
}

// parseModules parses every non-blank line of a listing.
func parseModules(content string) ([]Module, error) {
	var modules []Module
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		mod, err := ParseModuleLine(line)
		if err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}
	return modules, nil
}
