package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	"github.com/skawamoto/MedakaDB/types"
)

// LoadSchema bootstraps tables from a line-oriented text file. Each
// line registers one table:
//
//	name (field type[ pk], field type[ pk], ...)
//
// type is int or string, case-insensitive; an optional third token
// must be exactly "pk" and marks that field as the primary key. Heap
// files are rooted next to the schema file, as <name>.dat.
//
// Any malformed line, unknown type or annotation token, or I/O
// failure aborts the whole load. Loading is fail-fast on purpose:
// the failing line registers nothing and no further lines are
// processed.
func (c *Catalog) LoadSchema(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrSchemaLoad, path, err)
	}
	baseDir := filepath.Dir(absPath)

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("%w: can't open %s: %v", errors.ErrSchemaLoad, absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if err := c.loadSchemaLine(line, baseDir); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %v", errors.ErrSchemaLoad, absPath, err)
	}
	return nil
}

func (c *Catalog) loadSchemaLine(line string, baseDir string) error {
	lparen := strings.Index(line, "(")
	rparen := strings.Index(line, ")")
	if lparen < 0 || rparen < lparen {
		return fmt.Errorf("%w: invalid catalog entry: %s", errors.ErrSchemaLoad, line)
	}

	name := strings.TrimSpace(line[:lparen])
	fields := strings.Split(line[lparen+1:rparen], ",")

	columns := make([]*column.Column, 0, len(fields))
	primaryKey := ""
	for _, field := range fields {
		tokens := strings.Fields(field)
		if len(tokens) != 2 && len(tokens) != 3 {
			return fmt.Errorf("%w: invalid catalog entry: %s", errors.ErrSchemaLoad, line)
		}

		typeID, err := types.NewTypeIDFromToken(tokens[1])
		if err != nil {
			return fmt.Errorf("%w: unknown type %s", errors.ErrSchemaLoad, tokens[1])
		}
		if len(tokens) == 3 {
			if tokens[2] != "pk" {
				return fmt.Errorf("%w: unknown annotation %s", errors.ErrSchemaLoad, tokens[2])
			}
			primaryKey = tokens[0]
		}
		columns = append(columns, column.NewColumn(tokens[0], typeID))
	}

	schema_, err := schema.NewSchema(columns)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrSchemaLoad, line, err)
	}

	heapFile, err := heap.NewHeapFile(filepath.Join(baseDir, name+".dat"), schema_, c.pool)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrSchemaLoad, name, err)
	}
	if _, err := c.AddTable(heapFile, name, primaryKey); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrSchemaLoad, name, err)
	}
	return nil
}
