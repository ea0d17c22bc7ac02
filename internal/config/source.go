package config

import (
	"fmt"
	"io/fs"
	"os"

	"main/internal/errors"

	"github.com/pelletier/go-toml/v2"
)

// RawTree is the untyped configuration tree produced by Load. No
// semantic validation has happened yet; unknown keys, wrong types and
// missing sections all pass through unexamined.
type RawTree map[string]any

var (
	// ErrNotFound reports a missing configuration file.
	ErrNotFound = errors.New("config file not found")
	// ErrPermission reports an unreadable configuration file.
	ErrPermission = errors.New("config file permission denied")
)

// ParseError reports malformed TOML with its source position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Load reads a TOML configuration file into an untyped tree.
func Load(path string) (RawTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(ErrNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return nil, errors.Wrap(ErrPermission, path)
		}
		return nil, err
	}

	var tree RawTree
	if err := toml.Unmarshal(data, &tree); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, &ParseError{Line: row, Column: col, Message: de.Error()}
		}
		return nil, errors.Wrap(err, "decode config")
	}

	return tree, nil
}
