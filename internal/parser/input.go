package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/asserthint/internal/errors"
)

// ReadInput reads r to completion. A positive limit caps the number of
// bytes accepted; larger input is rejected rather than truncated.
func ReadInput(reader io.Reader, limit int64) (string, error) {
	src := reader
	if limit > 0 {
		src = io.LimitReader(reader, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", errors.NewInputError("failed to read input", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", errors.NewInputError(
			fmt.Sprintf("input is larger than %d bytes", limit),
			errors.ErrInputTooLarge,
		)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// ReadFile reads the assertion message stored at filePath.
func ReadFile(filePath string, limit int64) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return "", errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return ReadInput(file, limit)
}
