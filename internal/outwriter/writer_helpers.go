package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/LakGar/Coco-sub001/internal/contract"
)

// writeWithFile runs write against outputFile, or stdout when no file is set.
// A file is always closed, and a failed close is reported with the write error.
func writeWithFile(outputFile string, write func(io.Writer) error) (err error) {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("cannot open output: %w", err)
	}
	if file == os.Stdout {
		return write(file)
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	if err := write(file); err != nil {
		return err
	}
	contract.Logger().Info("snapshot written", "path", outputFile)
	return nil
}

// writeJSON writes data as indented JSON. Highlight text is left unescaped.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes header, then lets writeRows add the body.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// floatFormatter renders scores with the configured number of decimals.
func floatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}
