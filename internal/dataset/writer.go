package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/lgbarn/pgn-dataset/internal/errors"
	"github.com/lgbarn/pgn-dataset/internal/extract"
)

// header is the fixed column set, in first-appearance order. History
// columns are empty for moves without enough preceding history.
var header = []string{
	"move_number",
	"piece",
	"from_square",
	"to_square",
	"is_capture",
	"is_check",
	"is_castle",
	"fen",
	"material_balance",
	"developed_pieces",
	"pst_score",
	"opponent_threats",
	"prev_1_piece",
	"prev_1_is_capture",
	"prev_2_piece",
	"prev_2_is_capture",
	"label",
}

// CSVWriter serializes rows as a delimited table with a fixed header.
type CSVWriter struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer over w. The header is written ahead of
// the first row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

func (w *CSVWriter) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	if err := w.csv.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	w.wroteHeader = true
	return nil
}

// WriteRow serializes one labeled record.
func (w *CSVWriter) WriteRow(row Row) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	rec := row.Record
	fields := []string{
		strconv.Itoa(rec.MoveNumber),
		strconv.Itoa(rec.Piece),
		strconv.Itoa(rec.FromSquare),
		strconv.Itoa(rec.ToSquare),
		strconv.FormatBool(rec.IsCapture),
		strconv.FormatBool(rec.IsCheck),
		strconv.FormatBool(rec.IsCastle),
		rec.FEN,
		strconv.Itoa(rec.MaterialBalance),
		strconv.Itoa(rec.DevelopedPieces),
		strconv.Itoa(rec.PSTScore),
		strconv.Itoa(rec.OpponentThreats),
	}
	fields = append(fields, historyFields(rec.Prev1)...)
	fields = append(fields, historyFields(rec.Prev2)...)
	fields = append(fields, string(row.Label))

	return w.csv.Write(fields)
}

// Flush writes any buffered data and reports write errors. The header is
// emitted here when no rows were written, so an empty dataset still
// carries its schema row.
func (w *CSVWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// historyFields renders a history reference, or empty cells when the move
// has no history at that depth.
func historyFields(h *extract.HistoryRef) []string {
	if h == nil {
		return []string{"", ""}
	}
	return []string{strconv.Itoa(h.Piece), strconv.FormatBool(h.IsCapture)}
}

// WriteFile serializes all rows to a CSV file at path.
func WriteFile(path string, rows []Row) error {
	file, err := os.Create(path) //nolint:gosec // G304: CLI tool writes user-specified output
	if err != nil {
		return errors.Wrapf(err, "creating output %s", path)
	}

	w := NewCSVWriter(file)
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
			return err
		}
	}
	if err := w.Flush(); err != nil {
		file.Close() //nolint:errcheck,gosec // G104: cleanup on error path
		return err
	}

	return file.Close()
}
