// Package csvio reads submission sheets and writes ranking outputs as CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shirafune/gmrank/internal/domain/model"
)

// Submission sheet column names.
const (
	colDate       = "submission_date"
	colTime       = "submission_time"
	colPlayerID   = "sns_id"
	colName       = "user_name"
	colSong       = "song_name"
	colOptions    = "options"
	colScore      = "score"
	colClearLamp  = "clear_lamp"
	colBestLamp   = "best_clear_lamp"
	colPlayFormat = "play_format"
	colComment    = "comment"
	colPostURL    = "post_url"
)

// ReadSubmissions decodes a submission sheet. Rows are returned in file
// order; missing columns default to empty, and non-numeric or negative
// scores become 0 rather than failing the row.
func ReadSubmissions(path string) ([]model.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open submissions: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read submissions header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var subs []model.Submission
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read submissions row: %w", err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		subs = append(subs, model.Submission{
			PlayerID:    strings.TrimSpace(field(colPlayerID)),
			DisplayName: strings.TrimSpace(field(colName)),
			Title:       field(colSong),
			RawOptions:  field(colOptions),
			Score:       parseScore(field(colScore)),
			ClearLamp:   field(colClearLamp),
			BestLamp:    field(colBestLamp),
			Date:        strings.TrimSpace(field(colDate)),
			Time:        strings.TrimSpace(field(colTime)),
			PlayFormat:  strings.TrimSpace(field(colPlayFormat)),
			Comment:     field(colComment),
			Ref:         strings.TrimSpace(field(colPostURL)),
		})
	}
	return subs, nil
}

// parseScore treats anything that is not a non-negative integer as 0. Bad
// scores are a recoverable data-quality issue, never a row failure.
func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
