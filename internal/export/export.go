package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

// Row is one schedule line enriched with the teacher's display name.
type Row struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Teacher string `json:"teacher"`
}

// Rows joins a generated month with the roster's name lookup. Unassigned
// days get an empty teacher column.
func Rows(assignments []model.Assignment, teachers []model.Teacher) []Row {
	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}

	rows := make([]Row, len(assignments))
	for i, a := range assignments {
		rows[i] = Row{Date: a.Date, Teacher: names[a.TeacherID]}
		if d, err := model.ParseDate(a.Date); err == nil {
			rows[i].Weekday = d.Weekday().String()
		}
	}
	return rows
}

// WriteCSV writes the schedule to w in CSV format with a header row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "weekday", "teacher"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date, r.Weekday, r.Teacher}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}
