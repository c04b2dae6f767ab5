package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hoboqc/domain/series"
)

func TestArchive_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer archive.Close()

	base, _ := time.Parse(time.DateTime, "2018-12-10 00:00:00")
	records := []series.HourlyRecord{
		{Timestamp: base, Temperature: 4.5, FlagCount: 0, Provenance: series.ProvenanceMeasured},
		{Timestamp: base.Add(time.Hour), Temperature: 5.5, FlagCount: 3, Provenance: series.ProvenanceRegressed},
	}
	if err := archive.WriteHourly(context.Background(), "run-1", records); err != nil {
		t.Fatalf("WriteHourly failed: %v", err)
	}

	type row struct {
		Date      string  `db:"date"`
		Hour      int     `db:"hour"`
		Th        float64 `db:"th"`
		Origin    string  `db:"origin"`
		FlagCount int     `db:"flag_count"`
	}
	var rows []row
	if err := archive.db.Select(&rows, `SELECT date, hour, th, origin, flag_count FROM hourly_series WHERE run_id = ? ORDER BY hour`, "run-1"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Date != "2018-12-10" || rows[0].Hour != 0 || rows[0].Th != 4.5 || rows[0].Origin != "H" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Origin != "R" || rows[1].FlagCount != 3 {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestArchive_SeparateRunsCoexist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer archive.Close()

	base, _ := time.Parse(time.DateTime, "2018-12-10 00:00:00")
	records := []series.HourlyRecord{
		{Timestamp: base, Temperature: 1.0, Provenance: series.ProvenanceMeasured},
	}

	if err := archive.WriteHourly(context.Background(), "run-1", records); err != nil {
		t.Fatal(err)
	}
	if err := archive.WriteHourly(context.Background(), "run-2", records); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := archive.db.Get(&n, `SELECT COUNT(*) FROM hourly_series`); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %d archived rows, want 2", n)
	}
}
