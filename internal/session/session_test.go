package session

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/mbtiboard/internal/analysis"
	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/query"
)

// writeDataset writes Chile, Austria, Benin with INFJ 0.05, 0.06, 0.07.
func writeDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Country," + strings.Join(dataset.Labels(), ",") + "\n")
	for i, name := range []string{"Chile", "Austria", "Benin"} {
		b.WriteString(name)
		for j := 0; j < dataset.NumTypes; j++ {
			v := 0.0625
			if j == 0 {
				v = 0.05 + float64(i)/100
			}
			b.WriteString("," + strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteString("\n")
	}
	p := filepath.Join(t.TempDir(), "mbti.csv")
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestOpenLogsWithSessionID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := Open(dataset.NewCache(dataset.Options{}), writeDataset(t), zap.New(core))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.ID == "" || s.Table.Len() != 3 {
		t.Fatalf("unexpected session: id=%q rows=%d", s.ID, s.Table.Len())
	}
	entries := logs.FilterMessage("dataset loaded").All()
	if len(entries) != 1 {
		t.Fatalf("dataset loaded logged %d times", len(entries))
	}
	if got := entries[0].ContextMap()["session"]; got != s.ID {
		t.Fatalf("session field = %v, want %s", got, s.ID)
	}
	if got := entries[0].ContextMap()["rows"]; got != int64(3) {
		t.Fatalf("rows field = %v", got)
	}
}

func TestSessionsShareCachedTable(t *testing.T) {
	cache := dataset.NewCache(dataset.Options{})
	p := writeDataset(t)
	a, err := Open(cache, p, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := Open(cache, p, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("sessions share an id")
	}
	if a.Table != b.Table || cache.Loads() != 1 {
		t.Fatalf("table loaded %d times", cache.Loads())
	}
}

func TestOpenMissingSource(t *testing.T) {
	_, err := Open(dataset.NewCache(dataset.Options{}), filepath.Join(t.TempDir(), "nope.csv"), nil)
	if !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestSessionQueries(t *testing.T) {
	s, err := Open(dataset.NewCache(dataset.Options{}), writeDataset(t), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.Countries(); strings.Join(got, ",") != "Austria,Benin,Chile" {
		t.Fatalf("countries = %v", got)
	}
	if got := s.Types(); len(got) != dataset.NumTypes || got[0] != "INFJ" {
		t.Fatalf("types = %v", got)
	}
	if got := s.Preview(2); len(got) != 2 || got[0].Country != "Chile" {
		t.Fatalf("preview = %v", got)
	}

	ranked, err := s.Rank("INFJ", 2, query.Descending)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Country != "Benin" || ranked[1].Country != "Austria" {
		t.Fatalf("ranked = %+v", ranked)
	}
	if _, err := s.Rank("XXXX", 2, query.Descending); !errors.Is(err, dataset.ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}

	prof, err := s.Profile("Chile", false)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(prof) != dataset.NumTypes || prof[0].Type != dataset.INFJ {
		t.Fatalf("profile = %+v", prof)
	}
	if _, err := s.Profile("Atlantis", true); !errors.Is(err, dataset.ErrUnknownCountry) {
		t.Fatalf("err = %v, want ErrUnknownCountry", err)
	}

	if rep := s.Summary(analysis.DefaultOptions()); rep.Rows != 3 {
		t.Fatalf("summary rows = %d", rep.Rows)
	}
}
