package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cfgpkg "github.com/KaramelBytes/mbtiboard/internal/config"
	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/present"
)

const fixtureCSV = `Country,INFJ,ISFJ,INTP,ISFP,ENTP,INFP,ENTJ,ISTP,INTJ,ESFP,ESTJ,ENFP,ESTP,ISTJ,ENFJ,ESFJ
Chile,0.05,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633,0.0633
Austria,0.07,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062,0.062
Benin,0.06,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627,0.0627
`

// resetFlags restores every flag to its default so Changed state and bound
// variables do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupHome isolates config under a temp HOME and writes the fixture dataset.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, "mbti.csv")
	if err := os.WriteFile(p, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is execute that fails the test on error.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func TestCLI_TypesAndCountries(t *testing.T) {
	data := setupHome(t)

	out := runCmd(t, "types")
	if got := strings.Fields(out); strings.Join(got, ",") != strings.Join(dataset.Labels(), ",") {
		t.Fatalf("types output = %q", out)
	}

	out = runCmd(t, "countries", "--data", data)
	if got := strings.Fields(out); strings.Join(got, ",") != "Austria,Benin,Chile" {
		t.Fatalf("countries output = %q", out)
	}
}

func TestCLI_RankJSONAndMarkdownFile(t *testing.T) {
	data := setupHome(t)

	out := runCmd(t, "rank", "INFJ", "--data", data, "--top", "2", "--format", "json")
	var v present.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if v.Title != "Top 2 countries for INFJ" || len(v.Rows) != 2 {
		t.Fatalf("view = %+v", v)
	}
	if v.Rows[0].Label != "Austria" || v.Rows[0].Percent != "7.00" {
		t.Fatalf("first row = %+v", v.Rows[0])
	}

	md := filepath.Join(t.TempDir(), "reports", "infj.md")
	out = runCmd(t, "rank", "INFJ", "--data", data, "--order", "asc", "--format", "markdown", "-o", md)
	if !strings.Contains(out, "✓ Wrote rank view to") {
		t.Fatalf("unexpected output: %q", out)
	}
	b, err := os.ReadFile(md)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), "## Top 3 countries for INFJ") || !strings.Contains(string(b), "| 1 | Chile | 5.00 |") {
		t.Fatalf("markdown = %s", b)
	}
}

func TestCLI_RankDefaultsFromConfig(t *testing.T) {
	data := setupHome(t)
	runCmd(t, "config", "set", "top_n", "1")

	out := runCmd(t, "rank", "INFJ", "--data", data, "--format", "json")
	var v present.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Rows) != 1 {
		t.Fatalf("rows = %d, want top_n from config", len(v.Rows))
	}
}

func TestCLI_RankRejectsUnknownType(t *testing.T) {
	data := setupHome(t)
	_, err := execute(t, "rank", "infj", "--data", data)
	if !errors.Is(err, dataset.ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	if _, err := execute(t, "rank", "INFJ", "--data", data, "--top", "0"); err == nil {
		t.Fatalf("expected error for --top 0")
	}
}

func TestCLI_ProfileTextAndErrors(t *testing.T) {
	data := setupHome(t)

	out := runCmd(t, "profile", "Chile", "--data", data)
	if !strings.Contains(out, "MBTI distribution for Chile") || !strings.Contains(out, "6.33") {
		t.Fatalf("profile output = %q", out)
	}

	out = runCmd(t, "profile", "Chile", "--data", data, "--asc", "--format", "json")
	var v present.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Rows[0].Label != "INFJ" {
		t.Fatalf("ascending profile starts with %s", v.Rows[0].Label)
	}

	if _, err := execute(t, "profile", "Atlantis", "--data", data); !errors.Is(err, dataset.ErrUnknownCountry) {
		t.Fatalf("err = %v, want ErrUnknownCountry", err)
	}
	if _, err := execute(t, "profile", "Chile", "--data", data, "--format", "pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCLI_MissingDataset(t *testing.T) {
	home := setupHome(t)
	_, err := execute(t, "countries", "--data", filepath.Join(filepath.Dir(home), "missing.csv"))
	if !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestCLI_PreviewAndSummary(t *testing.T) {
	data := setupHome(t)

	out := runCmd(t, "preview", "--data", data, "--rows", "2", "--format", "json")
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 2 || rows[0]["Country"] != "Chile" {
		t.Fatalf("preview = %v", rows)
	}

	out = runCmd(t, "preview", "--data", data)
	if !strings.Contains(out, "(3 of 3 rows)") || !strings.Contains(out, "Benin") {
		t.Fatalf("preview text = %q", out)
	}

	out = runCmd(t, "summary", "--data", data)
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 3", "[SCHEMA]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setupHome(t)

	runCmd(t, "config", "set", "dataset_path", "/srv/mbti.tsv")
	runCmd(t, "config", "set", "sort_descending", "false")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "dataset_path: /srv/mbti.tsv") || !strings.Contains(out, "sort_descending: false") {
		t.Fatalf("config show = %q", out)
	}

	if _, err := execute(t, "config", "set", "top_n", "zero"); err == nil {
		t.Fatalf("expected error for invalid top_n")
	}
	if _, err := execute(t, "config", "set", "colour", "blue"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_HelpDefersDefaultsToConfig(t *testing.T) {
	setupHome(t)
	cases := map[string][]string{
		"rank":    {"default from config top_n"},
		"preview": {"default from config sample_rows"},
		"serve":   {"default from config listen_addr"},
	}
	for name, wants := range cases {
		out := runCmd(t, name, "--help")
		for _, want := range wants {
			if !strings.Contains(out, want) {
				t.Errorf("%s --help missing %q", name, want)
			}
		}
		for _, stale := range []string{"(default 10)", "(default 5)", `(default ":8080")`} {
			if strings.Contains(out, stale) {
				t.Errorf("%s --help shows a hard-coded default %s:\n%s", name, stale, out)
			}
		}
	}
}

func TestCLI_ConfigSetDoesNotPersistEnv(t *testing.T) {
	setupHome(t)
	t.Setenv("MBTIBOARD_TOP_N", "3")

	runCmd(t, "config", "set", "dataset_path", "/srv/mbti.csv")
	path, err := cfgpkg.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	saved, err := cfgpkg.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if saved.DatasetPath != "/srv/mbti.csv" {
		t.Fatalf("dataset_path = %q", saved.DatasetPath)
	}
	if saved.TopN != 10 {
		t.Fatalf("top_n = %d written to file, want default 10", saved.TopN)
	}
}
