package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		out, err := executeRoot(t, "history",
			"--config", writeConfig(t, ""),
			"--db-dir", filepath.Join(t.TempDir(), "db"),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, noHistoryMessage) {
			t.Errorf("expected empty-history message:\n%s", out)
		}
	})

	t.Run("lists runs recorded by collect", func(t *testing.T) {
		t.Parallel()

		srv, _ := registryServer(t, 30, 20)
		dbDir := filepath.Join(t.TempDir(), "db")
		cfgPath := writeConfig(t, "pageDelay: 0s\nhistory: true\ndbDir: "+dbDir+"\n")

		for _, category := range []string{"", "의료"} {
			args := []string{"collect", "--config", cfgPath, "--endpoint", srv.URL, "--output-dir", t.TempDir()}
			if category != "" {
				args = append(args, "--business-category", category)
			}
			out, err := executeRoot(t, args...)
			if err != nil {
				t.Fatalf("collect failed: %v", err)
			}
			if !strings.Contains(out, "History: run #") {
				t.Errorf("expected history id in collect output:\n%s", out)
			}
		}

		out, err := executeRoot(t, "history", "--config", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Digest", "30/30", "(all)", "category=의료"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
		if strings.Index(out, "category=의료") > strings.Index(out, "(all)") {
			t.Errorf("expected newest run first:\n%s", out)
		}

		out, err = executeRoot(t, "history", "--config", cfgPath, "--json", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var entries []historyEntry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, out)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry with -n 1, got %d", len(entries))
		}
		if entries[0].BusinessCategory != "의료" || entries[0].Collected != 30 || len(entries[0].Digest) != 64 {
			t.Errorf("unexpected entry: %+v", entries[0])
		}
	})
}
