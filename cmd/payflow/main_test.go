package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunProcess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")

	csv := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 5, 5.0
dispute, 2, 5,
chargeback, 2, 5,
`
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runProcess(context.Background(), input, output, "csv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "client,available,held,total,locked\n" +
		"1,1.0000,0.0000,1.0000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	if string(got) != want {
		t.Errorf("report mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRunProcess_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("type, client, tx, amount\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runProcess(context.Background(), input, "-", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown report format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestRunProcess_MissingInput(t *testing.T) {
	err := runProcess(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "-", "csv")
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}
