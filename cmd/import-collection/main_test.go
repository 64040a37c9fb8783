package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/tcg-tracker/collection/internal/database"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

func seedDB(t *testing.T, path string) {
	t.Helper()
	db, err := database.Open(path, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))
	require.NoError(t, db.Create(&models.Set{Code: "ulg", Name: "Urza's Legacy"}).Error)
	require.NoError(t, db.Create(&models.Card{ID: "ulg-1", Name: "Lord of Tresserhorn", SetCode: "ulg", CardNumber: "1"}).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestImportCollectionCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tcg.db")
	exportPath := filepath.Join(dir, "export.csv")
	rejectsPath := filepath.Join(dir, "rejects.csv")
	seedDB(t, dbPath)

	export := "Count,Edition Code,Card Number,Name,Last Updated\n" +
		"2,gu,1,Lord of Tresserhorn,2023-01-01\n" +
		"1,zzz,9,Missing Card,2023-01-01\n" +
		"1,gu,1,Lord of Tresserhorn,2010-01-01\n"
	require.NoError(t, os.WriteFile(exportPath, []byte(export), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--db", dbPath,
		"--file", exportPath,
		"--rejects", rejectsPath,
		"--since", "2020-01-01",
		"--gorm-log-level", "silent",
	})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "imported:        1")
	assert.Contains(t, out.String(), "skipped by date: 1")
	assert.Contains(t, out.String(), "rejected:        1")

	rejects, err := os.ReadFile(rejectsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(rejects)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Count,Edition Code,Card Number,Name,Last Updated,Error", lines[0])

	var items []models.CollectionItem
	require.NoError(t, database.GetDB().Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestImportCollectionCommand_BadFlags(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"--rejects", filepath.Join(dir, "r.csv")}},
		{name: "bad since", args: []string{"--file", "x.csv", "--rejects", "r.csv", "--since", "soon"}},
		{name: "inverted window", args: []string{"--file", "x.csv", "--rejects", "r.csv", "--since", "2023-01-01", "--until", "2022-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}
