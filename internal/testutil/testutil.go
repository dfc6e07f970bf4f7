package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/db"
	"github.com/vytor/artikelfinder/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is limited to one connection: every new :memory: connection is a new database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Words is a small fixed vocabulary. "Band" appears twice with different articles.
func Words() []models.WordEntry {
	return []models.WordEntry{
		{ID: 1, Word: "Tisch", Article: models.ArticleDer, Plural: "Tische", Translation: "table"},
		{ID: 2, Word: "Tür", Article: models.ArticleDie, Plural: "Türen", Translation: "door"},
		{ID: 3, Word: "Haus", Article: models.ArticleDas, Plural: "Häuser", Translation: "house"},
		{ID: 4, Word: "Apfel", Article: models.ArticleDer, Plural: "Äpfel", Translation: "apple"},
		{ID: 5, Word: "Ärztin", Article: models.ArticleDie, Plural: "Ärztinnen", Translation: "doctor"},
		{ID: 6, Word: "Band", Article: models.ArticleDas, Plural: "Bänder", Translation: "ribbon"},
		{ID: 7, Word: "Band", Article: models.ArticleDie, Plural: "Bands", Translation: "music band"},
		{ID: 8, Word: "Wasser", Article: models.ArticleDas, Translation: "water"},
	}
}

// NewTestCatalog builds a catalog from Words.
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	c, err := catalog.New(Words())
	require.NoError(t, err)
	return c
}
