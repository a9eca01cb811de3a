package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"gorm.io/gorm"
)

// compositeIndex is an index over several columns that gorm struct tags do not declare.
type compositeIndex struct {
	model   interface{}
	name    string
	columns []string
}

var compositeIndexes = []compositeIndex{
	// token membership lookups by the authentication gate
	{&models.UserToken{}, "idx_user_tokens_user_id_token", []string{"user_id", "token"}},
	// listing an owner's tasks filtered by completion
	{&models.Task{}, "idx_tasks_owner_id_completed", []string{"owner_id", "completed"}},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		columns := make([]string, 0, len(idx.columns))
		for _, column := range idx.columns {
			columns = append(columns, db.Statement.Quote(column))
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			db.Statement.Quote(idx.name),
			db.Statement.Quote(stmt.Schema.Table),
			strings.Join(columns, ", "),
		)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", stmt.Schema.Table)
	}

	return nil
}
