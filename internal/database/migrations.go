package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations runs custom data migrations after schema changes.
// Every step is safe to run repeatedly.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if err := migratePrintingField(db, log); err != nil {
		return err
	}
	if err := migrateLanguageField(db, log); err != nil {
		return err
	}
	return migrateSetNames(db, log)
}

// migratePrintingField converts the legacy foil flag column into the Printing
// column. Only rows with an empty printing value are touched.
func migratePrintingField(db *gorm.DB, log *zap.Logger) error {
	if db.Migrator().HasColumn("collection_items", "foil") {
		log.Info("migrating collection_items: foil -> printing")

		result := db.Exec(`
			UPDATE collection_items
			SET printing = CASE
				WHEN foil = 1 THEN 'Foil'
				ELSE 'Normal'
			END
			WHERE printing IS NULL OR printing = ''
		`)
		if result.Error != nil {
			log.Warn("failed to migrate collection_items foil column", zap.Error(result.Error))
		} else {
			log.Info("migrated collection_items rows", zap.Int64("rows", result.RowsAffected))
		}
	}

	if err := db.Exec(`UPDATE collection_items SET printing = 'Normal' WHERE printing IS NULL OR printing = ''`).Error; err != nil {
		return err
	}
	return nil
}

func migrateLanguageField(db *gorm.DB, log *zap.Logger) error {
	result := db.Exec(`UPDATE collection_items SET language = 'English' WHERE language IS NULL OR language = ''`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info("defaulted collection_items language", zap.Int64("rows", result.RowsAffected))
	}
	return nil
}

// migrateSetNames backfills cards.set_name from the sets table for catalogs
// that were loaded before the column existed.
func migrateSetNames(db *gorm.DB, log *zap.Logger) error {
	result := db.Exec(`
		UPDATE cards
		SET set_name = (SELECT sets.name FROM sets WHERE sets.code = cards.set_code)
		WHERE (set_name IS NULL OR set_name = '')
		  AND EXISTS (SELECT 1 FROM sets WHERE sets.code = cards.set_code)
	`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info("backfilled card set names", zap.Int64("rows", result.RowsAffected))
	}
	return nil
}
