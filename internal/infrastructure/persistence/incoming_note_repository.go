package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIncomingNoteRepository implements inventory.IncomingNoteRepository using GORM
type GormIncomingNoteRepository struct {
	*CrudRepository[inventory.IncomingNote]
}

// NewGormIncomingNoteRepository creates a new GormIncomingNoteRepository
func NewGormIncomingNoteRepository(db *gorm.DB) *GormIncomingNoteRepository {
	return &GormIncomingNoteRepository{NewCrudRepository[inventory.IncomingNote](db, map[string]bool{
		"number":     true,
		"status":     true,
		"created_at": true,
	})}
}

// Save persists the note and replaces its item collection in one transaction
func (r *GormIncomingNoteRepository) Save(ctx context.Context, note *inventory.IncomingNote) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(note).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", note.ID).Delete(&inventory.IncomingNoteItem{}).Error; err != nil {
			return err
		}
		if len(note.Items) == 0 {
			return nil
		}
		for i := range note.Items {
			note.Items[i].NoteID = note.ID
		}
		return tx.Create(&note.Items).Error
	})
	return TranslateError("IncomingNote.Save", err)
}

// FindByIDForCompany loads the note with its items
func (r *GormIncomingNoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*inventory.IncomingNote, error) {
	var note inventory.IncomingNote
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&note).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("IncomingNote.FindByIDForCompany", err)
	}
	return &note, nil
}

// Post writes the posted note, its movements and the stock deltas in one
// transaction so a failed posting leaves nothing behind
func (r *GormIncomingNoteRepository) Post(ctx context.Context, note *inventory.IncomingNote, movements []*inventory.Movement) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(note).Error; err != nil {
			return err
		}
		for _, movement := range movements {
			if err := applyMovement(tx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	return TranslateError("IncomingNote.Post", err)
}
