package repository

import (
	"github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type (
	LessonPlanRepository interface {
		Create(db *gorm.DB, plan *entity.LessonPlan) error
		FindLatestByUserID(db *gorm.DB, userID string) (*entity.LessonPlan, error)
		// UpdateProgress rewrites the modules JSON and the current index in a
		// single row update. Per-row atomicity is the only concurrency
		// guarantee; concurrent turns for the same user are last-write-wins.
		UpdateProgress(db *gorm.DB, planID uint, modules string, currentModuleIndex int) error
		UpdateModules(db *gorm.DB, planID uint, modules string) error
	}

	lessonPlanRepository struct {
		db *gorm.DB
	}
)

func NewLessonPlanRepository(db *gorm.DB) LessonPlanRepository {
	return &lessonPlanRepository{db: db}
}

func (r *lessonPlanRepository) Create(db *gorm.DB, plan *entity.LessonPlan) error {
	if db == nil {
		db = r.db
	}
	return db.Create(plan).Error
}

func (r *lessonPlanRepository) FindLatestByUserID(db *gorm.DB, userID string) (*entity.LessonPlan, error) {
	if db == nil {
		db = r.db
	}
	var plan entity.LessonPlan
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *lessonPlanRepository) UpdateProgress(db *gorm.DB, planID uint, modules string, currentModuleIndex int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.LessonPlan{}).
		Where("id = ?", planID).
		Updates(map[string]any{
			"modules":              modules,
			"current_module_index": currentModuleIndex,
		}).Error
}

func (r *lessonPlanRepository) UpdateModules(db *gorm.DB, planID uint, modules string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.LessonPlan{}).
		Where("id = ?", planID).
		UpdateColumn("modules", modules).Error
}
