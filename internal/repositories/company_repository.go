package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB  *gorm.DB
	Seq SequenceAllocator
}

// Create stores the company with a freshly minted COMP_NOVSARC code. Names
// are unique ignoring case; manual codes are unique after upper-casing.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.CompanyCode = strings.ToUpper(strings.TrimSpace(company.CompanyCode))

	err := withSequence(ctx, r.DB, r.Seq, models.SequenceCompanyNovusarc, func(tx *gorm.DB, n int64) error {
		var count int64
		if err := tx.Model(&models.Company{}).Where("LOWER(name) = LOWER(?)", company.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCompanyName
		}
		if err := tx.Model(&models.Company{}).Where("company_code = ?", company.CompanyCode).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCompanyCode
		}

		company.CompanyCodeNovusarc = utils.FormatCode(models.CompanyCodePrefix, n)
		if err := tx.Create(company).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateCompanyCode
			}
			return fmt.Errorf("create company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return findCompany(r.DB.WithContext(ctx), id)
}

func findCompany(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns active companies by name. An empty search matches every
// active company.
func (r *CompanyRepository) List(ctx context.Context, search string, page, limit int) ([]models.Company, int, error) {
	query := r.DB.WithContext(ctx).Model(&models.Company{}).Where("is_active = ?", true)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company_code) LIKE ?", like, like)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = pageBounds(page, limit)
	var companies []models.Company
	err := query.Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, int(total), nil
}

// Update renames or edits the company. A new name keeps the case-insensitive
// uniqueness of Create and refreshes the slug.
func (r *CompanyRepository) Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	var updated *models.Company
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := findCompany(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Name != nil && *patch.Name != company.Name {
			var count int64
			err := tx.Model(&models.Company{}).
				Where("LOWER(name) = LOWER(?) AND id <> ?", *patch.Name, id).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateCompanyName
			}
			updates["name"] = *patch.Name
			updates["slug"] = models.Slugify(*patch.Name)
		}
		if patch.Website != nil {
			updates["website"] = *patch.Website
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}

		if len(updates) > 0 {
			if err := tx.Model(company).Updates(updates).Error; err != nil {
				return fmt.Errorf("update company: %w", err)
			}
		}

		updated, err = findCompany(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetActive soft-deletes or restores the company. Inactive companies drop
// out of List but stay reachable by id.
func (r *CompanyRepository) SetActive(ctx context.Context, id string, active bool) (*models.Company, error) {
	var updated *models.Company
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := findCompany(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(company).Update("is_active", active).Error; err != nil {
			return fmt.Errorf("set company active: %w", err)
		}
		updated, err = findCompany(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
