package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// PromotionRepository handles database operations for the promotions table
type PromotionRepository struct {
	db DB
}

// NewPromotionRepository creates a new PromotionRepository
func NewPromotionRepository(db DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

const promotionColumns = `id, provider_id, title, description, discount_percentage, max_discount_amount, min_purchase_amount, start_date, end_date, amount, created_at`

// Create inserts a new promotion
func (r *PromotionRepository) Create(promotion *models.Promotion) error {
	query := `
		INSERT INTO promotions (
			id, provider_id, title, description, discount_percentage,
			max_discount_amount, min_purchase_amount, start_date, end_date, amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	if promotion.ID == uuid.Nil {
		promotion.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		promotion.ID, promotion.ProviderID, promotion.Title, promotion.Description,
		promotion.DiscountPercentage, promotion.MaxDiscountAmount, promotion.MinPurchaseAmount,
		promotion.StartDate, promotion.EndDate, promotion.Amount,
	).Scan(&promotion.CreatedAt)
}

// GetByID retrieves a promotion by ID
func (r *PromotionRepository) GetByID(promotionID uuid.UUID) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	return scanPromotion(r.db.QueryRow(query, promotionID))
}

// List retrieves all promotions
func (r *PromotionRepository) List() ([]models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := []models.Promotion{}
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, *promotion)
	}

	return promotions, rows.Err()
}

// Update persists changes to a promotion
func (r *PromotionRepository) Update(promotion *models.Promotion) error {
	query := `
		UPDATE promotions
		SET title = $2, description = $3, discount_percentage = $4,
			max_discount_amount = $5, min_purchase_amount = $6,
			start_date = $7, end_date = $8, amount = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		promotion.ID, promotion.Title, promotion.Description, promotion.DiscountPercentage,
		promotion.MaxDiscountAmount, promotion.MinPurchaseAmount,
		promotion.StartDate, promotion.EndDate, promotion.Amount,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a promotion
func (r *PromotionRepository) Delete(promotionID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM promotions WHERE id = $1`, promotionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanPromotion(row scanner) (*models.Promotion, error) {
	promotion := &models.Promotion{}
	err := row.Scan(
		&promotion.ID, &promotion.ProviderID, &promotion.Title, &promotion.Description,
		&promotion.DiscountPercentage, &promotion.MaxDiscountAmount, &promotion.MinPurchaseAmount,
		&promotion.StartDate, &promotion.EndDate, &promotion.Amount, &promotion.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return promotion, nil
}
