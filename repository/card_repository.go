package repository

import (
	"database/sql"

	"card-bank-api/logger"
	"card-bank-api/model"
)

// ICardRepository defines the contract for card database operations.
type ICardRepository interface {
	GetCardByNumber(tx *sql.Tx, cardNumber string) (*model.Card, error)
	ListCardSummariesByUserID(userID int) ([]*model.CardSummary, error)
}

// CardRepository implements ICardRepository.
type CardRepository struct {
	DB *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{DB: db}
}

// GetCardByNumber retrieves a card by its 16-digit number inside the given
// transaction. The row itself is not locked; the engine locks the owning
// account row separately so lock ordering stays under its control.
func (r *CardRepository) GetCardByNumber(tx *sql.Tx, cardNumber string) (*model.Card, error) {
	log := logger.Log.WithField("card_number", maskCardNumber(cardNumber))
	log.Info("Executing query to get card by number")

	card := &model.Card{}
	query := `SELECT id, user_id, account_id, card_number, status, hashed_pin, created_at
		FROM cards WHERE card_number = $1`
	err := tx.QueryRow(query, cardNumber).Scan(
		&card.ID, &card.UserID, &card.AccountID, &card.CardNumber,
		&card.Status, &card.HashedPIN, &card.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Card not found")
		} else {
			log.WithError(err).Error("Failed to execute get card by number query")
		}
		return nil, err
	}
	return card, nil
}

// ListCardSummariesByUserID retrieves all cards of a user joined with their
// accounts, shaped for the card-listing endpoint.
func (r *CardRepository) ListCardSummariesByUserID(userID int) ([]*model.CardSummary, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to list card summaries by user ID")

	query := `SELECT c.card_number, a.iban, a.balance
		FROM cards c
		JOIN accounts a ON a.id = c.account_id
		WHERE c.user_id = $1
		ORDER BY c.id`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for card summaries")
		return nil, err
	}
	defer rows.Close()

	var summaries []*model.CardSummary
	for rows.Next() {
		var s model.CardSummary
		if err := rows.Scan(&s.CardNumber, &s.AccountNumber, &s.Balance); err != nil {
			log.WithError(err).Error("Failed to scan card summary row")
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// CreateCard adds a new card bound to an existing user and account. Used by
// the seeder only.
func (r *CardRepository) CreateCard(card *model.Card) error {
	log := logger.Log.WithField("card_number", maskCardNumber(card.CardNumber))
	log.Info("Executing query to create a new card")

	query := `INSERT INTO cards (user_id, account_id, card_number, cvv2, expire_month, expire_year, status, hashed_pin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.DB.QueryRow(query, card.UserID, card.AccountID, card.CardNumber, card.CVV2,
		card.ExpireMonth, card.ExpireYear, card.Status, card.HashedPIN).
		Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create card query")
		return err
	}
	return nil
}

// maskCardNumber keeps only the last four digits in log output.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return "************" + cardNumber[len(cardNumber)-4:]
}
