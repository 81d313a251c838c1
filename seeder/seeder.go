// Package seeder fills an empty database with demo users, accounts, cards
// and a bulk of historical transactions. It is a demo utility: failures on
// individual rows are logged and skipped, not rolled back.
package seeder

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"card-bank-api/logger"
	"card-bank-api/model"
	"card-bank-api/repository"
	"card-bank-api/service"

	"github.com/sirupsen/logrus"
)

const (
	numUsers        = 10
	numTransactions = 100_000
	batchSize       = 5_000

	startingBalance = 100_000_000
	demoPIN         = "1234"
)

type Seeder struct {
	db          *sql.DB
	userRepo    *repository.UserRepository
	accountRepo *repository.AccountRepository
	cardRepo    *repository.CardRepository
}

func New(db *sql.DB) *Seeder {
	return &Seeder{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		accountRepo: repository.NewAccountRepository(db),
		cardRepo:    repository.NewCardRepository(db),
	}
}

// Run seeds the database unless it already holds users.
func (s *Seeder) Run() error {
	log := logger.Log
	log.Info("Start seeding database")

	count, err := s.userRepo.CountUsers()
	if err != nil {
		return fmt.Errorf("could not check for existing users: %w", err)
	}
	if count > 0 {
		log.Warn("Data already exists, skipping seeding")
		return nil
	}

	hashedPIN, err := service.HashPIN(demoPIN)
	if err != nil {
		return fmt.Errorf("could not hash demo PIN: %w", err)
	}

	log.Info("Creating users, accounts and cards")
	var cardIDs []int
	for i := 0; i < numUsers; i++ {
		user := &model.User{
			FullName:   fmt.Sprintf("User %d", i),
			Mobile:     fmt.Sprintf("0912000000%d", i),
			NationalID: fmt.Sprintf("111111111%d", i),
		}
		if err := s.userRepo.CreateUser(user); err != nil {
			log.WithError(err).WithField("mobile", user.Mobile).Error("Failed to create user, skipping")
			continue
		}

		account := &model.Account{
			UserID:  user.ID,
			IBAN:    fmt.Sprintf("IR0000000000000000000000%02d", user.ID),
			Balance: startingBalance,
			Status:  model.StatusActive,
		}
		if err := s.accountRepo.CreateAccount(account); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to create account, skipping")
			continue
		}

		card := &model.Card{
			UserID:      user.ID,
			AccountID:   account.ID,
			CardNumber:  fmt.Sprintf("603799119911%04d", user.ID),
			CVV2:        "1234",
			ExpireMonth: 12,
			ExpireYear:  1405,
			Status:      model.StatusActive,
			HashedPIN:   hashedPIN,
		}
		if err := s.cardRepo.CreateCard(card); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Failed to create card, skipping")
			continue
		}
		cardIDs = append(cardIDs, card.ID)
	}

	if len(cardIDs) == 0 {
		return fmt.Errorf("no cards were created, cannot seed transactions")
	}

	log.WithField("count", numTransactions).Info("Generating historical transactions")
	if err := s.seedTransactions(cardIDs); err != nil {
		return err
	}

	log.Info("Database seeded successfully")
	return nil
}

// seedTransactions bulk-inserts random successful transfers in batches.
func (s *Seeder) seedTransactions(cardIDs []int) error {
	log := logger.Log

	inserted := 0
	for inserted < numTransactions {
		n := batchSize
		if remaining := numTransactions - inserted; remaining < n {
			n = remaining
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("could not begin batch: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO transactions
			(source_card_id, dest_card_id, amount, fee_amount, total_amount, type, status, ref_number, description, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			ON CONFLICT (ref_number) DO NOTHING`)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("could not prepare batch insert: %w", err)
		}

		for i := 0; i < n; i++ {
			src := cardIDs[rand.Intn(len(cardIDs))]
			dst := cardIDs[rand.Intn(len(cardIDs))]
			amount := int64(rand.Intn(499_000) + 1_000)
			fee := amount / 1000

			refNumber := fmt.Sprintf("SEED-%d-%06d", time.Now().UnixMilli(), inserted+i)
			if _, err := stmt.Exec(src, dst, amount, fee, amount+fee,
				model.TypeCardToCard, model.StatusSuccess, refNumber, "Seeded transfer"); err != nil {
				log.WithError(err).WithField("ref_number", refNumber).Error("Failed to insert seeded transaction, skipping")
			}
		}
		stmt.Close()

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("could not commit batch: %w", err)
		}

		inserted += n
		log.WithFields(logrus.Fields{
			"inserted": inserted,
			"total":    numTransactions,
		}).Info("Seeded transaction batch")
	}

	return nil
}
