package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/domain"
)

// AccountUseCase handles prospect accounts in the sales pipeline.
type AccountUseCase struct {
	accountRepo AccountRepository
	outbox      OutboxRepository
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new account use case.
func NewAccountUseCase(accountRepo AccountRepository, outbox OutboxRepository, idGen IDGenerator, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		outbox:      outbox,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateAccountInput represents input for creating a prospect account.
type CreateAccountInput struct {
	Name        string
	TerritoryID string
	ZipCode     string
	OwnerID     string
}

// CreateAccount creates a new prospect account in the lead stage.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if input.ZipCode != "" {
		if err := domain.ValidateZipCode(input.ZipCode); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		TerritoryID: input.TerritoryID,
		ZipCode:     input.ZipCode,
		Stage:       domain.StageLead,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// AccountDetail bundles an account with its contacts for the detail page.
type AccountDetail struct {
	Account  *domain.Account
	Contacts []*domain.Contact
}

// GetAccount retrieves an account with its contacts.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*AccountDetail, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contacts, err := uc.accountRepo.ListContacts(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AccountDetail{Account: account, Contacts: contacts}, nil
}

// ListAccounts lists accounts matching the filter.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, filter AccountFilter) ([]*domain.Account, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.accountRepo.List(ctx, filter)
}

// MoveStage moves an account to a new pipeline stage.
func (uc *AccountUseCase) MoveStage(ctx context.Context, id string, stage domain.AccountStage) (*domain.Account, error) {
	if !stage.IsValid() {
		return nil, domain.ErrInvalidStage
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStage(ctx, id, stage, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   id,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountStageMoved,
		Payload: map[string]any{
			"account_id": id,
			"from":       string(account.Stage),
			"to":         string(stage),
		},
		CreatedAt: now,
	}
	if err := uc.outbox.Create(ctx, event); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", id).Msg("failed to record stage event")
	}

	account.Stage = stage
	account.UpdatedAt = now
	return account, nil
}

// AddContactInput represents input for adding a contact to an account.
type AddContactInput struct {
	AccountID string
	Name      string
	Title     string
	Email     string
	Phone     string
}

// AddContact attaches a contact to an account.
func (uc *AccountUseCase) AddContact(ctx context.Context, input AddContactInput) (*domain.Contact, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := domain.ValidateEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Name:      input.Name,
		Title:     input.Title,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.accountRepo.AddContact(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}
