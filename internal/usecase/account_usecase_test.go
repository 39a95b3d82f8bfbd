package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
	"github.com/xiri/xiri-api/internal/usecase/mocks"
)

func newAccountUseCase() (*usecase.AccountUseCase, *mocks.MockAccountRepository, *mocks.MockOutboxRepository) {
	repo := mocks.NewMockAccountRepository()
	outbox := mocks.NewMockOutboxRepository()
	uc := usecase.NewAccountUseCase(repo, outbox, mocks.NewMockIDGenerator(), zerolog.New(io.Discard))
	return uc, repo, outbox
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("starts in lead stage", func(t *testing.T) {
		uc, _, _ := newAccountUseCase()
		account, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:        "Lakeside Clinic",
			TerritoryID: "ter-1",
			ZipCode:     "55401",
			OwnerID:     "user-1",
		})
		if err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		if account.Stage != domain.StageLead {
			t.Errorf("Stage = %v, want lead", account.Stage)
		}
	})

	t.Run("invalid zip", func(t *testing.T) {
		uc, _, _ := newAccountUseCase()
		if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: "X", ZipCode: "123"}); err == nil {
			t.Error("CreateAccount() error = nil, want validation error")
		}
	})

	t.Run("zip optional", func(t *testing.T) {
		uc, _, _ := newAccountUseCase()
		if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: "Lakeside Clinic"}); err != nil {
			t.Errorf("CreateAccount() error = %v, want nil for missing zip", err)
		}
	})
}

func TestMoveStage(t *testing.T) {
	ctx := context.Background()

	t.Run("stage moves and event recorded", func(t *testing.T) {
		uc, repo, outbox := newAccountUseCase()
		repo.Create(ctx, &domain.Account{ID: "acc-1", Stage: domain.StageLead})

		account, err := uc.MoveStage(ctx, "acc-1", domain.StageContacted)
		if err != nil {
			t.Fatalf("MoveStage() error = %v", err)
		}
		if account.Stage != domain.StageContacted {
			t.Errorf("Stage = %v, want contacted", account.Stage)
		}
		if got := outbox.EventTypes(); len(got) != 1 || got[0] != domain.EventTypeAccountStageMoved {
			t.Errorf("recorded events = %v, want [%s]", got, domain.EventTypeAccountStageMoved)
		}
	})

	t.Run("unknown stage", func(t *testing.T) {
		uc, repo, _ := newAccountUseCase()
		repo.Create(ctx, &domain.Account{ID: "acc-1", Stage: domain.StageLead})

		_, err := uc.MoveStage(ctx, "acc-1", domain.AccountStage("archived"))
		if !errors.Is(err, domain.ErrInvalidStage) {
			t.Errorf("MoveStage() error = %v, want ErrInvalidStage", err)
		}
	})

	t.Run("outbox failure does not fail the move", func(t *testing.T) {
		uc, repo, outbox := newAccountUseCase()
		repo.Create(ctx, &domain.Account{ID: "acc-1", Stage: domain.StageLead})
		outbox.CreateFunc = func(ctx context.Context, event *domain.OutboxEvent) error {
			return errors.New("insert failed")
		}

		if _, err := uc.MoveStage(ctx, "acc-1", domain.StageWon); err != nil {
			t.Errorf("MoveStage() error = %v, want nil", err)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		uc, _, _ := newAccountUseCase()
		_, err := uc.MoveStage(ctx, "acc-x", domain.StageWon)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("MoveStage() error = %v, want ErrAccountNotFound", err)
		}
	})
}

func TestAddContact(t *testing.T) {
	ctx := context.Background()

	t.Run("contact attached", func(t *testing.T) {
		uc, repo, _ := newAccountUseCase()
		repo.Create(ctx, &domain.Account{ID: "acc-1", Stage: domain.StageLead})

		contact, err := uc.AddContact(ctx, usecase.AddContactInput{
			AccountID: "acc-1",
			Name:      "Dana Reyes",
			Title:     "Facilities Director",
			Email:     "dana@lakeside.test",
		})
		if err != nil {
			t.Fatalf("AddContact() error = %v", err)
		}
		if contact.AccountID != "acc-1" {
			t.Errorf("AccountID = %q, want acc-1", contact.AccountID)
		}

		detail, err := uc.GetAccount(ctx, "acc-1")
		if err != nil {
			t.Fatalf("GetAccount() error = %v", err)
		}
		if len(detail.Contacts) != 1 {
			t.Errorf("len(Contacts) = %d, want 1", len(detail.Contacts))
		}
	})

	t.Run("missing account", func(t *testing.T) {
		uc, _, _ := newAccountUseCase()
		_, err := uc.AddContact(ctx, usecase.AddContactInput{AccountID: "acc-x", Name: "Dana"})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("AddContact() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("bad email", func(t *testing.T) {
		uc, repo, _ := newAccountUseCase()
		repo.Create(ctx, &domain.Account{ID: "acc-1"})
		if _, err := uc.AddContact(ctx, usecase.AddContactInput{AccountID: "acc-1", Name: "Dana", Email: "not-an-email"}); err == nil {
			t.Error("AddContact() error = nil, want validation error")
		}
	})
}
