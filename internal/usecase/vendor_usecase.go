package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/domain"
)

// VendorUseCase handles vendor sourcing and management.
type VendorUseCase struct {
	vendorRepo    VendorRepository
	territoryRepo TerritoryRepository
	directory     VendorDirectory
	outbox        OutboxRepository
	idGen         IDGenerator
	logger        zerolog.Logger
}

// NewVendorUseCase creates a new vendor use case. The directory may be nil;
// sourcing then degrades to the local vendor store.
func NewVendorUseCase(
	vendorRepo VendorRepository,
	territoryRepo TerritoryRepository,
	directory VendorDirectory,
	outbox OutboxRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *VendorUseCase {
	return &VendorUseCase{
		vendorRepo:    vendorRepo,
		territoryRepo: territoryRepo,
		directory:     directory,
		outbox:        outbox,
		idGen:         idGen,
		logger:        logger,
	}
}

// CreateVendorInput represents input for creating a vendor.
type CreateVendorInput struct {
	Name        string
	Trade       string
	ZipCode     string
	TerritoryID string
	Phone       string
	Email       string
}

// CreateVendor creates a new vendor. When no territory is given, the vendor
// is scoped to the territory covering its zip code, if any.
func (uc *VendorUseCase) CreateVendor(ctx context.Context, input CreateVendorInput) (*domain.Vendor, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateTrade(input.Trade); err != nil {
		return nil, err
	}
	if err := domain.ValidateZipCode(input.ZipCode); err != nil {
		return nil, err
	}

	territoryID := input.TerritoryID
	if territoryID == "" {
		if territory, err := uc.territoryRepo.GetByZipCode(ctx, input.ZipCode); err == nil {
			territoryID = territory.ID
		}
	}

	now := time.Now().UTC()
	vendor := &domain.Vendor{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Trade:       domain.NormalizeTrade(input.Trade),
		ZipCode:     input.ZipCode,
		TerritoryID: territoryID,
		Phone:       input.Phone,
		Email:       input.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// GetVendor retrieves a vendor by ID.
func (uc *VendorUseCase) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	return uc.vendorRepo.GetByID(ctx, id)
}

// ListVendors lists vendors matching the filter.
func (uc *VendorUseCase) ListVendors(ctx context.Context, filter VendorFilter) ([]*domain.Vendor, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.vendorRepo.List(ctx, filter)
}

// SourceResult is the outcome of a sourcing run.
type SourceResult struct {
	Vendors  []*domain.Vendor
	Imported int
}

// SourceVendors runs a sourcing pass for a zip code and trade: it queries
// the external directory, imports new vendors, and returns everything now
// known for that zip and trade. When the directory is missing or fails, the
// run degrades to the local store rather than erroring.
func (uc *VendorUseCase) SourceVendors(ctx context.Context, zipCode, trade string) (*SourceResult, error) {
	if err := domain.ValidateZipCode(zipCode); err != nil {
		return nil, err
	}
	if err := domain.ValidateTrade(trade); err != nil {
		return nil, err
	}
	trade = domain.NormalizeTrade(trade)

	imported := 0
	if uc.directory != nil {
		found, err := uc.directory.Search(ctx, zipCode, trade)
		if err != nil {
			uc.logger.Warn().Err(err).
				Str("zip_code", zipCode).
				Str("trade", trade).
				Msg("vendor directory unavailable, serving local results")
		} else {
			imported = uc.importVendors(ctx, found, zipCode, trade)
		}
	}

	vendors, err := uc.vendorRepo.List(ctx, VendorFilter{
		ZipCode: zipCode,
		Trade:   trade,
		Limit:   domain.MaxPageLimit,
	})
	if err != nil {
		return nil, err
	}

	uc.recordSourcingRun(ctx, zipCode, trade, imported)

	return &SourceResult{Vendors: vendors, Imported: imported}, nil
}

func (uc *VendorUseCase) importVendors(ctx context.Context, found []*domain.Vendor, zipCode, trade string) int {
	var territoryID string
	if territory, err := uc.territoryRepo.GetByZipCode(ctx, zipCode); err == nil {
		territoryID = territory.ID
	}

	imported := 0
	now := time.Now().UTC()
	for _, v := range found {
		vendor := &domain.Vendor{
			ID:          uc.idGen.Generate(),
			Name:        v.Name,
			Trade:       trade,
			ZipCode:     zipCode,
			TerritoryID: territoryID,
			Phone:       v.Phone,
			Email:       v.Email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
			// Duplicates and per-row failures don't abort the run.
			uc.logger.Debug().Err(err).Str("vendor_name", v.Name).Msg("skipping sourced vendor")
			continue
		}
		imported++
	}

	return imported
}

func (uc *VendorUseCase) recordSourcingRun(ctx context.Context, zipCode, trade string, imported int) {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   zipCode,
		AggregateType: domain.AggregateTypeVendor,
		EventType:     domain.EventTypeVendorSourced,
		Payload: map[string]any{
			"zip_code": zipCode,
			"trade":    trade,
			"imported": imported,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.outbox.Create(ctx, event); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to record sourcing event")
	}
}
