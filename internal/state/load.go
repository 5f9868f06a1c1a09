package state

import (
	"context"

	"github.com/Domenick1991/frontdesk/internal/domain"
	"github.com/Domenick1991/frontdesk/internal/storage"
)

// SchemaVersion is the storage layout version written by Migrations.
const SchemaVersion = 3

// Migrations upgrades a store written by an older build. Seed records are
// merged by identity; nothing already stored is dropped.
func Migrations(seed Snapshot) []storage.Migration {
	return []storage.Migration{
		{Version: 1, Name: "merge shipped currency rates", Apply: storage.MergeSeed(storage.KeyCurrencyRates, seed.CurrencyRates)},
		{Version: 2, Name: "introduce stay-type combinations", Apply: storage.MergeSeed(storage.KeyStayTypes, seed.StayTypes)},
		{Version: 3, Name: "merge seed reservations", Apply: storage.MergeSeed(storage.KeyReservations, seed.Reservations)},
	}
}

// LoadSnapshot migrates the store and reads every collection, falling back to
// the seed collection when a key is absent or unreadable.
func LoadSnapshot(ctx context.Context, a *storage.Adapter, seed Snapshot) (Snapshot, error) {
	if _, err := a.Migrate(ctx, Migrations(seed)); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Customers:     storage.Load(ctx, a, storage.KeyCustomers, seed.Customers),
		Rooms:         storage.Load(ctx, a, storage.KeyRooms, seed.Rooms),
		RoomTypes:     storage.Load(ctx, a, storage.KeyRoomTypes, seed.RoomTypes),
		Reservations:  storage.Load(ctx, a, storage.KeyReservations, seed.Reservations),
		StayTypes:     storage.Load(ctx, a, storage.KeyStayTypes, seed.StayTypes),
		Housekeeping:  storage.Load(ctx, a, storage.KeyHousekeeping, seed.Housekeeping),
		Bills:         storage.Load(ctx, a, storage.KeyBills, seed.Bills),
		CurrencyRates: storage.Load(ctx, a, storage.KeyCurrencyRates, seed.CurrencyRates),
		Audit:         storage.Load(ctx, a, storage.KeyAudit, []domain.AuditRecord{}),
	}, nil
}
