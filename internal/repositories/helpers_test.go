package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/config"
	"guidelk/internal/infra"
	dbm "guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { infra.Close(db, zap.NewNop()) })
	return db
}

func textCodec() spatial.Codec {
	return spatial.NewCodec(spatial.TextBackend)
}

func mustUser(t *testing.T, db *gorm.DB, uid string) uuid.UUID {
	t.Helper()
	user, err := NewAccountRepository(db).FindOrCreate(context.Background(), &dbm.User{FirebaseUID: uid})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func mustPOI(t *testing.T, repo POIRepository, name string, lon, lat float64) *dbm.PointOfInterest {
	t.Helper()
	poi := &dbm.PointOfInterest{
		SpatialColumns: dbm.SpatialColumns{Latitude: lat, Longitude: lon},
		Name:           name,
		Category:       "sight",
	}
	if _, err := repo.CreatePoi(context.Background(), poi); err != nil {
		t.Fatalf("create poi %s: %v", name, err)
	}
	return poi
}

func mustProperty(t *testing.T, repo PropertyRepository, name string, lon, lat float64) *dbm.PartnerProperty {
	t.Helper()
	prop := &dbm.PartnerProperty{
		SpatialColumns: dbm.SpatialColumns{Latitude: lat, Longitude: lon},
		Name:           name,
	}
	if _, err := repo.CreateProperty(context.Background(), prop); err != nil {
		t.Fatalf("create property %s: %v", name, err)
	}
	return prop
}

func poiStop(id uuid.UUID) dbm.TripStop {
	return dbm.TripStop{Kind: dbm.TripStopKindPOI, PoiID: &id}
}

func stopIDs(stops []dbm.TripStop) []uuid.UUID {
	ids := make([]uuid.UUID, len(stops))
	for i, s := range stops {
		ids[i] = s.ID
	}
	return ids
}
