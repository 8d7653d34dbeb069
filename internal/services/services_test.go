package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/config"
	"guidelk/internal/infra"
	"guidelk/internal/models/db_models"
	"guidelk/internal/models/request_models"
	"guidelk/internal/repositories"
	"guidelk/internal/spatial"
	"guidelk/pkg/utils"
)

const testSecret = "test-secret"

type testEnv struct {
	db         *gorm.DB
	pois       POIServiceInterface
	properties PropertyServiceInterface
	trips      TripServiceInterface
	accounts   AccountServiceInterface
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	db, err := infra.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"}, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { infra.Close(db, log) })

	codec := spatial.NewCodec(infra.BackendOf(db))
	poiRepo := repositories.NewPOIRepository(db, codec)
	propertyRepo := repositories.NewPropertyRepository(db, codec)

	return &testEnv{
		db:         db,
		pois:       NewPOIService(poiRepo, log),
		properties: NewPropertyService(propertyRepo, log),
		trips:      NewTripService(repositories.NewTripRepository(db), poiRepo, propertyRepo, log),
		accounts:   NewAccountService(repositories.NewAccountRepository(db), NewHMACVerifier([]byte(testSecret)), log),
	}
}

func (e *testEnv) login(t *testing.T, uid string) *db_models.User {
	t.Helper()
	token, err := utils.CreateIdentityToken([]byte(testSecret), uid, uid+"@example.com", "Traveller", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	user, err := e.accounts.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	return user
}

func f64(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

func (e *testEnv) createPOI(t *testing.T, name string, lon, lat float64) uuid.UUID {
	t.Helper()
	poi, err := e.pois.CreatePoi(context.Background(), request_models.CreatePoiRequest{
		Name:      name,
		Category:  "heritage",
		Latitude:  f64(lat),
		Longitude: f64(lon),
	})
	if err != nil {
		t.Fatalf("CreatePoi: %v", err)
	}
	return uuid.MustParse(poi.ID)
}

func (e *testEnv) createProperty(t *testing.T, name string, lon, lat float64) uuid.UUID {
	t.Helper()
	prop, err := e.properties.CreateProperty(context.Background(), request_models.CreatePropertyRequest{
		Name:      name,
		Latitude:  f64(lat),
		Longitude: f64(lon),
	})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	return uuid.MustParse(prop.ID)
}
