package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"guidelk/internal/models/request_models"
	"guidelk/internal/spatial"
	"guidelk/pkg/utils"
)

func TestPoiServiceBBox(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createPOI(t, "Sigiriya", 80.7603, 7.9570)

	inside, err := env.pois.ListPois(ctx, &spatial.BBox{MinLon: 80, MinLat: 7, MaxLon: 81, MaxLat: 8})
	if err != nil || len(inside) != 1 || inside[0].Name != "Sigiriya" {
		t.Fatalf("inside box: %v %v", inside, err)
	}

	outside, err := env.pois.ListPois(ctx, &spatial.BBox{MinLon: 0, MinLat: 0, MaxLon: 1, MaxLat: 1})
	if err != nil || len(outside) != 0 {
		t.Fatalf("outside box: %v %v", outside, err)
	}

	_, err = env.pois.ListPois(ctx, &spatial.BBox{MinLon: 2, MinLat: 0, MaxLon: 1, MaxLat: 1})
	if !errors.Is(err, utils.ErrInvalidBBox) {
		t.Fatalf("inverted box: %v", err)
	}
}

func TestCreatePoiRejectsBadCoordinates(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name     string
		lat, lon *float64
	}{
		{"missing latitude", nil, f64(80)},
		{"latitude too high", f64(90.5), f64(80)},
		{"longitude too low", f64(7), f64(-180.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.pois.CreatePoi(context.Background(), request_models.CreatePoiRequest{
				Name: "x", Category: "y", Latitude: tt.lat, Longitude: tt.lon,
			})
			if !errors.Is(err, utils.ErrInvalidCoordinate) {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestUpdatePoiMergePatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPOI(t, "Sigiriya", 80.7603, 7.9570)

	got, err := env.pois.UpdatePoi(ctx, id, request_models.UpdatePoiRequest{Name: str("Sigiriya Rock")})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Sigiriya Rock" || got.Category != "heritage" || got.Latitude != 7.9570 {
		t.Errorf("rename touched other fields: %+v", got)
	}

	got, err = env.pois.UpdatePoi(ctx, id, request_models.UpdatePoiRequest{Latitude: f64(1)})
	if err != nil {
		t.Fatalf("latitude only: %v", err)
	}
	if got.Latitude != 7.9570 || got.Longitude != 80.7603 {
		t.Errorf("latitude alone moved the point to (%v,%v)", got.Longitude, got.Latitude)
	}

	got, err = env.pois.UpdatePoi(ctx, id, request_models.UpdatePoiRequest{Latitude: f64(6.0329), Longitude: f64(80.2170)})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if got.Latitude != 6.0329 || got.Longitude != 80.2170 || got.Geohash != spatial.Geohash(6.0329, 80.2170) {
		t.Errorf("move = %+v", got)
	}

	moved, _ := env.pois.ListPois(ctx, &spatial.BBox{MinLon: 80, MinLat: 6, MaxLon: 81, MaxLat: 6.5})
	if len(moved) != 1 {
		t.Errorf("moved poi not found in its new box")
	}
}

func TestPoiNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	missing := uuid.New()

	if _, err := env.pois.GetPOIById(ctx, missing); !errors.Is(err, utils.ErrPOINotFound) {
		t.Errorf("get: %v", err)
	}
	if _, err := env.pois.UpdatePoi(ctx, missing, request_models.UpdatePoiRequest{}); !errors.Is(err, utils.ErrPOINotFound) {
		t.Errorf("update: %v", err)
	}
	if err := env.pois.DeletePoi(ctx, missing); !errors.Is(err, utils.ErrPOINotFound) {
		t.Errorf("delete: %v", err)
	}
	if err := env.properties.DeleteProperty(ctx, missing); !errors.Is(err, utils.ErrPropertyNotFound) {
		t.Errorf("delete property: %v", err)
	}
}

func TestDeletePoiInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	poiID := env.createPOI(t, "Sigiriya", 80.7603, 7.9570)

	trip, err := env.trips.CreateTrip(ctx, user.ID, request_models.CreateTripRequest{
		Name:  "Rock",
		Stops: []request_models.TripStopRequest{{Kind: "poi", PoiID: &poiID}},
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if err := env.pois.DeletePoi(ctx, poiID); !errors.Is(err, utils.ErrPointInUse) {
		t.Fatalf("delete while referenced: %v", err)
	}

	if err := env.trips.DeleteTrip(ctx, user.ID, uuid.MustParse(trip.ID)); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if err := env.pois.DeletePoi(ctx, poiID); err != nil {
		t.Fatalf("delete after trip removal: %v", err)
	}
}

func TestPropertyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createProperty(t, "Jetwing Vil Uyana", 80.7370, 7.9460)

	got, err := env.properties.UpdateProperty(ctx, id, request_models.UpdatePropertyRequest{Phone: str("+94 66 4923584")})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if got.Phone == nil || *got.Phone != "+94 66 4923584" || got.Name != "Jetwing Vil Uyana" {
		t.Errorf("patch = %+v", got)
	}
	if got.Photos == nil {
		t.Error("photos should render as an empty list")
	}

	list, err := env.properties.ListProperties(ctx, &spatial.BBox{MinLon: 80, MinLat: 7, MaxLon: 81, MaxLat: 8})
	if err != nil || len(list) != 1 {
		t.Fatalf("ListProperties: %v %v", list, err)
	}

	if err := env.properties.DeleteProperty(ctx, id); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if _, err := env.properties.GetProperty(ctx, id); !errors.Is(err, utils.ErrPropertyNotFound) {
		t.Errorf("get after delete: %v", err)
	}
}
