package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	dbm "guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

func TestListPoisByBBox(t *testing.T) {
	db := newTestDB(t)
	repo := NewPOIRepository(db, textCodec())
	ctx := context.Background()

	mustPOI(t, repo, "Sigiriya", 80.7603, 7.9570)
	mustPOI(t, repo, "Galle Fort", 80.2170, 6.0329)
	mustPOI(t, repo, "Anuradhapura", 80.4037, 8.3114)

	tests := []struct {
		name string
		box  *spatial.BBox
		want []string
	}{
		{name: "no box", box: nil, want: []string{"Anuradhapura", "Galle Fort", "Sigiriya"}},
		{name: "around sigiriya", box: &spatial.BBox{MinLon: 80, MinLat: 7, MaxLon: 81, MaxLat: 8}, want: []string{"Sigiriya"}},
		{name: "gulf of guinea", box: &spatial.BBox{MinLon: 0, MinLat: 0, MaxLon: 1, MaxLat: 1}, want: nil},
		{name: "corner on point", box: &spatial.BBox{MinLon: 80.7603, MinLat: 7.9570, MaxLon: 82, MaxLat: 9}, want: []string{"Sigiriya"}},
		{name: "whole island", box: &spatial.BBox{MinLon: 79, MinLat: 5, MaxLon: 82, MaxLat: 10}, want: []string{"Anuradhapura", "Galle Fort", "Sigiriya"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pois, err := repo.List(ctx, tt.box)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(pois) != len(tt.want) {
				t.Fatalf("got %d pois, want %v", len(pois), tt.want)
			}
			for i, name := range tt.want {
				if pois[i].Name != name {
					t.Errorf("pois[%d] = %s, want %s", i, pois[i].Name, name)
				}
			}
		})
	}
}

func TestCreatePoiKeepsGeomInSync(t *testing.T) {
	db := newTestDB(t)
	repo := NewPOIRepository(db, textCodec())
	ctx := context.Background()

	poi := mustPOI(t, repo, "Sigiriya", 80.7603, 7.9570)

	stored, err := repo.GetByID(ctx, poi.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetByID: %v %v", stored, err)
	}
	lon, lat, ok := stored.Geom.Coordinates()
	if !ok || lon != stored.Longitude || lat != stored.Latitude {
		t.Errorf("geom (%v,%v,%v) disagrees with columns (%v,%v)", lon, lat, ok, stored.Longitude, stored.Latitude)
	}
	if stored.Geohash != spatial.Geohash(7.9570, 80.7603) {
		t.Errorf("geohash = %q", stored.Geohash)
	}

	stored.Latitude, stored.Longitude = 6.0329, 80.2170
	if err := repo.UpdatePoi(ctx, stored); err != nil {
		t.Fatalf("UpdatePoi: %v", err)
	}

	moved, _ := repo.GetByID(ctx, poi.ID)
	lon, lat, ok = moved.Geom.Coordinates()
	if !ok || lon != 80.2170 || lat != 6.0329 {
		t.Errorf("geom after update = (%v,%v,%v)", lon, lat, ok)
	}
	if moved.CreatedAt.IsZero() || moved.UpdatedAt.Before(moved.CreatedAt) {
		t.Errorf("timestamps not kept: %v %v", moved.CreatedAt, moved.UpdatedAt)
	}
}

func TestGetPoiMissing(t *testing.T) {
	repo := NewPOIRepository(newTestDB(t), textCodec())
	poi, err := repo.GetByID(context.Background(), uuid.New())
	if err != nil || poi != nil {
		t.Fatalf("got %v, %v; want nil, nil", poi, err)
	}
}

func TestDeleteReferencedPoint(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pois := NewPOIRepository(db, textCodec())
	props := NewPropertyRepository(db, textCodec())
	trips := NewTripRepository(db)

	poi := mustPOI(t, pois, "Sigiriya", 80.7603, 7.9570)
	hotel := mustProperty(t, props, "Jetwing Vil Uyana", 80.7370, 7.9460)
	userID := mustUser(t, db, "uid-1")

	trip := newTrip(userID, "Cultural triangle")
	if err := trips.Create(ctx, trip, []dbm.TripStop{poiStop(poi.ID)}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	booking := &dbm.Booking{TripID: trip.ID, StayID: &hotel.ID, Source: dbm.BookingSourceManual}
	if err := trips.AddBooking(ctx, booking); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}

	if err := pois.Delete(ctx, poi); !errors.Is(err, ErrStillReferenced) {
		t.Fatalf("delete referenced poi: %v", err)
	}
	if err := props.Delete(ctx, hotel); !errors.Is(err, ErrStillReferenced) {
		t.Fatalf("delete booked property: %v", err)
	}
	if still, _ := pois.GetByID(ctx, poi.ID); still == nil {
		t.Fatal("refused delete removed the poi")
	}

	if err := trips.Delete(ctx, trip); err != nil {
		t.Fatalf("Delete trip: %v", err)
	}
	if err := pois.Delete(ctx, poi); err != nil {
		t.Fatalf("delete free poi: %v", err)
	}
	if err := props.Delete(ctx, hotel); err != nil {
		t.Fatalf("delete free property: %v", err)
	}
	if gone, _ := pois.GetByID(ctx, poi.ID); gone != nil {
		t.Fatal("poi still stored")
	}
}
