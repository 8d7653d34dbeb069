package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"guidelk/internal/models/request_models"
	"guidelk/internal/models/response_models"
	"guidelk/pkg/utils"
)

func poiStopReq(id uuid.UUID) request_models.TripStopRequest {
	return request_models.TripStopRequest{Kind: "poi", PoiID: &id}
}

func stopOrder(trip response_models.Trip) []string {
	ids := make([]string, len(trip.Stops))
	for i, s := range trip.Stops {
		ids[i] = s.ID
	}
	return ids
}

func TestSigiriyaScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	poiID := env.createPOI(t, "Sigiriya", 80.7603, 7.9570)

	trip, err := env.trips.CreateTrip(ctx, user.ID, request_models.CreateTripRequest{
		Name:  "Cultural triangle",
		Stops: []request_models.TripStopRequest{poiStopReq(poiID)},
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if trip.Status != "draft" || len(trip.Stops) != 1 || trip.Stops[0].Sort != 0 {
		t.Fatalf("created trip = %+v", trip)
	}
	if trip.Stops[0].POI == nil || trip.Stops[0].POI.Name != "Sigiriya" {
		t.Errorf("stop does not embed its poi")
	}
	tripID := uuid.MustParse(trip.ID)
	before := stopOrder(trip)

	reordered, err := env.trips.ReorderStops(ctx, user.ID, tripID, []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("ReorderStops: %v", err)
	}
	if got := stopOrder(reordered); len(got) != 1 || got[0] != before[0] {
		t.Errorf("irrelevant reorder changed the stops: %v", got)
	}

	stopID := uuid.MustParse(trip.Stops[0].ID)
	marked, err := env.trips.MarkStop(ctx, user.ID, stopID, "visited")
	if err != nil {
		t.Fatalf("MarkStop: %v", err)
	}
	if marked.Status != "visited" {
		t.Errorf("marked status = %s", marked.Status)
	}

	got, err := env.trips.GetTrip(ctx, user.ID, tripID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Stops[0].Status != "visited" {
		t.Errorf("stored status = %s", got.Stops[0].Status)
	}
}

func TestCreateTripPreservesInputOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.login(t, "uid-1")
	a := env.createPOI(t, "A", 80.1, 7.1)
	b := env.createPOI(t, "B", 80.2, 7.2)
	c := env.createPOI(t, "C", 80.3, 7.3)

	trip, err := env.trips.CreateTrip(context.Background(), user.ID, request_models.CreateTripRequest{
		Name:  "Ordered",
		Stops: []request_models.TripStopRequest{poiStopReq(c), poiStopReq(a), poiStopReq(b)},
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	want := []uuid.UUID{c, a, b}
	for i, s := range trip.Stops {
		if *s.PoiID != want[i].String() || s.Sort != i {
			t.Errorf("stop %d = poi %s sort %d", i, *s.PoiID, s.Sort)
		}
	}
}

func TestTripValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	poiID := env.createPOI(t, "Sigiriya", 80.7603, 7.9570)
	stayID := env.createProperty(t, "Vil Uyana", 80.7370, 7.9460)
	missing := uuid.New()

	tests := []struct {
		name string
		req  request_models.CreateTripRequest
		want error
	}{
		{
			name: "poi stop without poi id",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{{Kind: "poi"}}},
			want: utils.ErrInvalidInput,
		},
		{
			name: "poi stop with stay id",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{{Kind: "poi", PoiID: &poiID, StayID: &stayID}}},
			want: utils.ErrInvalidInput,
		},
		{
			name: "unknown poi",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{poiStopReq(missing)}},
			want: utils.ErrInvalidReference,
		},
		{
			name: "unknown stay",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{{Kind: "stay", StayID: &missing}}},
			want: utils.ErrInvalidReference,
		},
		{
			name: "unknown kind",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{{Kind: "ferry"}}},
			want: utils.ErrInvalidInput,
		},
		{
			name: "bad trip status",
			req:  request_models.CreateTripRequest{Name: "x", Status: "finished"},
			want: utils.ErrInvalidStatus,
		},
		{
			name: "bad stop status",
			req:  request_models.CreateTripRequest{Name: "x", Stops: []request_models.TripStopRequest{{Kind: "poi", PoiID: &poiID, Status: "done"}}},
			want: utils.ErrInvalidStatus,
		},
		{
			name: "end before start",
			req:  request_models.CreateTripRequest{Name: "x", StartDate: str("2025-03-10"), EndDate: str("2025-03-01")},
			want: utils.ErrInvalidInput,
		},
		{
			name: "malformed date",
			req:  request_models.CreateTripRequest{Name: "x", StartDate: str("10/03/2025")},
			want: utils.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.trips.CreateTrip(ctx, user.ID, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	trips, _ := env.trips.ListTrips(ctx, user.ID)
	if len(trips) != 0 {
		t.Errorf("rejected requests stored %d trips", len(trips))
	}
}

func TestTripOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.login(t, "uid-owner")
	stranger := env.login(t, "uid-stranger")
	poiID := env.createPOI(t, "Sigiriya", 80.7603, 7.9570)

	trip, err := env.trips.CreateTrip(ctx, owner.ID, request_models.CreateTripRequest{
		Name:  "Mine",
		Stops: []request_models.TripStopRequest{poiStopReq(poiID)},
	})
	if err != nil {
		t.Fatal(err)
	}
	tripID := uuid.MustParse(trip.ID)
	stopID := uuid.MustParse(trip.Stops[0].ID)

	if _, err := env.trips.GetTrip(ctx, stranger.ID, tripID); !errors.Is(err, utils.ErrTripNotFound) {
		t.Errorf("stranger get: %v", err)
	}
	if err := env.trips.DeleteTrip(ctx, stranger.ID, tripID); !errors.Is(err, utils.ErrTripNotFound) {
		t.Errorf("stranger delete: %v", err)
	}
	if _, err := env.trips.MarkStop(ctx, stranger.ID, stopID, "skipped"); !errors.Is(err, utils.ErrStopNotFound) {
		t.Errorf("stranger mark: %v", err)
	}
	if _, err := env.trips.GetTrip(ctx, owner.ID, uuid.New()); !errors.Is(err, utils.ErrTripNotFound) {
		t.Errorf("missing trip: %v", err)
	}
	if list, _ := env.trips.ListTrips(ctx, stranger.ID); len(list) != 0 {
		t.Errorf("stranger sees %d trips", len(list))
	}
}

func TestUpdateTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	a := env.createPOI(t, "A", 80.1, 7.1)
	b := env.createPOI(t, "B", 80.2, 7.2)

	trip, err := env.trips.CreateTrip(ctx, user.ID, request_models.CreateTripRequest{
		Name:      "Draft",
		StartDate: str("2025-03-01"),
		Stops:     []request_models.TripStopRequest{poiStopReq(a), poiStopReq(b)},
	})
	if err != nil {
		t.Fatal(err)
	}
	tripID := uuid.MustParse(trip.ID)

	patched, err := env.trips.UpdateTrip(ctx, user.ID, tripID, request_models.UpdateTripRequest{
		Status:  str("active"),
		EndDate: str("2025-03-05"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Name != "Draft" || patched.Status != "active" || *patched.StartDate != "2025-03-01" || *patched.EndDate != "2025-03-05" {
		t.Errorf("patched = %+v", patched)
	}
	if len(patched.Stops) != 2 {
		t.Errorf("patch without stops changed them: %d", len(patched.Stops))
	}

	replaced, err := env.trips.UpdateTrip(ctx, user.ID, tripID, request_models.UpdateTripRequest{
		Stops: &[]request_models.TripStopRequest{poiStopReq(b)},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(replaced.Stops) != 1 || *replaced.Stops[0].PoiID != b.String() || replaced.Stops[0].ID == trip.Stops[1].ID {
		t.Errorf("stops not replaced: %+v", replaced.Stops)
	}

	if _, err := env.trips.UpdateTrip(ctx, user.ID, tripID, request_models.UpdateTripRequest{EndDate: str("2025-02-01")}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Errorf("end before start: %v", err)
	}
	if _, err := env.trips.UpdateTrip(ctx, user.ID, tripID, request_models.UpdateTripRequest{Status: str("paused")}); !errors.Is(err, utils.ErrInvalidStatus) {
		t.Errorf("bad status: %v", err)
	}
}

func TestStopOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	a := env.createPOI(t, "A", 80.1, 7.1)
	b := env.createPOI(t, "B", 80.2, 7.2)
	stay := env.createProperty(t, "Guesthouse", 80.3, 7.3)

	trip, err := env.trips.CreateTrip(ctx, user.ID, request_models.CreateTripRequest{
		Name:  "Stops",
		Stops: []request_models.TripStopRequest{poiStopReq(a), poiStopReq(b)},
	})
	if err != nil {
		t.Fatal(err)
	}
	tripID := uuid.MustParse(trip.ID)

	added, err := env.trips.AddStop(ctx, user.ID, tripID, request_models.TripStopRequest{Kind: "stay", StayID: &stay, DayIndex: 1})
	if err != nil {
		t.Fatalf("AddStop: %v", err)
	}
	if added.Sort != 2 || added.Status != "planned" || added.Stay == nil || added.Stay.Name != "Guesthouse" {
		t.Errorf("added = %+v", added)
	}
	addedID := uuid.MustParse(added.ID)

	switched, err := env.trips.UpdateStop(ctx, user.ID, tripID, addedID, request_models.UpdateTripStopRequest{
		Kind:  str("poi"),
		PoiID: &a,
	})
	if err != nil {
		t.Fatalf("switch kind: %v", err)
	}
	if switched.Kind != "poi" || switched.StayID != nil || switched.POI == nil || switched.DayIndex != 1 {
		t.Errorf("switched = %+v", switched)
	}

	if _, err := env.trips.UpdateStop(ctx, user.ID, tripID, addedID, request_models.UpdateTripStopRequest{Kind: str("stay")}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Errorf("stay without stay_id: %v", err)
	}

	mismatched := []request_models.UpdateTripStopRequest{
		{StayID: &stay},
		{Kind: str("poi"), StayID: &stay},
		{Kind: str("stay"), StayID: &stay, PoiID: &b},
	}
	for i, req := range mismatched {
		if _, err := env.trips.UpdateStop(ctx, user.ID, tripID, addedID, req); !errors.Is(err, utils.ErrInvalidInput) {
			t.Errorf("mismatched patch %d: %v", i, err)
		}
	}
	current, err := env.trips.GetTrip(ctx, user.ID, tripID)
	if err != nil {
		t.Fatal(err)
	}
	for _, st := range current.Stops {
		if st.ID == added.ID && (st.Kind != "poi" || st.PoiID == nil || *st.PoiID != a.String() || st.StayID != nil) {
			t.Errorf("rejected patches changed the stop: %+v", st)
		}
	}

	ids := []uuid.UUID{addedID, uuid.MustParse(trip.Stops[0].ID), uuid.MustParse(trip.Stops[1].ID)}
	reordered, err := env.trips.ReorderStops(ctx, user.ID, tripID, ids)
	if err != nil {
		t.Fatalf("ReorderStops: %v", err)
	}
	for i, s := range reordered.Stops {
		if s.ID != ids[i].String() || s.Sort != i {
			t.Errorf("position %d = %s sort %d", i, s.ID, s.Sort)
		}
	}

	if err := env.trips.RemoveStop(ctx, user.ID, tripID, addedID); err != nil {
		t.Fatalf("RemoveStop: %v", err)
	}
	if err := env.trips.RemoveStop(ctx, user.ID, tripID, addedID); !errors.Is(err, utils.ErrStopNotFound) {
		t.Errorf("second remove: %v", err)
	}
	got, _ := env.trips.GetTrip(ctx, user.ID, tripID)
	if len(got.Stops) != 2 {
		t.Errorf("%d stops left", len(got.Stops))
	}

	if _, err := env.trips.MarkStop(ctx, user.ID, ids[1], "gone"); !errors.Is(err, utils.ErrInvalidStatus) {
		t.Errorf("bad mark status: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.trips.MarkStop(ctx, user.ID, ids[1], "skipped"); err != nil {
			t.Errorf("mark #%d: %v", i, err)
		}
	}
}

func TestBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.login(t, "uid-1")
	stay := env.createProperty(t, "Guesthouse", 80.3, 7.3)

	trip, err := env.trips.CreateTrip(ctx, user.ID, request_models.CreateTripRequest{Name: "Booked"})
	if err != nil {
		t.Fatal(err)
	}
	tripID := uuid.MustParse(trip.ID)

	manual, err := env.trips.AddBooking(ctx, user.ID, tripID, request_models.CreateBookingRequest{
		StayID:  &stay,
		CheckIn: str("2025-03-08"),
		RawJSON: json.RawMessage(`{"note":"pay at desk"}`),
	})
	if err != nil {
		t.Fatalf("AddBooking: %v", err)
	}
	if manual.Source != "manual" || *manual.CheckIn != "2025-03-08" {
		t.Errorf("manual = %+v", manual)
	}

	missing := uuid.New()
	if _, err := env.trips.AddBooking(ctx, user.ID, tripID, request_models.CreateBookingRequest{StayID: &missing}); !errors.Is(err, utils.ErrInvalidReference) {
		t.Errorf("unknown stay: %v", err)
	}

	export := request_models.ImportBookingsRequest{Reservations: []json.RawMessage{
		json.RawMessage(`{"reservation_id":"r1","check_in":"2025-03-02","check_out":"2025-03-04"}`),
		json.RawMessage(`{"reservation_id":"r2","hotel":"Somewhere"}`),
	}}
	imported, err := env.trips.ImportBookings(ctx, user.ID, tripID, export)
	if err != nil {
		t.Fatalf("ImportBookings: %v", err)
	}
	if len(imported) != 2 || imported[0].Source != "booking_import" || len(imported[0].RawJSON) == 0 {
		t.Fatalf("imported = %+v", imported)
	}

	again, err := env.trips.ImportBookings(ctx, user.ID, tripID, export)
	if err != nil || len(again) != 0 {
		t.Fatalf("re-import: %v %v", again, err)
	}

	bad := request_models.ImportBookingsRequest{Reservations: []json.RawMessage{json.RawMessage(`[1,2]`)}}
	if _, err := env.trips.ImportBookings(ctx, user.ID, tripID, bad); !errors.Is(err, utils.ErrInvalidInput) {
		t.Errorf("non-object reservation: %v", err)
	}

	list, err := env.trips.ListBookings(ctx, user.ID, tripID)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(list) != 3 || *list[0].CheckIn != "2025-03-02" || *list[1].CheckIn != "2025-03-08" || list[2].CheckIn != nil {
		t.Errorf("order = %+v", list)
	}

	if err := env.trips.DeleteBooking(ctx, user.ID, tripID, uuid.MustParse(manual.ID)); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	if err := env.trips.DeleteBooking(ctx, user.ID, tripID, uuid.MustParse(manual.ID)); !errors.Is(err, utils.ErrBookingNotFound) {
		t.Errorf("second delete: %v", err)
	}

	if err := env.trips.DeleteTrip(ctx, user.ID, tripID); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if _, err := env.trips.ListBookings(ctx, user.ID, tripID); !errors.Is(err, utils.ErrTripNotFound) {
		t.Errorf("bookings of deleted trip: %v", err)
	}
}
