package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpaw/vetcare-platform/internal/session"
)

type fakeSlotStore struct {
	slots map[string][]Slot // date -> slots

	listErr   error
	putErr    error
	deleteErr error

	putCalls    int
	deleteCalls int
	listCalls   int
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[string][]Slot)}
}

func (f *fakeSlotStore) ListDay(ctx context.Context, providerID, date string) ([]Slot, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Slot, len(f.slots[date]))
	copy(out, f.slots[date])
	return out, nil
}

func (f *fakeSlotStore) Put(ctx context.Context, slot *Slot) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	f.slots[slot.Date] = append(f.slots[slot.Date], *slot)
	return nil
}

func (f *fakeSlotStore) Delete(ctx context.Context, providerID, slotKey string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for date, slots := range f.slots {
		for i, s := range slots {
			if Key(s.Date, s.StartTime) == slotKey {
				f.slots[date] = append(slots[:i], slots[i+1:]...)
				return nil
			}
		}
	}
	return ErrSlotNotFound
}

func testProvider() session.CurrentProvider {
	return session.CurrentProvider{ID: "dr-1", Name: "Dr. Okafor"}
}

const day = "2026-09-14"

func loadedManager(t *testing.T, store *fakeSlotStore) *Manager {
	t.Helper()
	m := NewManager(store, testProvider(), nil)
	if _, err := m.Load(context.Background(), day); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestManagerAddAndReload(t *testing.T) {
	store := newFakeSlotStore()
	m := loadedManager(t, store)

	slot, err := m.Add(context.Background(), NewSlotRequest{Date: day, StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if slot.ID == "" || slot.ProviderID != "dr-1" || slot.IsReserved {
		t.Errorf("unexpected slot: %+v", slot)
	}

	got := m.Slots()
	if len(got) != 1 || got[0].StartTime != "09:00" {
		t.Errorf("cache after add = %+v", got)
	}
	if store.putCalls != 1 {
		t.Errorf("putCalls = %d, want 1", store.putCalls)
	}
}

func TestManagerAddRejectsOverlapWithoutStoreWrite(t *testing.T) {
	store := newFakeSlotStore()
	store.slots[day] = []Slot{{ID: "s1", Date: day, StartTime: "09:00", EndTime: "10:00"}}
	m := loadedManager(t, store)

	_, err := m.Add(context.Background(), NewSlotRequest{Date: day, StartTime: "09:30", EndTime: "10:30"})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("err = %v, want ErrOverlap", err)
	}
	if store.putCalls != 0 {
		t.Errorf("overlap rejection must not write to the store, putCalls = %d", store.putCalls)
	}

	// Back-to-back is fine.
	if _, err := m.Add(context.Background(), NewSlotRequest{Date: day, StartTime: "10:00", EndTime: "11:00"}); err != nil {
		t.Errorf("back-to-back Add: %v", err)
	}
}

func TestManagerAddRejectsBadRange(t *testing.T) {
	store := newFakeSlotStore()
	m := loadedManager(t, store)

	for _, r := range [][2]string{{"10:00", "10:00"}, {"11:00", "10:00"}} {
		_, err := m.Add(context.Background(), NewSlotRequest{Date: day, StartTime: r[0], EndTime: r[1]})
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Add(%s-%s) err = %v, want ErrInvalidRange", r[0], r[1], err)
		}
	}
	if store.putCalls != 0 {
		t.Errorf("putCalls = %d, want 0", store.putCalls)
	}
}

func TestManagerAddPersistFailureSkipsReload(t *testing.T) {
	store := newFakeSlotStore()
	m := loadedManager(t, store)
	listCallsAfterLoad := store.listCalls

	store.putErr = errors.New("dynamo down")
	_, err := m.Add(context.Background(), NewSlotRequest{Date: day, StartTime: "09:00", EndTime: "10:00"})
	if err == nil {
		t.Fatal("expected persist error")
	}
	if store.listCalls != listCallsAfterLoad {
		t.Errorf("persist failure must not trigger a reload")
	}
}

func TestManagerDeleteReservedIsLocalRejection(t *testing.T) {
	store := newFakeSlotStore()
	store.slots[day] = []Slot{{ID: "s1", Date: day, StartTime: "09:00", EndTime: "10:00", IsReserved: true}}
	m := loadedManager(t, store)

	err := m.Delete(context.Background(), "s1")
	if !errors.Is(err, ErrSlotReserved) {
		t.Fatalf("err = %v, want ErrSlotReserved", err)
	}
	if store.deleteCalls != 0 {
		t.Errorf("reserved delete must issue zero store calls, deleteCalls = %d", store.deleteCalls)
	}
}

func TestManagerDeleteUnreservedReloads(t *testing.T) {
	store := newFakeSlotStore()
	store.slots[day] = []Slot{
		{ID: "s1", Date: day, StartTime: "09:00", EndTime: "10:00"},
		{ID: "s2", Date: day, StartTime: "10:00", EndTime: "11:00"},
	}
	m := loadedManager(t, store)

	if err := m.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := m.Slots()
	if len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("cache after delete = %+v", got)
	}
}

func TestManagerDeleteUnknownSlot(t *testing.T) {
	store := newFakeSlotStore()
	m := loadedManager(t, store)

	if err := m.Delete(context.Background(), "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("err = %v, want ErrSlotNotFound", err)
	}
}

func TestManagerLoadFailureKeepsCache(t *testing.T) {
	store := newFakeSlotStore()
	store.slots[day] = []Slot{{ID: "s1", Date: day, StartTime: "09:00", EndTime: "10:00"}}
	m := loadedManager(t, store)

	store.listErr = errors.New("network")
	if _, err := m.Load(context.Background(), "2026-09-15"); err == nil {
		t.Fatal("expected load error")
	}
	if got := m.Slots(); len(got) != 1 {
		t.Errorf("cache should be unchanged after failed load, got %+v", got)
	}
	if m.Date() != day {
		t.Errorf("date should stay %s, got %s", day, m.Date())
	}
}

func TestManagerLoadSortsByStartTime(t *testing.T) {
	store := newFakeSlotStore()
	store.slots[day] = []Slot{
		{ID: "b", Date: day, StartTime: "14:00", EndTime: "15:00"},
		{ID: "a", Date: day, StartTime: "09:00", EndTime: "10:00"},
		{ID: "c", Date: day, StartTime: "11:00", EndTime: "12:00"},
	}
	m := loadedManager(t, store)

	got := m.Slots()
	want := []string{"09:00", "11:00", "14:00"}
	for i, w := range want {
		if got[i].StartTime != w {
			t.Errorf("slots[%d].StartTime = %s, want %s", i, got[i].StartTime, w)
		}
	}
}
