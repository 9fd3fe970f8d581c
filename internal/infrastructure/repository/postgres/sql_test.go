package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get race: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation races does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullConversions(t *testing.T) {
	t.Run("null values map to nil", func(t *testing.T) {
		if nullStringToPtr(sql.NullString{}) != nil {
			t.Fatalf("expected nil string")
		}
		if nullInt64ToPtr(sql.NullInt64{}) != nil {
			t.Fatalf("expected nil int64")
		}
		if nullInt32ToIntPtr(sql.NullInt32{}) != nil {
			t.Fatalf("expected nil int")
		}
	})

	t.Run("values round trip", func(t *testing.T) {
		slug := "omloop-het-nieuwsblad"
		got := nullStringToPtr(ptrToNullString(&slug))
		if got == nil || *got != slug {
			t.Fatalf("unexpected slug: %v", got)
		}

		id := int64(42)
		gotID := nullInt64ToPtr(ptrToNullInt64(&id))
		if gotID == nil || *gotID != id {
			t.Fatalf("unexpected id: %v", gotID)
		}

		pos := 7
		gotPos := nullInt32ToIntPtr(intPtrToNullInt32(&pos))
		if gotPos == nil || *gotPos != pos {
			t.Fatalf("unexpected position: %v", gotPos)
		}
	})

	t.Run("nil pointers map to null", func(t *testing.T) {
		if ptrToNullString(nil).Valid || ptrToNullInt64(nil).Valid || intPtrToNullInt32(nil).Valid {
			t.Fatalf("expected invalid null values")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
