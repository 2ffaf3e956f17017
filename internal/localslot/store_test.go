package localslot

import (
	"testing"
)

type slotPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TestStore_PutGet は書き込んだ値がそのまま読み出せることを検証する。
func TestStore_PutGet(t *testing.T) {
	store, err := OpenMem()
	if err != nil {
		t.Fatalf("OpenMem returned error: %v", err)
	}
	defer store.Close()

	in := slotPayload{Name: "moments", Count: 5}
	if err := store.Put(KeyMoments, in); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	var out slotPayload
	found, err := store.Get(KeyMoments, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found {
		t.Fatal("expected slot to be found")
	}
	if out != in {
		t.Errorf("round-trip mismatch: got %+v, want %+v", out, in)
	}
}

// TestStore_GetMissing は未存在キーがfound=falseになることを検証する。
func TestStore_GetMissing(t *testing.T) {
	store, err := OpenMem()
	if err != nil {
		t.Fatalf("OpenMem returned error: %v", err)
	}
	defer store.Close()

	var out slotPayload
	found, err := store.Get("no-such-slot", &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Error("expected missing slot to report found=false")
	}
}

// TestStore_GetCorrupt は壊れたJSON値が「存在しない」として扱われることを検証する。
func TestStore_GetCorrupt(t *testing.T) {
	store, err := OpenMem()
	if err != nil {
		t.Fatalf("OpenMem returned error: %v", err)
	}
	defer store.Close()

	if err := store.PutRaw(KeyAuth, []byte("{not json")); err != nil {
		t.Fatalf("PutRaw returned error: %v", err)
	}

	var out slotPayload
	found, err := store.Get(KeyAuth, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Error("expected corrupt slot to report found=false")
	}

	// 次の書き込みで正常値に置き換えられる
	if err := store.Put(KeyAuth, slotPayload{Name: "auth"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	found, err = store.Get(KeyAuth, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found || out.Name != "auth" {
		t.Errorf("expected replaced value, got found=%v value=%+v", found, out)
	}
}

// TestStore_Delete は削除後にfound=falseになることを検証する。
func TestStore_Delete(t *testing.T) {
	store, err := OpenMem()
	if err != nil {
		t.Fatalf("OpenMem returned error: %v", err)
	}
	defer store.Close()

	if err := store.Put(KeyAuth, slotPayload{Name: "auth"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Delete(KeyAuth); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var out slotPayload
	found, err := store.Get(KeyAuth, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Error("expected deleted slot to report found=false")
	}

	// 未存在キーの削除はno-op
	if err := store.Delete(KeyAuth); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}
